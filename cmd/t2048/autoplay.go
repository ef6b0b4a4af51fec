package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/logrusorgru/aurora"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagAutoGames       int
	flagAutoStrategy    string
	flagAutoKeepPlaying bool
	flagAutoMaxMoves    int
	flagAutoRecord      bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let a strategy play headless games",
	Long: `Play a batch of games without a terminal UI and print a summary.

Strategies:
  random - a random direction that changes the board
  greedy - the move that scores most, then leaves most empty cells

With --record every finished game is added to the history of the profile
"bot-<strategy>".

Examples:
  t2048 autoplay
  t2048 autoplay --games 500 --strategy random --seed 1
  t2048 autoplay --keep-playing --record`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagAutoGames, "games", 100, "Number of games to play")
	autoplayCmd.Flags().StringVar(&flagAutoStrategy, "strategy", "greedy", "Strategy: random, greedy")
	autoplayCmd.Flags().BoolVar(&flagAutoKeepPlaying, "keep-playing", false, "Continue past a win")
	autoplayCmd.Flags().IntVar(&flagAutoMaxMoves, "max-moves", 0, "Move limit per game (0 = none)")
	autoplayCmd.Flags().BoolVar(&flagAutoRecord, "record", false, "Record results in the score history")
}

// autoplaySummary aggregates finished games.
type autoplaySummary struct {
	games      int
	wins       int
	totalScore int
	bestScore  int
	totalMoves int
	maxTiles   map[int]int
}

func (s *autoplaySummary) add(r t2048.Result) {
	if s.maxTiles == nil {
		s.maxTiles = make(map[int]int)
	}
	s.games++
	if r.Won {
		s.wins++
	}
	s.totalScore += r.Score
	s.bestScore = max(s.bestScore, r.Score)
	s.totalMoves += r.Moves
	s.maxTiles[r.MaxTile]++
}

func newBar(n int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        aurora.Yellow("█").String(),
			SaucerHead:    aurora.Yellow("█").String(),
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
}

func runAutoplay(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if flagAutoGames <= 0 {
		return errors.New("--games must be positive")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	strategy, err := t2048.NewStrategy(flagAutoStrategy, rng)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, "autoplay")
	// Per-game info lines would break the progress bar; debug still shows them.
	if logger.GetLevel() == log.InfoLevel {
		logger.SetLevel(log.WarnLevel)
	}

	var history *storage.ProfileStore
	if flagAutoRecord {
		db, openErr := storage.Open(settings.Storage.DBPath)
		if openErr != nil {
			return fmt.Errorf("opening scores database: %w", openErr)
		}
		defer db.Close()
		history = db.Profile("bot-" + strategy.Name())
	}

	var summary autoplaySummary
	bar := newBar(flagAutoGames, fmt.Sprintf("%s x%d", strategy.Name(), flagAutoGames))

	for i := range flagAutoGames {
		m := t2048.NewManager(t2048.Options{
			Rules:  rulesFrom(settings),
			Seed:   seed + int64(i) + 1,
			Logger: logger,
			OnTerminated: func(r t2048.Result) {
				if history == nil {
					return
				}
				if err := history.RecordResult(r); err != nil {
					logger.Error("cannot record score", "error", err)
				}
			},
		})
		m.Setup()
		t2048.Play(m, strategy, t2048.PlayOptions{
			MaxMoves:    flagAutoMaxMoves,
			KeepPlaying: flagAutoKeepPlaying,
		})

		summary.add(t2048.Result{
			GameID:  m.GameID(),
			Score:   m.Score(),
			Won:     m.Won(),
			MaxTile: t2048.MaxTile(m.Board()),
			Moves:   m.Moves(),
		})
		//nolint:errcheck // Progress output only
		bar.Add(1)
	}
	//nolint:errcheck // Progress output only
	bar.Finish()
	fmt.Println()

	printSummary(&summary, strategy.Name(), seed)
	return nil
}

func printSummary(s *autoplaySummary, strategy string, seed int64) {
	fmt.Println(aurora.Bold(fmt.Sprintf("Autoplay - %s (seed %d)", strategy, seed)))
	fmt.Println()

	rate := float64(s.wins) / float64(s.games) * 100
	fmt.Printf("  Games:      %d\n", s.games)
	fmt.Printf("  Wins:       %s\n", aurora.Green(fmt.Sprintf("%d (%.1f%%)", s.wins, rate)))
	fmt.Printf("  Avg score:  %.0f\n", float64(s.totalScore)/float64(s.games))
	fmt.Printf("  Best score: %s\n", aurora.Yellow(s.bestScore))
	fmt.Printf("  Avg moves:  %.0f\n", float64(s.totalMoves)/float64(s.games))
	fmt.Println()

	tiles := make([]int, 0, len(s.maxTiles))
	for v := range s.maxTiles {
		tiles = append(tiles, v)
	}
	slices.Sort(tiles)
	slices.Reverse(tiles)

	fmt.Println("  Max tile reached:")
	for _, v := range tiles {
		n := s.maxTiles[v]
		fmt.Printf("    %6d  %s %d\n", v, aurora.Cyan(histBar(n, s.games)), n)
	}
}

// histBar draws n/total as a 30-cell histogram bar.
func histBar(n, total int) string {
	const width = 30
	cells := n * width / total
	if n > 0 && cells == 0 {
		cells = 1
	}
	out := make([]rune, cells)
	for i := range out {
		out[i] = '█'
	}
	return string(out)
}
