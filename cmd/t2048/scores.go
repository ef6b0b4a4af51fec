package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresJSON  bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score history of a profile",
	Long: `Display the top scores of a profile, or every profile's summary with --all.

Examples:
  t2048 scores
  t2048 scores --profile alice --limit 20
  t2048 scores --json
  t2048 scores --all`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresJSON, "json", false, "Print scores as JSON")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every profile")
}

func runScores(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	profile := settings.Storage.Profile

	store, err := storage.Open(settings.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresAll {
		return printAllProfiles(store)
	}

	scores, err := store.TopScores(profile, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	if flagScoresJSON {
		out, encErr := storage.EncodeScores(scores)
		if encErr != nil {
			return fmt.Errorf("encoding scores: %w", encErr)
		}
		fmt.Println(out)
		return nil
	}

	fmt.Printf("High Scores - %s\n", profile)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play --profile %s' to set the first high score!\n", profile)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "Rank", "Score", "Tile", "Moves", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "----", "-----", "----", "-----", "---", "----")

	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-3s  %s\n",
			i+1, e.Score, e.MaxTile, e.Moves, won, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, statsErr := store.GetProfileStats(profile); statsErr == nil {
		fmt.Printf("Best: %d  Games: %d  Wins: %d  Avg: %.0f\n",
			stats.BestScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}

func printAllProfiles(store *storage.Store) error {
	profiles, err := store.Profiles()
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}
	all, err := store.GetAllProfileStats()
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-8s  %-6s  %-5s  %-6s  %s\n", "Profile", "Best", "Games", "Wins", "Tile", "Last played")
	for _, p := range profiles {
		s, ok := all[p]
		if !ok {
			continue
		}
		last := "-"
		if !s.LastPlayed.IsZero() {
			last = s.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %-8d  %-6d  %-5d  %-6d  %s\n", p, s.BestScore, s.GamesCount, s.Wins, s.MaxTile, last)
	}
	return nil
}
