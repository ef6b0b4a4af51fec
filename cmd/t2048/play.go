package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Open the start menu and play. A game in progress is saved after every
move and can be continued from the menu.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  R                - New game
  C                - Keep playing after a win
  Esc/B            - Back to menu
  ?                - Toggle help
  Ctrl+S           - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C         - Quit

Difficulty options (chance that a new tile is a 4):
  easy   - 5%
  normal - 10%
  hard   - 20%

Logs are written to ~/.arcade/t2048.log.

Examples:
  t2048 play
  t2048 play --profile alice
  t2048 play --difficulty hard
  t2048 play --config ./my-2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	profile := settings.Storage.Profile

	logOut, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logOut = nopCloser{io.Discard}
	}
	defer logOut.Close()
	logger := newLogger(logOut, "t2048")

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, db := storage.OpenSessionStore(settings.Storage.DBPath, profile, logger)
	if db == nil {
		fmt.Fprintln(os.Stderr, "Warning: could not open scores database, progress will not be saved")
	} else {
		defer db.Close()
	}

	opts := tui.GameOptions{
		Session: t2048.Options{
			Rules:        rulesFrom(settings),
			Seed:         flagSeed,
			Store:        store,
			Logger:       logger,
			OnTerminated: recordResult(db, profile, logger),
		},
		SlideTicks: settings.Animation.SlideTicks,
		PopTicks:   settings.Animation.PopTicks,
		Profile:    profile,
	}

	for {
		result, menuErr := tui.RunMenu(tui.LoadMenuInfo(store, profile), cfg)
		if menuErr != nil {
			return fmt.Errorf("menu: %w", menuErr)
		}
		cfg = result.Config

		switch result.Choice {
		case tui.MenuContinue, tui.MenuNewGame:
			opts.Fresh = result.Choice == tui.MenuNewGame
			back, runErr := tui.Run(opts, cfg)
			if runErr != nil {
				return fmt.Errorf("running game: %w", runErr)
			}
			if !back {
				return nil
			}

		case tui.MenuScores:
			back, sbErr := tui.RunScoreboard(db, profile, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return fmt.Errorf("scoreboard: %w", sbErr)
			}
			if !back {
				return nil
			}

		default:
			return nil
		}
	}
}

// recordResult returns the termination hook that appends finished games to
// the score history.
func recordResult(db *storage.Store, profile string, logger *log.Logger) func(t2048.Result) {
	return func(res t2048.Result) {
		if db == nil {
			return
		}
		if err := db.Profile(profile).RecordResult(res); err != nil {
			logger.Error("cannot record score", "error", err)
		}
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
