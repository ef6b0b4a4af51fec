package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagResetHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a profile's best score and saved game",
	Long: `Reset the best score and discard the game in progress for a profile.
With --history the score history is deleted too.

Examples:
  t2048 reset
  t2048 reset --profile alice --history`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also delete the score history")
}

func runReset(_ *cobra.Command, _ []string) error {
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

	if err := store.ResetBestScore(profile); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("resetting best score: %w", err)
	}
	if err := store.Profile(profile).ClearSessionState(); err != nil {
		return fmt.Errorf("clearing saved game: %w", err)
	}
	if flagResetHistory {
		if err := store.ClearScores(profile); err != nil {
			return fmt.Errorf("clearing score history: %w", err)
		}
	}

	fmt.Printf("Reset profile %q\n", profile)
	return nil
}
