package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
	"github.com/vovakirdan/tui-shmup/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a stage and difficulty interactively",
	Long: `Start with the stage picker.

Use arrow keys or j/k to choose a stage, left/right to change difficulty
and Enter to play. Press B while paused or after the game to come back.

Controls:
  Up/Down/j/k     - Choose stage
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Play
  Tab             - Scores
  Q               - Quit

Examples:
  shmup menu
  shmup menu --fps 30
  shmup menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	shmup.SetConfigPath(flagConfig)

	stages, err := shmup.LoadStages(shmup.StagesDir(), logger)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	watcher, err := openWatcher()
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(stages, store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		play := cfg
		play.Stage = menuResult.Stage
		back, err := tui.Run(play, tui.Options{
			Store:      store,
			Logger:     logger,
			Watcher:    watcher,
			Difficulty: string(menuResult.Difficulty),
			InMenu:     true,
		})
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
