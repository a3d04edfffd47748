package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup/stage"
	"github.com/vovakirdan/tui-shmup/internal/platform/tui"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagStage      string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play from a stage",
	Long: `Start playing, from the first stage or the one given with --stage.

Controls:
  Arrows/WASD  - Move
  Z/Space      - Toggle reflect shield
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

With --watch, stage files under --stages are reloaded when they change.

Examples:
  shmup play
  shmup play --stage 2
  shmup play --stage 02_cave --difficulty hard
  shmup play --config ./my-shmup.yaml
  shmup play --stages ./stages --watch --log-file shmup.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().BoolVar(&flagWatch, "watch", false, "Reload changed stage files while playing (needs --stages)")
	}
	playCmd.Flags().StringVar(&flagStage, "stage", "1", "Stage to start from: number or ID")
}

func runPlay(_ *cobra.Command, _ []string) error {
	shmup.SetConfigPath(flagConfig)
	shmup.SetDifficultyPreset(flagDifficulty)

	stages, err := shmup.LoadStages(shmup.StagesDir(), logger)
	if err != nil {
		return err
	}
	idx, err := resolveStage(flagStage, stages)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	cfg.Stage = idx

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

	_, err = tui.Run(cfg, tui.Options{
		Store:      store,
		Logger:     logger,
		Watcher:    watcher,
		Difficulty: flagDifficulty,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// resolveStage turns a one-based stage number or a stage ID into an index.
func resolveStage(arg string, stages []*stage.Stage) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(stages) {
			return 0, fmt.Errorf("stage %d out of range 1-%d", n, len(stages))
		}
		return n - 1, nil
	}
	for i, st := range stages {
		if st.ID == arg {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q; run 'shmup stages' to list them", arg)
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. The game still works without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

// openWatcher starts the stage file watcher when --watch is set.
func openWatcher() (*stage.Watcher, error) {
	if !flagWatch {
		return nil, nil
	}
	if shmup.StagesDir() == "" {
		return nil, fmt.Errorf("--watch needs --stages: built-in stages cannot change")
	}
	w, err := stage.NewWatcher(shmup.StagesDir())
	if err != nil {
		return nil, fmt.Errorf("watching stages: %w", err)
	}
	logger.Info("watching stage files", "dir", shmup.StagesDir())
	return w, nil
}
