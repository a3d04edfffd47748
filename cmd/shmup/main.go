// shmup is a side-scrolling shooter played in the terminal.
//
// Usage:
//
//	shmup stages             - List the stages that would be played
//	shmup play               - Play from a stage
//	shmup menu               - Pick stage and difficulty interactively
//	shmup serve              - Start SSH server for remote play
//	shmup scores             - Show high scores and recent runs
//	shmup sim                - Run the simulation headless and print its hash
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.shmup/scores.db)
//	--stages <dir>       - Read stage files from a directory
//	--log-file <path>    - Write diagnostics to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
)

const gameID = "shmup"

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagStagesDir string
	flagLogFile   string
	flagLogLevel  string

	// logger is set up before every command runs
	logger  *log.Logger
	logSink io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shmup",
	Short: "Chicken Shooter - a scrolling shooter in your terminal",
	Long: `Chicken Shooter is a side-scrolling shoot 'em up for the terminal.

Stages are tile maps written in YAML. The built-in stages are used unless
--stages points to a directory of your own.

Available commands:
  stages   - Show the stages that would be played
  play     - Play directly from a stage
  menu     - Interactive stage and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  sim      - Run a headless simulation

Examples:
  shmup play
  shmup play --stage 2 --difficulty hard
  shmup menu --stages ./stages --watch
  shmup serve --ssh :2222
  shmup sim --frames 3600 --seed 42`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DefaultDBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagStagesDir, "stages", "", "Directory of stage YAML files (default: built-in stages)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// setup builds the logger and applies the flags shared by every command.
// The terminal belongs to the game, so logs go to a file or nowhere.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out, logSink = f, f
	} else if cmd.Name() == "serve" {
		out = os.Stderr
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          gameID,
		Level:           level,
	})

	shmup.SetStagesDir(flagStagesDir)
	return nil
}
