package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
	"github.com/vovakirdan/tui-shmup/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the game over SSH",
	Long: `Listen for SSH connections and give each one its own game session,
starting on the stage picker. Every player writes to the same scores
database.

Without --host-key a key is generated once under ~/.shmup/host_key.

Examples:
  shmup serve
  shmup serve --ssh :2222 --idle-timeout 10m
  shmup serve --stages ./stages --db ./scores.db

Players connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", def.Address, "listen address (host:port)")
	f.StringVar(&flagHostKey, "host-key", "", "host key file (generated when empty)")
	f.DurationVar(&flagIdleTimeout, "idle-timeout", def.IdleTimeout, "disconnect idle sessions after this long")
	f.StringVar(&flagConfig, "config", "", "game config YAML overriding the defaults")
}

func runServe(cmd *cobra.Command, _ []string) error {
	shmup.SetConfigPath(flagConfig)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("ssh server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving shmup on %s, Ctrl+C to stop\n", server.Addr())
	return server.ListenAndServe(ctx)
}
