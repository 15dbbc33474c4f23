package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own menu and game session.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snake/ssh_host_ed25519

Examples:
  snake serve                           # Listen on :23234 with auto-generated key
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ssh") {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.Server.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.Server.IdleTimeoutMinutes = flagIdleTimeout
	}

	logger, closeLog := newLogger(cfg, false, "snake-ssh")
	defer closeLog()

	store, scores := openScores(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	app := appOptions(cfg, scores, logger)
	sshCfg := tui.DefaultSSHServerConfig()
	if cfg.Server.SSHAddr != "" {
		sshCfg.Address = cfg.Server.SSHAddr
	}
	sshCfg.HostKeyPath = cfg.Server.HostKey
	sshCfg.IdleTimeout = cfg.IdleTimeout()
	sshCfg.NewSession = app.NewSession
	sshCfg.Scores = app.Scores
	sshCfg.Speed = app.Speed
	sshCfg.TickPeriod = app.TickPeriod
	sshCfg.Game = app.Game

	server, err := tui.NewSSHServer(sshCfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Starting snake SSH server on %s\n", server.Addr())
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
