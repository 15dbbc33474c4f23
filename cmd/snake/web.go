package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/web"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP JSON API",
	Long: `Start an HTTP server exposing snake sessions as JSON for browser clients.

Every POST /api/sessions starts a game that ticks on the server. Clients
steer it with POST /api/sessions/:id/direction and poll GET /api/sessions/:id.
Sessions idle longer than server.idle_timeout_minutes are closed.

The PORT environment variable sets the listen port, as on most PaaS hosts.

Examples:
  snake web                 # Listen on :8080
  snake web --http :9000
  PORT=3000 snake web`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from config or PORT)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("http") {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}

	logger, closeLog := newLogger(cfg, false, "snake-web")
	defer closeLog()

	store, scores := openScores(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	newSession := sessionFactory(cfg, scores, logger)
	webCfg := web.Config{
		Address:     cfg.Server.HTTPAddr,
		IdleTimeout: cfg.IdleTimeout(),
		NewSession: func(ctx context.Context) (*snake.Session, error) {
			return newSession(ctx, 0)
		},
		Logger: logger,
	}
	if scores != nil {
		webCfg.Scores = scores
	}

	server, err := web.NewServer(webCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
