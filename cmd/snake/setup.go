package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// loadConfig resolves configuration: YAML file, then .env and environment,
// then explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.LoadDotEnv(); err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("tick-ms") {
		cfg.Timing.TickMS = flagTickMS
		cfg.Timing.Speed = ""
	}
	if flags.Changed("speed") {
		cfg.Timing.Speed = flagSpeed
	}
	if flags.Changed("board") {
		cfg.Board.Size = flagBoard
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	return cfg, cfg.Validate()
}

// newLogger builds the process logger. TUI commands log to the configured
// file so the alt screen stays clean; servers log to stderr.
// The returned func closes the log file.
func newLogger(cfg config.Config, toFile bool, prefix string) (*log.Logger, func()) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if toFile {
		w = io.Discard
		if f, err := openLogFile(cfg.Log.File); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		} else if f != nil {
			w = f
			closeFn = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// openScores opens the scores database. A failure is logged and the game
// runs without persistence.
func openScores(cfg config.Config, logger *log.Logger) (*storage.Store, *storage.KeyedScores) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.Path, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil, nil
	}
	return store, store.Keyed(cfg.Storage.Key)
}

// sessionOptions builds engine options from cfg, wiring scores when present.
func sessionOptions(cfg config.Config, scores *storage.KeyedScores, logger *log.Logger) snake.Options {
	//nolint:errcheck // cfg was validated by loadConfig
	opts, _ := cfg.SessionOptions()
	opts.Seed = flagSeed
	opts.Logger = logger
	if scores != nil {
		opts.Scores = scores
	}
	return opts
}

// sessionFactory returns a constructor for fresh sessions at a given period.
func sessionFactory(cfg config.Config, scores *storage.KeyedScores, logger *log.Logger) func(ctx context.Context, period time.Duration) (*snake.Session, error) {
	return func(ctx context.Context, period time.Duration) (*snake.Session, error) {
		opts := sessionOptions(cfg, scores, logger)
		if period > 0 {
			opts.TickPeriod = period
		}
		return snake.NewSession(ctx, opts)
	}
}

func renderOptions(cfg config.Config) snake.RenderOptions {
	return snake.RenderOptions{
		CellWidth: cfg.Render.CellWidth,
		Theme:     snake.ThemeByName(cfg.Render.Theme),
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// screenshotDir is where ctrl+s saves frames.
func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "screenshots"
	}
	return filepath.Join(home, ".snake", "screenshots")
}

// currentSpeed returns the configured preset, or the preset matching
// tick_ms. It is empty for any other period, which the menu shows as "custom".
func currentSpeed(cfg config.Config) config.Speed {
	if cfg.Timing.Speed != "" {
		return config.Speed(cfg.Timing.Speed)
	}
	sp, _ := config.SpeedForTickMS(cfg.Timing.TickMS)
	return sp
}

// tickPeriod returns the resolved period of a validated config.
func tickPeriod(cfg config.Config) time.Duration {
	//nolint:errcheck // cfg was validated by loadConfig
	period, _ := cfg.TickPeriod()
	return period
}

// appOptions builds the menu flow shared by `menu` and `serve`.
func appOptions(cfg config.Config, scores *storage.KeyedScores, logger *log.Logger) tui.AppOptions {
	opts := tui.AppOptions{
		NewSession: sessionFactory(cfg, scores, logger),
		Speed:      currentSpeed(cfg),
		TickPeriod: tickPeriod(cfg),
		Game:       tui.GameOptions{Render: renderOptions(cfg)},
		Logger:     logger,
	}
	if scores != nil {
		opts.Scores = scores
	}
	return opts
}
