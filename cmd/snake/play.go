package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tcellui"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var flagRenderer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing Snake in this terminal.

Controls:
  Arrows/WASD  - Steer
  Enter/Space  - Start, or play again after game over
  P            - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Renderers:
  bubbletea - Full-screen Bubble Tea view with a help line (default)
  tcell     - Raw tcell screen, no help line

Examples:
  snake play
  snake play --speed fast
  snake play --board 12 --seed 42
  snake play --renderer tcell`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRenderer, "renderer", "bubbletea", "Renderer: bubbletea or tcell")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if flagRenderer != "bubbletea" && flagRenderer != "tcell" {
		return fmt.Errorf("unknown renderer %q", flagRenderer)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(cfg, true, "snake")
	defer closeLog()

	store, scores := openScores(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	session, err := snake.NewSession(context.Background(), sessionOptions(cfg, scores, logger))
	if err != nil {
		return err
	}
	defer session.Close()

	logger.Info("starting game", "renderer", flagRenderer, "board", cfg.Board.Size, "period", session.TickPeriod())

	if flagRenderer == "tcell" {
		return tcellui.Run(session, tcellui.Options{
			Render:        renderOptions(cfg),
			ScreenshotDir: screenshotDir(),
			Logger:        logger,
		})
	}

	width, height := terminalSize()
	return tui.Run(session, tui.GameOptions{
		Render:        renderOptions(cfg),
		Width:         width,
		Height:        height,
		ScreenshotDir: screenshotDir(),
		Logger:        logger,
	})
}
