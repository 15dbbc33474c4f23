package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a menu",
	Long: `Start Snake in interactive menu mode.

Pick a speed, browse the high scores and play as many games as you like.
Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change speed
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  snake menu
  snake menu --board 15
  snake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
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

	opts := appOptions(cfg, scores, logger)
	opts.Game.Width, opts.Game.Height = terminalSize()
	opts.Game.ScreenshotDir = screenshotDir()

	return tui.RunApp(opts)
}
