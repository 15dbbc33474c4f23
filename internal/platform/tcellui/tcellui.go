// Package tcellui drives a snake session on a raw tcell screen. It is the
// lightweight alternative to the Bubble Tea surface: no menu, no help line,
// just the board and the keyboard.
package tcellui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Canvas is the part of tcell.Screen that Blit writes to.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Options configures Play.
type Options struct {
	Render        snake.RenderOptions
	ScreenshotDir string // Empty disables ctrl+s
	Logger        *log.Logger
}

// StyleFor returns the tcell style for a core color.
func StyleFor(c core.Color) tcell.Style {
	code := c.ANSI()
	if code < 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(code))
}

// Blit copies every cell of src onto dst at the same coordinates.
func Blit(dst Canvas, src *core.Screen) {
	for y := range src.Height() {
		for x := range src.Width() {
			cell := src.GetCell(x, y)
			dst.SetContent(x, y, cell.Rune, nil, StyleFor(cell.Color))
		}
	}
}

// keyNames spells special keys the way core.ActionForKey expects.
var keyNames = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyEnter:  "enter",
	tcell.KeyEscape: "esc",
	tcell.KeyCtrlC:  "ctrl+c",
	tcell.KeyCtrlS:  "ctrl+s",
}

// ActionFor maps a tcell key event to a game action.
func ActionFor(ev *tcell.EventKey) core.Action {
	if ev.Key() == tcell.KeyRune {
		return core.ActionForKey(string(ev.Rune()))
	}
	if name, ok := keyNames[ev.Key()]; ok {
		return core.ActionForKey(name)
	}
	return core.ActionNone
}

// Run plays session on the local terminal until the user quits.
func Run(session *snake.Session, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcellui: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcellui: cannot init screen: %w", err)
	}
	defer screen.Fini()

	screen.HideCursor()
	return Play(context.Background(), screen, session, opts)
}

// Play runs the event loop on an initialized screen. It returns when the
// user quits or ctx is done. The caller owns the screen and finalizes it.
func Play(ctx context.Context, screen tcell.Screen, session *snake.Session, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	frames := session.Updates(ctx)
	w, h := screen.Size()
	buf := core.NewScreen(w, h)
	frame := session.Frame()

	draw := func() {
		snake.Render(buf, frame, opts.Render)
		Blit(screen, buf)
		screen.Show()
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case f, ok := <-frames:
			if !ok {
				return nil
			}
			frame = f
			draw()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, h := ev.Size()
				buf.Resize(w, h)
				screen.Clear()
				draw()
				screen.Sync()

			case *tcell.EventKey:
				switch action := ActionFor(ev); action {
				case core.ActionQuit, core.ActionBack:
					return nil
				case core.ActionScreenshot:
					saveScreenshot(buf, opts.ScreenshotDir, logger)
				case core.ActionNone:
				default:
					session.Handle(action)
					frame = session.Frame()
					draw()
				}
			}
		}
	}
}

// saveScreenshot writes the last drawn buffer as plain text.
func saveScreenshot(buf *core.Screen, dir string, logger *log.Logger) {
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(buf.String()), 0o600); err != nil {
		logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	logger.Info("screenshot saved", "path", path)
}
