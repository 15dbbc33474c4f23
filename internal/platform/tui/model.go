package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// GameOptions configures a GameModel.
type GameOptions struct {
	Render        snake.RenderOptions
	Width, Height int    // Initial screen size until the first resize
	ScreenshotDir string // Empty disables ctrl+s
	AllowBack     bool   // esc/b returns to a menu instead of doing nothing
	Logger        *log.Logger
}

// GameModel is the Bubble Tea model for one snake session. It only draws and
// forwards input; the session's own timer drives the game.
type GameModel struct {
	session    *snake.Session
	frames     <-chan snake.Frame
	stop       context.CancelFunc
	frame      snake.Frame
	screen     *core.Screen
	opts       GameOptions
	keys       GameKeyMap
	help       help.Model
	logger     *log.Logger
	quitting   bool
	backToMenu bool
	lastShot   string
}

// NewGameModel creates a model that streams frames from session.
// Call Close when the model is done to release the stream.
func NewGameModel(session *snake.Session, opts GameOptions) GameModel {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	frames := session.Updates(ctx)

	return GameModel{
		session: session,
		frames:  frames,
		stop:    cancel,
		frame:   session.Frame(),
		screen:  core.NewScreen(opts.Width, opts.Height-1),
		opts:    opts,
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
		logger:  logger,
	}
}

// Init starts listening for frames.
func (m GameModel) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Last row is kept for the help line
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = snake.Frame(msg)
		return m, waitForFrame(m.frames)

	case streamClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.opts.AllowBack {
			m.backToMenu = true
		}
		return m, nil

	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil

	case core.ActionNone:
		return m, nil
	}

	m.session.Handle(action)
	// Pause and resume change the overlay without a tick
	m.frame = m.session.Frame()
	return m, nil
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	snake.Render(m.screen, m.frame, m.opts.Render)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("snake_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.lastShot = path
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snake.Render(m.screen, m.frame, m.opts.Render)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Frame returns the last frame the model received.
func (m GameModel) Frame() snake.Frame {
	return m.frame
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Close stops the frame stream and the session.
func (m GameModel) Close() {
	m.stop()
	//nolint:errcheck // Close never fails
	m.session.Close()
}

// Run plays session in a full-screen Bubble Tea program until the user quits.
func Run(session *snake.Session, opts GameOptions) error {
	model := NewGameModel(session, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
