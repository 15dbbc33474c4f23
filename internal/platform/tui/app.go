package tui

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// SessionFactory builds a fresh idle game session ticking at period.
type SessionFactory func(ctx context.Context, period time.Duration) (*snake.Session, error)

// AppOptions configures the menu -> game -> menu flow.
type AppOptions struct {
	NewSession SessionFactory
	Scores     ScoreSource // May be nil

	// Speed is the preset shown in the menu. Empty means "custom": games
	// tick at TickPeriod until the user picks a preset.
	Speed      config.Speed
	TickPeriod time.Duration

	Game   GameOptions
	Logger *log.Logger
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// AppModel manages the full session flow: menu, game and scoreboard.
// It is the top-level model for `snake menu` and for every SSH connection.
type AppModel struct {
	opts     AppOptions
	logger   *log.Logger
	live     *liveSessions
	screen   appScreen
	menu     MenuModel
	game     *GameModel
	scores   ScoreboardModel
	width    int
	height   int
	err      error
	quitting bool
}

// liveSessions remembers the running game so it can be closed when the
// program ends from outside, e.g. a dropped SSH connection.
type liveSessions struct {
	mu      sync.Mutex
	current *GameModel
}

func (l *liveSessions) set(g *GameModel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = g
}

func (l *liveSessions) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil {
		l.current.Close()
		l.current = nil
	}
}

// NewAppModel creates the top-level model, starting at the menu.
func NewAppModel(opts AppOptions) AppModel {
	if opts.Speed == "" && opts.TickPeriod <= 0 {
		opts.Speed = config.SpeedNormal
	}
	if opts.Game.Width <= 0 || opts.Game.Height <= 0 {
		opts.Game.Width, opts.Game.Height = 80, 24
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Game.Logger == nil {
		opts.Game.Logger = logger
	}
	opts.Game.AllowBack = true

	m := AppModel{
		opts:   opts,
		logger: logger,
		live:   &liveSessions{},
		width:  opts.Game.Width,
		height: opts.Game.Height,
	}
	m.menu = NewMenuModel(opts.Speed, m.bestScore(), m.width, m.height)
	return m
}

func (m AppModel) bestScore() int {
	if m.opts.Scores == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	stats, err := m.opts.Scores.Stats(ctx)
	if err != nil {
		m.logger.Warn("could not read high score", "error", err)
		return 0
	}
	return stats.HighScore
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Chosen() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceScores:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.opts.Scores, m.width, m.height)
		return m, nil

	case ChoicePlay:
		return m.startGame()
	}

	return m, cmd
}

// startGame creates a session at the chosen speed and switches to it.
func (m AppModel) startGame() (tea.Model, tea.Cmd) {
	m.opts.Speed = m.menu.Speed()
	session, err := m.opts.NewSession(context.Background(), m.period())
	if err != nil {
		m.logger.Error("could not create game session", "error", err)
		m.err = err
		m.menu = NewMenuModel(m.opts.Speed, m.bestScore(), m.width, m.height)
		return m, nil
	}
	m.err = nil

	gameOpts := m.opts.Game
	gameOpts.Width, gameOpts.Height = m.width, m.height
	game := NewGameModel(session, gameOpts)
	m.game = &game
	m.live.set(m.game)
	m.screen = screenGame
	m.logger.Debug("game session created", "speed", m.opts.Speed, "period", session.TickPeriod())

	return m, m.game.Init()
}

// period resolves the tick period for the next game.
func (m AppModel) period() time.Duration {
	if m.opts.Speed == "" && m.opts.TickPeriod > 0 {
		return m.opts.TickPeriod
	}
	ms, err := config.SpeedTickMS(m.opts.Speed)
	if err != nil {
		return snake.DefaultTickPeriod
	}
	return time.Duration(ms) * time.Millisecond
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
		m.live.set(m.game)
	}

	if m.game.IsQuitting() {
		m.quitting = true
		m.live.close()
		m.game = nil
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.live.close()
		m.game = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Speed, m.bestScore(), m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.opts.Speed, m.bestScore(), m.width, m.height)
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(errorStyle.Render("Error: "+m.err.Error()), m.width)
	}
	return view
}

// Close stops any game still running.
func (m AppModel) Close() {
	m.live.close()
}

// RunApp runs the menu flow in a full-screen program on the local terminal.
func RunApp(opts AppOptions) error {
	model := NewAppModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
