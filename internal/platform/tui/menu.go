package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// MenuChoice is what the user picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// menuItem is one line of the main menu. Speed is a toggle, not a choice.
type menuItem struct {
	label  string
	choice MenuChoice
}

var menuItems = []menuItem{
	{label: "Play", choice: ChoicePlay},
	{label: "Speed", choice: ChoiceNone},
	{label: "High Scores", choice: ChoiceScores},
	{label: "Quit", choice: ChoiceQuit},
}

const speedItem = 1

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor    int
	speed     config.Speed
	highScore int
	width     int
	height    int
	keys      MenuKeyMap
	help      help.Model
	chosen    MenuChoice
}

// NewMenuModel creates a new menu model. An empty speed is shown as
// "custom" until the user cycles to a preset.
func NewMenuModel(speed config.Speed, highScore, width, height int) MenuModel {
	return MenuModel{
		speed:     speed,
		highScore: highScore,
		width:     width,
		height:    height,
		keys:      DefaultMenuKeyMap(),
		help:      help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) MenuModel {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.chosen = ChoiceQuit

	case key.Matches(msg, m.keys.Up):
		m.cursor = core.Clamp(m.cursor-1, 0, len(menuItems)-1)

	case key.Matches(msg, m.keys.Down):
		m.cursor = core.Clamp(m.cursor+1, 0, len(menuItems)-1)

	case key.Matches(msg, m.keys.Cycle):
		if m.cursor == speedItem {
			m.speed = m.speed.Next()
		}

	case key.Matches(msg, m.keys.Scores):
		m.chosen = ChoiceScores

	case key.Matches(msg, m.keys.Select):
		if m.cursor == speedItem {
			m.speed = m.speed.Next()
			break
		}
		m.chosen = menuItems[m.cursor].choice
	}
	return m
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  S N A K E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render(fmt.Sprintf("Best: %d", m.highScore)), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		label := item.label
		if i == speedItem {
			label = fmt.Sprintf("Speed: < %s >", speedLabel(m.speed))
		}

		line := "  " + label
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Chosen returns the user's pick, or ChoiceNone while still browsing.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

func speedLabel(s config.Speed) string {
	if s == "" {
		return "custom"
	}
	return string(s)
}

// Speed returns the selected speed preset, or "" for the configured period.
func (m MenuModel) Speed() config.Speed {
	return m.speed
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
