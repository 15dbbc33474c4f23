// Package tui provides the Bubble Tea surface for snake: the game view,
// the menu, the scoreboard and the SSH server that serves them.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// FrameMsg carries a frame published by the session's timer.
type FrameMsg snake.Frame

// streamClosedMsg is sent once a session's update channel is closed.
type streamClosedMsg struct{}

// waitForFrame returns a command that blocks until the next frame arrives.
// The session owns the clock, so the view never schedules its own ticks.
func waitForFrame(frames <-chan snake.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return streamClosedMsg{}
		}
		return FrameMsg(f)
	}
}
