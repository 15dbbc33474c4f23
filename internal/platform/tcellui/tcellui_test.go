package tcellui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

type recordedCell struct {
	r     rune
	style tcell.Style
}

type recordingCanvas map[[2]int]recordedCell

func (c recordingCanvas) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	c[[2]int{x, y}] = recordedCell{r: primary, style: style}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		ev       *tcell.EventKey
		expected core.Action
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), core.ActionUp},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), core.ActionLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), core.ActionRight},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), core.ActionDown},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), core.ActionStart},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), core.ActionStart},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), core.ActionPause},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), core.ActionBack},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), core.ActionQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), core.ActionNone},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), core.ActionNone},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ActionFor(tc.ev), "key %s", tc.ev.Name())
	}
}

func TestBlitCopiesRunesAndColors(t *testing.T) {
	src := core.NewScreen(3, 2)
	src.SetStyled(1, 0, '@', core.ColorGreen)
	src.Set(2, 1, '*')

	canvas := recordingCanvas{}
	Blit(canvas, src)

	assert.Len(t, canvas, 6)
	assert.Equal(t, '@', canvas[[2]int{1, 0}].r)
	assert.Equal(t, StyleFor(core.ColorGreen), canvas[[2]int{1, 0}].style)
	assert.Equal(t, '*', canvas[[2]int{2, 1}].r)
	assert.Equal(t, tcell.StyleDefault, canvas[[2]int{2, 1}].style)
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, tcell.StyleDefault, StyleFor(core.ColorDefault))
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.PaletteColor(1)), StyleFor(core.ColorRed))
}

func screenRow(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	row := make([]rune, w)
	for x := range w {
		r, _, _, _ := s.GetContent(x, y)
		row[x] = r
	}
	return string(row)
}

func TestPlayStartsAndQuits(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)

	session, err := snake.NewSession(context.Background(), snake.Options{TickPeriod: time.Hour, Seed: 3})
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	done := make(chan error, 1)
	go func() {
		done <- Play(context.Background(), screen, session, Options{})
	}()

	assert.Eventually(t, func() bool {
		return strings.Contains(screenRow(screen, 0), "SNAKE")
	}, time.Second, 10*time.Millisecond)

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Eventually(t, func() bool {
		return session.Phase() == snake.PhaseRunning
	}, time.Second, 10*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Play did not return after q")
	}
}

func TestPlayStopsWithContext(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)

	session, err := snake.NewSession(context.Background(), snake.Options{TickPeriod: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Play(ctx, screen, session, Options{})
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Play did not return after cancel")
	}
}
