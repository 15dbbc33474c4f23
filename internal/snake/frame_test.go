package snake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestProjectRoles(t *testing.T) {
	b := Board{Size: 10}
	s := running(DirRight, Point{7, 1}, Point{3, 3}, Point{2, 3}, Point{1, 3})
	s.Score = 4

	f := Project(s, b)

	assert.Equal(t, 10, f.Size)
	assert.Equal(t, RoleHead, f.At(Point{3, 3}))
	assert.Equal(t, RoleBody, f.At(Point{2, 3}))
	assert.Equal(t, RoleBody, f.At(Point{1, 3}))
	assert.Equal(t, RoleFood, f.At(Point{7, 1}))
	assert.Equal(t, RoleEmpty, f.At(Point{0, 0}))
	assert.Len(t, f.Cells, 4)
	assert.Equal(t, 4, f.Score)
	assert.Equal(t, DirRight, f.Direction)
	assert.Zero(t, f.HighScore)
}

func TestProjectIsDeterministic(t *testing.T) {
	b := Board{Size: 10}
	s := running(DirUp, Point{0, 0}, Point{4, 4}, Point{4, 5})

	assert.Equal(t, Project(s, b), Project(s, b))
}

func TestProjectSkipsMissingFood(t *testing.T) {
	b := Board{Size: 5}
	s := running(DirUp, noFood, Point{2, 2})

	f := Project(s, b)

	assert.Len(t, f.Cells, 1)
}

func TestFrameRowsAndOccupied(t *testing.T) {
	b := Board{Size: 5}
	s := running(DirRight, Point{0, 4}, Point{2, 1}, Point{1, 1})

	f := Project(s, b)
	rows := f.Rows()

	require.Len(t, rows, 5)
	assert.Equal(t, []Role{RoleEmpty, RoleBody, RoleHead, RoleEmpty, RoleEmpty}, rows[1])
	assert.Equal(t, RoleFood, rows[4][0])

	assert.Equal(t, []Cell{
		{Point{1, 1}, RoleBody},
		{Point{2, 1}, RoleHead},
		{Point{0, 4}, RoleFood},
	}, f.Occupied())
}

func TestFrameWon(t *testing.T) {
	assert.True(t, Frame{Phase: PhaseOver, Cause: CauseBoardFull}.Won())
	assert.False(t, Frame{Phase: PhaseOver, Cause: CauseWall}.Won())
	assert.False(t, Frame{Phase: PhaseRunning}.Won())
}

func TestRenderBoard(t *testing.T) {
	b := Board{Size: 10}
	s := running(DirRight, Point{7, 1}, Point{3, 3}, Point{2, 3})
	f := Project(s, b)
	f.HighScore = 12

	screen := core.NewScreen(40, 16)
	opts := RenderOptions{CellWidth: 2, Theme: ThemeByName("classic")}
	Render(screen, f, opts)

	assert.True(t, strings.HasPrefix(screen.Row(0), " SNAKE  Score: 0  Best: 12"))
	assert.Equal(t, '─', screen.Get(0, 1))

	box, ok := BoardRect(10, 40, 16, opts)
	require.True(t, ok)
	assert.Equal(t, core.NewRect(9, 3, 22, 12), box)
	assert.Equal(t, '┌', screen.Get(box.X, box.Y))

	headX, headY := box.X+1+3*2, box.Y+1+3
	assert.Equal(t, core.Cell{Rune: '█', Color: core.ColorBrightGreen}, screen.GetCell(headX, headY))
	assert.Equal(t, '█', screen.Get(headX+1, headY))
	assert.Equal(t, '▓', screen.Get(headX-2, headY))

	foodX, foodY := box.X+1+7*2, box.Y+1+1
	assert.Equal(t, core.Cell{Rune: '◆', Color: core.ColorBrightRed}, screen.GetCell(foodX, foodY))
	assert.Equal(t, ' ', screen.Get(foodX+1, foodY))
}

func TestRenderOverlays(t *testing.T) {
	b := Board{Size: 10}
	base := running(DirRight, Point{7, 1}, Point{3, 3})

	tests := []struct {
		name   string
		mutate func(f *Frame)
		want   string
	}{
		{"idle", func(f *Frame) { f.Phase = PhaseIdle }, "Press Enter to start"},
		{"over", func(f *Frame) { f.Phase, f.Cause = PhaseOver, CauseWall }, "Game Over"},
		{"won", func(f *Frame) { f.Phase, f.Cause = PhaseOver, CauseBoardFull }, "Board cleared!"},
		{"paused", func(f *Frame) { f.Paused = true }, "Paused"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Project(base, b)
			tc.mutate(&f)

			screen := core.NewScreen(40, 16)
			Render(screen, f, RenderOptions{})

			assert.Contains(t, screen.String(), tc.want)
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	f := Project(running(DirRight, Point{7, 1}, Point{3, 3}), Board{Size: 20})

	w, h := MinScreenSize(20, RenderOptions{})
	assert.Equal(t, 42, w)
	assert.Equal(t, 24, h)

	screen := core.NewScreen(w-1, h)
	Render(screen, f, RenderOptions{})
	assert.Contains(t, screen.String(), "Window too small")

	screen = core.NewScreen(w, h)
	Render(screen, f, RenderOptions{})
	assert.NotContains(t, screen.String(), "Window too small")
}

func TestThemeByNameFallsBack(t *testing.T) {
	assert.Equal(t, "classic", ThemeByName("Classic").Name)
	assert.Equal(t, "zinc", ThemeByName("neon").Name)
}
