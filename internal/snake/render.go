package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// hudRows is the number of screen rows above the board: status line and separator.
const hudRows = 2

// Theme picks glyphs and colors for each role.
type Theme struct {
	Name   string
	Head   rune
	Body   rune
	Food   rune
	HeadFg core.Color
	BodyFg core.Color
	FoodFg core.Color
	Border core.Color
	Text   core.Color
}

// Themes available to every renderer, keyed by name.
var Themes = map[string]Theme{
	"zinc": {
		Name: "zinc", Head: '█', Body: '▓', Food: '◆',
		HeadFg: core.ColorZinc300, BodyFg: core.ColorZinc500, FoodFg: core.ColorZinc500,
		Border: core.ColorZinc700, Text: core.ColorDefault,
	},
	"classic": {
		Name: "classic", Head: '█', Body: '▓', Food: '◆',
		HeadFg: core.ColorBrightGreen, BodyFg: core.ColorGreen, FoodFg: core.ColorBrightRed,
		Border: core.ColorGray, Text: core.ColorDefault,
	},
}

// ThemeByName returns the named theme, falling back to zinc.
func ThemeByName(name string) Theme {
	if t, ok := Themes[strings.ToLower(name)]; ok {
		return t
	}
	return Themes["zinc"]
}

// RenderOptions controls how a Frame is laid out on a character screen.
type RenderOptions struct {
	CellWidth int // Terminal columns per board cell; cells look square at 2
	Theme     Theme
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.CellWidth < 1 {
		o.CellWidth = 2
	}
	if o.Theme.Head == 0 {
		o.Theme = Themes["zinc"]
	}
	return o
}

// BoardRect returns where the bordered board sits on a w x h screen and
// whether it fits at all.
func BoardRect(size, w, h int, opts RenderOptions) (core.Rect, bool) {
	opts = opts.withDefaults()
	boxW := size*opts.CellWidth + 2
	boxH := size + 2
	area := core.NewRect(0, hudRows, w, h-hudRows)
	r := area.Centered(boxW, boxH)
	return r, boxW <= area.W && boxH <= area.H
}

// MinScreenSize returns the smallest screen that fits a board of size cells.
func MinScreenSize(size int, opts RenderOptions) (w, h int) {
	opts = opts.withDefaults()
	return size*opts.CellWidth + 2, size + 2 + hudRows
}

// Render draws f onto dst: status line, bordered board and any overlay.
func Render(dst *core.Screen, f Frame, opts RenderOptions) {
	opts = opts.withDefaults()
	dst.Clear()

	renderHUD(dst, f, opts.Theme)

	box, ok := BoardRect(f.Size, dst.Width(), dst.Height(), opts)
	if !ok {
		renderOverlay(dst, opts.Theme, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(box, opts.Theme.Border)
	for p, role := range f.Cells {
		glyph, color := cellStyle(role, opts.Theme)
		x := box.X + 1 + p.X*opts.CellWidth
		y := box.Y + 1 + p.Y
		dst.SetStyled(x, y, glyph, color)
		// Solid roles fill the whole cell; food keeps a gap to stay round
		if role != RoleFood {
			for i := 1; i < opts.CellWidth; i++ {
				dst.SetStyled(x+i, y, glyph, color)
			}
		}
	}

	switch {
	case f.Won():
		renderOverlay(dst, opts.Theme, "Board cleared!", fmt.Sprintf("Final Score: %d", f.Score), "R: play again")
	case f.Phase == PhaseOver:
		renderOverlay(dst, opts.Theme, "Game Over", fmt.Sprintf("Final Score: %d", f.Score), "R: play again")
	case f.Phase == PhaseIdle:
		renderOverlay(dst, opts.Theme, "Press Enter to start", "Arrows / WASD to steer")
	case f.Paused:
		renderOverlay(dst, opts.Theme, "Paused", "P to continue")
	}
}

func cellStyle(role Role, t Theme) (rune, core.Color) {
	switch role {
	case RoleHead:
		return t.Head, t.HeadFg
	case RoleBody:
		return t.Body, t.BodyFg
	case RoleFood:
		return t.Food, t.FoodFg
	}
	return ' ', core.ColorDefault
}

func renderHUD(dst *core.Screen, f Frame, t Theme) {
	hud := fmt.Sprintf(" SNAKE  Score: %d  Best: %d", f.Score, f.HighScore)
	dst.DrawTextStyled(0, 0, hud, t.Text)
	dst.DrawHLine(0, 1, dst.Width(), '─', t.Border)
}

// renderOverlay draws a bordered message box in the middle of the screen.
func renderOverlay(dst *core.Screen, t Theme, lines ...string) {
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(widest+4, len(lines)+2)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, t.Border)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l, t.Text)
	}
}
