package core

import (
	"testing"
)

func cell(r rune, c Color) Cell {
	return Cell{Rune: r, Color: c}
}

func checkCell(t *testing.T, s *Screen, x, y int, want Cell) {
	t.Helper()
	if got := s.GetCell(x, y); got != want {
		t.Errorf("GetCell(%d, %d) = %q/%v, expected %q/%v", x, y, got.Rune, got.Color, want.Rune, want.Color)
	}
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 4x3", s.Width(), s.Height())
	}
	for y := range 3 {
		for x := range 4 {
			checkCell(t, s, x, y, blank)
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("size = %dx%d, expected 0x0", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, expected empty", s.String())
	}
	s.SetStyled(0, 0, 'x', ColorRed)
}

func TestSetStyledKeepsColor(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetStyled(1, 2, '█', ColorZinc300)
	s.Set(3, 2, '▓')

	checkCell(t, s, 1, 2, cell('█', ColorZinc300))
	checkCell(t, s, 3, 2, cell('▓', ColorDefault))
	if s.Get(1, 2) != '█' {
		t.Errorf("Get(1, 2) = %q, expected '█'", s.Get(1, 2))
	}
}

func TestOutOfBoundsReadsBlank(t *testing.T) {
	s := NewScreen(3, 3)
	for _, p := range [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 3}} {
		s.SetStyled(p[0], p[1], 'x', ColorRed)
		checkCell(t, s, p[0], p[1], blank)
	}
	if s.String() != "   \n   \n   " {
		t.Errorf("out-of-bounds writes leaked: %q", s.String())
	}
}

func TestDrawTextStyledClips(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawTextStyled(2, 0, "héllo", ColorYellow)

	checkCell(t, s, 1, 0, blank)
	checkCell(t, s, 2, 0, cell('h', ColorYellow))
	checkCell(t, s, 3, 0, cell('é', ColorYellow))
	checkCell(t, s, 4, 0, cell('l', ColorYellow))

	s.DrawTextStyled(-2, 0, "abc", ColorCyan)
	checkCell(t, s, 0, 0, cell('c', ColorCyan))
	checkCell(t, s, 1, 0, blank)
}

func TestDrawTextCenteredColor(t *testing.T) {
	s := NewScreen(11, 2)
	s.DrawTextCentered(1, "GAME", ColorBrightRed)

	if got := s.Row(1); got != "   GAME    " {
		t.Errorf("Row(1) = %q", got)
	}
	checkCell(t, s, 3, 1, cell('G', ColorBrightRed))
	checkCell(t, s, 6, 1, cell('E', ColorBrightRed))
	checkCell(t, s, 2, 1, blank)
}

func TestDrawRectFill(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(1, 1, 3, 2), '░', ColorZinc900)

	for y := range 4 {
		for x := range 6 {
			want := blank
			if x >= 1 && x <= 3 && y >= 1 && y <= 2 {
				want = cell('░', ColorZinc900)
			}
			checkCell(t, s, x, y, want)
		}
	}
}

func TestDrawBoxColorsEveryEdge(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorZinc500)

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '┌'}, {4, 0, '┐'}, {0, 3, '└'}, {4, 3, '┘'},
		{2, 0, '─'}, {2, 3, '─'}, {0, 1, '│'}, {4, 2, '│'},
	}
	for _, tc := range tests {
		checkCell(t, s, tc.x, tc.y, cell(tc.want, ColorZinc500))
	}
	checkCell(t, s, 2, 1, blank)
	checkCell(t, s, 5, 0, blank)
}

func TestDrawBoxTooSmall(t *testing.T) {
	s := NewScreen(3, 3)
	s.DrawBox(NewRect(0, 0, 1, 3), ColorRed)
	s.DrawBox(NewRect(0, 0, 3, 1), ColorRed)
	if s.String() != "   \n   \n   " {
		t.Errorf("degenerate box drew %q", s.String())
	}
}

func TestDrawLines(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawHLine(1, 0, 2, '=', ColorGreen)
	s.DrawVLine(3, 1, 9, '|', ColorBlue)
	s.DrawHLine(0, 3, -2, '#', ColorRed)

	checkCell(t, s, 0, 0, blank)
	checkCell(t, s, 1, 0, cell('=', ColorGreen))
	checkCell(t, s, 2, 0, cell('=', ColorGreen))
	checkCell(t, s, 3, 0, blank)
	for y := 1; y < 4; y++ {
		checkCell(t, s, 3, y, cell('|', ColorBlue))
	}
	checkCell(t, s, 0, 3, blank)
}

func TestClearAndResizeDropColors(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawRect(NewRect(0, 0, 3, 2), '#', ColorMagenta)
	s.Clear()
	checkCell(t, s, 1, 1, blank)

	s.DrawRect(NewRect(0, 0, 3, 2), '#', ColorMagenta)
	s.Resize(3, 2)
	checkCell(t, s, 2, 0, blank)

	s.SetStyled(0, 0, '#', ColorMagenta)
	s.Resize(5, 1)
	if s.Width() != 5 || s.Height() != 1 {
		t.Fatalf("size = %dx%d, expected 5x1", s.Width(), s.Height())
	}
	checkCell(t, s, 0, 0, blank)
	checkCell(t, s, 4, 0, blank)
}

func TestStringDropsColors(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetStyled(0, 0, 'a', ColorRed)
	s.SetStyled(2, 1, 'b', ColorZinc700)

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}
	if got := s.Row(1); got != "  b" {
		t.Errorf("Row(1) = %q", got)
	}
	if got := s.Row(7); got != "   " {
		t.Errorf("Row(7) = %q, expected spaces", got)
	}
}
