package core

// Color represents a foreground color for a screen cell.
// Each value maps to an ANSI 256-color code so every terminal backend
// agrees on what it looks like.
type Color uint8

// Predefined colors. The zinc shades match the Tailwind zinc scale.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
	ColorZinc300
	ColorZinc500
	ColorZinc700
	ColorZinc900
)

var ansiCodes = [...]int{
	ColorDefault:      -1,
	ColorRed:          1,
	ColorGreen:        2,
	ColorYellow:       3,
	ColorBlue:         4,
	ColorMagenta:      5,
	ColorCyan:         6,
	ColorWhite:        7,
	ColorBrightRed:    9,
	ColorBrightGreen:  10,
	ColorBrightYellow: 11,
	ColorBrightWhite:  15,
	ColorGray:         245,
	ColorZinc300:      252, // #d4d4d8
	ColorZinc500:      243, // #71717a
	ColorZinc700:      238, // #3f3f46
	ColorZinc900:      234, // #18181b
}

// ANSI returns the 256-color palette index for c, or -1 for the terminal default.
func (c Color) ANSI() int {
	if int(c) >= len(ansiCodes) {
		return -1
	}
	return ansiCodes[c]
}
