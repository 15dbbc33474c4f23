package web

import "github.com/vovakirdan/tui-snake/internal/snake"

// CellJSON is one occupied board cell.
type CellJSON struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Role string `json:"role"`
}

// FrameJSON is the wire form of snake.Frame. Empty cells are omitted.
type FrameJSON struct {
	Size      int        `json:"size"`
	Phase     string     `json:"phase"`
	Cause     string     `json:"cause,omitempty"`
	Score     int        `json:"score"`
	HighScore int        `json:"highScore"`
	Direction string     `json:"direction"`
	Paused    bool       `json:"paused"`
	Cells     []CellJSON `json:"cells"`
}

// NewFrameJSON converts a frame, listing cells in reading order.
func NewFrameJSON(f snake.Frame) FrameJSON {
	occupied := f.Occupied()
	cells := make([]CellJSON, len(occupied))
	for i, c := range occupied {
		cells[i] = CellJSON{X: c.X, Y: c.Y, Role: c.Role.String()}
	}
	return FrameJSON{
		Size:      f.Size,
		Phase:     f.Phase.String(),
		Cause:     f.Cause.String(),
		Score:     f.Score,
		HighScore: f.HighScore,
		Direction: f.Direction.String(),
		Paused:    f.Paused,
		Cells:     cells,
	}
}
