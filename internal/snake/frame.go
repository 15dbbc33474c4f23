package snake

import "sort"

// Role tags what occupies a board cell in a Frame.
type Role uint8

const (
	RoleEmpty Role = iota
	RoleHead
	RoleBody
	RoleFood
)

func (r Role) String() string {
	switch r {
	case RoleHead:
		return "head"
	case RoleBody:
		return "body"
	case RoleFood:
		return "food"
	default:
		return "empty"
	}
}

// Cell is one occupied board position.
type Cell struct {
	Point
	Role Role
}

// Frame is a render-ready snapshot of the board. Surfaces draw it however
// they like; empty cells are implicit.
type Frame struct {
	Size      int
	Phase     Phase
	Cause     Cause
	Score     int
	HighScore int
	Direction Direction
	Paused    bool
	Cells     map[Point]Role
}

// Project maps a state to its frame. It is deterministic and has no side effects.
// HighScore and Paused are session concerns and are left zero.
func Project(s State, b Board) Frame {
	cells := make(map[Point]Role, len(s.Snake)+1)
	if b.Contains(s.Food) {
		cells[s.Food] = RoleFood
	}
	for i, seg := range s.Snake {
		if i == 0 {
			cells[seg] = RoleHead
		} else {
			cells[seg] = RoleBody
		}
	}

	return Frame{
		Size:      b.Size,
		Phase:     s.Phase,
		Cause:     s.Cause,
		Score:     s.Score,
		Direction: s.LastApplied,
		Cells:     cells,
	}
}

// At returns the role of the cell at p.
func (f Frame) At(p Point) Role {
	return f.Cells[p]
}

// Rows returns the board as Size rows of Size roles, top row first.
func (f Frame) Rows() [][]Role {
	rows := make([][]Role, f.Size)
	for y := range rows {
		rows[y] = make([]Role, f.Size)
	}
	for p, r := range f.Cells {
		if p.X >= 0 && p.X < f.Size && p.Y >= 0 && p.Y < f.Size {
			rows[p.Y][p.X] = r
		}
	}
	return rows
}

// Occupied lists the non-empty cells in reading order.
func (f Frame) Occupied() []Cell {
	cells := make([]Cell, 0, len(f.Cells))
	for p, r := range f.Cells {
		cells = append(cells, Cell{Point: p, Role: r})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// Won reports whether the game ended with the snake filling the board.
func (f Frame) Won() bool {
	return f.Phase == PhaseOver && f.Cause == CauseBoardFull
}
