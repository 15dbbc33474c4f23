// Package snake implements the Snake game engine: grid simulation, steering,
// frame projection and the fixed-tick session lifecycle.
// Game logic here is pure; platform packages drive a Session and draw its frames.
package snake

import (
	"fmt"
	"strings"
)

// Direction represents the snake's movement direction.
// Opposite directions are two apart, so Opposite is a simple rotation.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the direction that reverses d's axis.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// IsOpposite checks if two directions are opposite.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Valid() && other.Valid() && d.Opposite() == other
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("snake: unknown direction %q", s)
}

// Point represents a 2D grid coordinate. Origin is the top-left cell.
type Point struct {
	X, Y int
}

// Move returns the neighbouring point one cell along d.
func (p Point) Move(d Direction) Point {
	switch d {
	case DirUp:
		return Point{X: p.X, Y: p.Y - 1}
	case DirDown:
		return Point{X: p.X, Y: p.Y + 1}
	case DirLeft:
		return Point{X: p.X - 1, Y: p.Y}
	case DirRight:
		return Point{X: p.X + 1, Y: p.Y}
	}
	return p
}

// Phase is the lifecycle state of a game session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Cause records why a session reached PhaseOver.
type Cause int

const (
	CauseNone Cause = iota
	CauseWall
	CauseSelf
	CauseBoardFull // snake fills the board; counts as a win
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall-collision"
	case CauseSelf:
		return "self-collision"
	case CauseBoardFull:
		return "board-full"
	default:
		return ""
	}
}

// noFood marks the food slot once the board has no free cell left.
var noFood = Point{X: -1, Y: -1}

// State is one immutable snapshot of a game. Step returns a new State
// rather than modifying its input.
type State struct {
	Snake       []Point // Head at index 0
	Food        Point
	Pending     Direction // Latest accepted steering request
	LastApplied Direction // Direction used by the most recent move
	Score       int
	Phase       Phase
	Cause       Cause
}

// Head returns the snake's head position.
func (s State) Head() Point {
	if len(s.Snake) == 0 {
		return noFood
	}
	return s.Snake[0]
}

// Occupies checks if any segment of the snake is at p.
func (s State) Occupies(p Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Snake = append([]Point(nil), s.Snake...)
	return s
}

// over returns the terminal snapshot: s unchanged apart from phase and cause.
func (s State) over(cause Cause) State {
	s.Phase = PhaseOver
	s.Cause = cause
	return s
}
