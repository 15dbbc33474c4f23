package snake

import (
	"errors"
	"fmt"
	"math/rand"
)

// MinBoardSize is the smallest playable board edge.
const MinBoardSize = 5

// foodDrawAttempts bounds the random draws before placeFood enumerates free cells.
const foodDrawAttempts = 32

var (
	ErrBoardTooSmall     = errors.New("snake: board must be at least 5x5")
	ErrStartOutsideBoard = errors.New("snake: start position is outside the board")
)

// Board is a square grid of Size x Size cells.
type Board struct {
	Size int
}

// Validate checks the board is large enough to play on.
func (b Board) Validate() error {
	if b.Size < MinBoardSize {
		return fmt.Errorf("%w: got %d", ErrBoardTooSmall, b.Size)
	}
	return nil
}

// Contains checks if p lies within [0, Size) on both axes.
func (b Board) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.Size && p.Y >= 0 && p.Y < b.Size
}

// Cells returns the number of cells on the board.
func (b Board) Cells() int {
	return b.Size * b.Size
}

// Center returns the middle cell, rounding towards the bottom-right.
func (b Board) Center() Point {
	return Point{X: b.Size / 2, Y: b.Size / 2}
}

// placeFood picks a cell uniformly at random among those not covered by snake.
// It returns false when the snake already fills the whole board.
func placeFood(b Board, snake []Point, rng *rand.Rand) (Point, bool) {
	if len(snake) >= b.Cells() {
		return noFood, false
	}

	occupied := make(map[Point]struct{}, len(snake))
	for _, seg := range snake {
		occupied[seg] = struct{}{}
	}

	// Rejection sampling stays uniform and is O(1) while the board is sparse
	for range foodDrawAttempts {
		p := Point{X: rng.Intn(b.Size), Y: rng.Intn(b.Size)}
		if _, taken := occupied[p]; !taken {
			return p, true
		}
	}

	// Crowded board: collect all empty cells
	free := make([]Point, 0, b.Cells()-len(occupied))
	for y := range b.Size {
		for x := range b.Size {
			p := Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return noFood, false
	}
	return free[rng.Intn(len(free))], true
}
