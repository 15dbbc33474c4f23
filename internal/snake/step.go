package snake

import "math/rand"

// Step advances a running game by one tick and returns the new state.
// States in any other phase are returned unchanged. The input state is never
// modified; the returned snake is a fresh slice. After a move Pending and
// LastApplied both hold the direction that was used.
func Step(s State, b Board, rng *rand.Rand) State {
	if s.Phase != PhaseRunning || len(s.Snake) == 0 {
		return s
	}

	// A reversal would run the head into the neck, keep going straight instead
	dir := s.Pending
	if !dir.Valid() || dir.IsOpposite(s.LastApplied) {
		dir = s.LastApplied
	}

	head := s.Snake[0].Move(dir)

	if !b.Contains(head) {
		return s.over(CauseWall)
	}

	// The tail has not moved yet, so every segment counts
	if s.Occupies(head) {
		return s.over(CauseSelf)
	}

	next := s
	next.Pending = dir
	next.LastApplied = dir

	if head == s.Food {
		snake := make([]Point, 0, len(s.Snake)+1)
		snake = append(snake, head)
		snake = append(snake, s.Snake...)
		next.Snake = snake
		next.Score++

		food, ok := placeFood(b, snake, rng)
		next.Food = food
		if !ok {
			next.Phase = PhaseOver
			next.Cause = CauseBoardFull
		}
		return next
	}

	snake := make([]Point, len(s.Snake))
	snake[0] = head
	copy(snake[1:], s.Snake[:len(s.Snake)-1])
	next.Snake = snake
	return next
}

// Steer records a direction request for the next tick.
// Requests that reverse the last applied direction are ignored, as are
// requests while the game is not running. Only the latest request is kept.
func Steer(s State, d Direction) State {
	if s.Phase != PhaseRunning || !d.Valid() || d.IsOpposite(s.LastApplied) {
		return s
	}
	s.Pending = d
	return s
}
