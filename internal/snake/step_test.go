package snake

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func running(dir Direction, food Point, snake ...Point) State {
	return State{
		Snake:       snake,
		Food:        food,
		Pending:     dir,
		LastApplied: dir,
		Phase:       PhaseRunning,
	}
}

func TestStepMovesWithoutInput(t *testing.T) {
	b := Board{Size: 20}
	s := running(DirRight, Point{15, 5}, Point{10, 10})

	next := Step(s, b, rand.New(rand.NewSource(1)))

	assert.Equal(t, []Point{{11, 10}}, next.Snake)
	assert.Equal(t, Point{15, 5}, next.Food)
	assert.Equal(t, 0, next.Score)
	assert.Equal(t, PhaseRunning, next.Phase)
	assert.Equal(t, DirRight, next.LastApplied)
}

func TestStepEatsFood(t *testing.T) {
	b := Board{Size: 20}
	s := running(DirRight, Point{15, 5}, Point{14, 5}, Point{13, 5})

	next := Step(s, b, rand.New(rand.NewSource(7)))

	require.Len(t, next.Snake, 3)
	assert.Equal(t, Point{15, 5}, next.Snake[0])
	assert.Equal(t, []Point{{14, 5}, {13, 5}}, next.Snake[1:])
	assert.Equal(t, 1, next.Score)
	assert.True(t, b.Contains(next.Food))
	assert.False(t, next.Occupies(next.Food), "food placed under the snake")
}

func TestStepWallCollision(t *testing.T) {
	b := Board{Size: 20}
	tests := []struct {
		name string
		dir  Direction
		head Point
	}{
		{"left edge", DirLeft, Point{0, 4}},
		{"right edge", DirRight, Point{19, 4}},
		{"top edge", DirUp, Point{4, 0}},
		{"bottom edge", DirDown, Point{4, 19}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := running(tc.dir, Point{10, 10}, tc.head)

			next := Step(s, b, rand.New(rand.NewSource(1)))

			assert.Equal(t, PhaseOver, next.Phase)
			assert.Equal(t, CauseWall, next.Cause)
			assert.Equal(t, s.Snake, next.Snake, "snake must be the pre-collision snapshot")
			assert.Equal(t, s.Food, next.Food)
			assert.Equal(t, s.Score, next.Score)
		})
	}
}

func TestStepSelfCollisionIncludesTail(t *testing.T) {
	b := Board{Size: 10}
	// Head at (2,2) heading up; turning right lands on the tail at (3,2)
	s := running(DirUp, Point{8, 8}, Point{2, 2}, Point{2, 3}, Point{3, 3}, Point{3, 2})
	s = Steer(s, DirRight)

	next := Step(s, b, rand.New(rand.NewSource(1)))

	assert.Equal(t, PhaseOver, next.Phase)
	assert.Equal(t, CauseSelf, next.Cause)
	assert.Equal(t, s.Snake, next.Snake)
}

func TestSteerIgnoresReversal(t *testing.T) {
	b := Board{Size: 20}
	s := running(DirUp, Point{0, 0}, Point{5, 5}, Point{5, 6})

	s = Steer(s, DirDown)
	assert.Equal(t, DirUp, s.Pending)

	next := Step(s, b, rand.New(rand.NewSource(1)))
	assert.Equal(t, Point{5, 4}, next.Snake[0])
	assert.Equal(t, PhaseRunning, next.Phase)
}

func TestSteerKeepsLatestRequest(t *testing.T) {
	s := running(DirUp, Point{0, 0}, Point{5, 5})

	s = Steer(s, DirLeft)
	s = Steer(s, DirRight)
	s = Steer(s, DirLeft)

	assert.Equal(t, DirLeft, s.Pending)
}

func TestSteerOnlyWhileRunning(t *testing.T) {
	s := running(DirRight, Point{0, 0}, Point{5, 5})
	s.Phase = PhaseIdle
	assert.Equal(t, DirRight, Steer(s, DirUp).Pending)

	s.Phase = PhaseOver
	assert.Equal(t, DirRight, Steer(s, DirUp).Pending)
}

func TestStepFallsBackOnOppositePending(t *testing.T) {
	b := Board{Size: 20}
	s := running(DirRight, Point{0, 0}, Point{5, 5}, Point{4, 5})
	s.Pending = DirLeft // bypassing Steer

	next := Step(s, b, rand.New(rand.NewSource(1)))

	assert.Equal(t, Point{6, 5}, next.Snake[0])
	assert.Equal(t, DirRight, next.LastApplied)
	assert.Equal(t, DirRight, next.Pending)
}

func TestStepIgnoresStoppedGames(t *testing.T) {
	b := Board{Size: 20}
	for _, phase := range []Phase{PhaseIdle, PhaseOver} {
		s := running(DirRight, Point{0, 0}, Point{5, 5})
		s.Phase = phase

		assert.Equal(t, s, Step(s, b, rand.New(rand.NewSource(1))), phase.String())
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	b := Board{Size: 20}
	s := running(DirRight, Point{0, 0}, Point{5, 5}, Point{4, 5}, Point{3, 5})
	before := s.Clone()

	_ = Step(s, b, rand.New(rand.NewSource(1)))

	assert.Equal(t, before, s)
}

// serpentine returns every cell of a size x size board in a boustrophedon path.
func serpentine(size int) []Point {
	path := make([]Point, 0, size*size)
	for y := range size {
		for i := range size {
			x := i
			if y%2 == 1 {
				x = size - 1 - i
			}
			path = append(path, Point{x, y})
		}
	}
	return path
}

func TestStepBoardFullEndsGame(t *testing.T) {
	b := Board{Size: MinBoardSize}
	path := serpentine(b.Size)

	// Snake covers all but the last cell, head just before it
	snake := make([]Point, 0, len(path)-1)
	for i := len(path) - 2; i >= 0; i-- {
		snake = append(snake, path[i])
	}
	s := running(DirRight, path[len(path)-1], snake...)

	next := Step(s, b, rand.New(rand.NewSource(1)))

	assert.Equal(t, PhaseOver, next.Phase)
	assert.Equal(t, CauseBoardFull, next.Cause)
	assert.Len(t, next.Snake, b.Cells())
	assert.Equal(t, s.Score+1, next.Score)
	assert.False(t, b.Contains(next.Food))
}

func TestPlaceFoodCrowdedBoard(t *testing.T) {
	b := Board{Size: MinBoardSize}
	path := serpentine(b.Size)
	free := path[12]
	snake := append(append([]Point{}, path[:12]...), path[13:]...)

	for seed := int64(1); seed <= 20; seed++ {
		food, ok := placeFood(b, snake, rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		assert.Equal(t, free, food)
	}
}

func TestPlaceFoodFullBoard(t *testing.T) {
	b := Board{Size: MinBoardSize}

	_, ok := placeFood(b, serpentine(b.Size), rand.New(rand.NewSource(1)))

	assert.False(t, ok)
}

// TestStepProperties plays random games and checks what must hold after
// every non-colliding step.
func TestStepProperties(t *testing.T) {
	b := Board{Size: 8}
	dirs := []Direction{DirUp, DirDown, DirLeft, DirRight}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		food, _ := placeFood(b, []Point{b.Center()}, rng)
		s := running(DirRight, food, b.Center())

		for range 300 {
			if s.Phase != PhaseRunning {
				break
			}
			s = Steer(s, dirs[rng.Intn(len(dirs))])
			next := Step(s, b, rng)

			if next.Phase == PhaseOver && next.Cause != CauseBoardFull {
				assert.Equal(t, s.Snake, next.Snake)
				break
			}

			grew := len(next.Snake) - len(s.Snake)
			require.Contains(t, []int{0, 1}, grew)
			assert.Equal(t, s.Score+grew, next.Score)
			assert.False(t, next.LastApplied.IsOpposite(s.LastApplied))

			seen := make(map[Point]bool, len(next.Snake))
			for _, seg := range next.Snake {
				require.True(t, b.Contains(seg))
				require.False(t, seen[seg], "duplicate segment %v", seg)
				seen[seg] = true
			}
			if next.Phase == PhaseRunning {
				require.False(t, seen[next.Food], "food %v under the snake", next.Food)
			}
			s = next
		}
	}
}

func TestDirectionHelpers(t *testing.T) {
	assert.Equal(t, DirDown, DirUp.Opposite())
	assert.Equal(t, DirLeft, DirRight.Opposite())
	assert.True(t, DirUp.IsOpposite(DirDown))
	assert.False(t, DirUp.IsOpposite(DirLeft))
	assert.False(t, Direction(9).Valid())

	d, err := ParseDirection(" Up ")
	require.NoError(t, err)
	assert.Equal(t, DirUp, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
