package snake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Session defaults.
const (
	DefaultBoardSize  = 20
	DefaultTickPeriod = 100 * time.Millisecond
)

var ErrInvalidTickPeriod = errors.New("snake: tick period must be positive")

// Options configures a Session. The zero value plays on a 20x20 board at
// 100ms per tick, starting in the center heading right.
type Options struct {
	Board      Board
	TickPeriod time.Duration
	Start      *Point    // nil means the board center
	Direction  Direction // Initial heading, restored on every reset
	Food       *Point    // Fixed food for the first game; nil means random
	Seed       int64     // 0 seeds from the clock

	// Scores is read once here and written through a ScoreKeeper.
	// Keeper, when set, is used instead and is not closed with the session,
	// so several sessions can share one best score.
	Scores ScoreStore
	Keeper *ScoreKeeper

	Logger *log.Logger
}

// Session owns one game: its state, the fixed-rate timer that steps it and
// the score bookkeeping. All methods are safe for concurrent use; steering,
// ticks and resets are serialized by one mutex.
type Session struct {
	board     Board
	start     Point
	startDir  Direction
	logger    *log.Logger
	keeper    *ScoreKeeper
	ownKeeper bool

	mu        sync.Mutex
	state     State
	rng       *rand.Rand
	period    time.Duration
	quit      chan struct{} // non-nil while the timer goroutine is live
	paused    bool
	finalized bool
	closed    bool
	ticks     uint64
	seq       uint64
	subs      []subscriber
	nextSub   int

	notifyMu  sync.Mutex
	published uint64
}

type subscriber struct {
	id int
	fn func(Frame)
}

// NewSession validates opts, loads the best score and returns an idle session.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if opts.Board.Size == 0 {
		opts.Board.Size = DefaultBoardSize
	}
	if err := opts.Board.Validate(); err != nil {
		return nil, err
	}
	if opts.TickPeriod == 0 {
		opts.TickPeriod = DefaultTickPeriod
	}
	if opts.TickPeriod < 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidTickPeriod, opts.TickPeriod)
	}
	if !opts.Direction.Valid() {
		return nil, fmt.Errorf("snake: invalid start direction %d", opts.Direction)
	}

	start := opts.Board.Center()
	if opts.Start != nil {
		start = *opts.Start
	}
	if !opts.Board.Contains(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartOutsideBoard, start)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		board:    opts.Board,
		start:    start,
		startDir: opts.Direction,
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)),
		period:   opts.TickPeriod,
	}

	if opts.Keeper != nil {
		s.keeper = opts.Keeper
	} else {
		s.keeper = NewScoreKeeper(ctx, opts.Scores, logger)
		s.ownKeeper = true
	}

	s.state = s.fresh(PhaseIdle)
	if opts.Food != nil && opts.Board.Contains(*opts.Food) && *opts.Food != start {
		s.state.Food = *opts.Food
	}
	return s, nil
}

// fresh builds a new game: one segment at the start cell, initial heading,
// score 0, random food. Caller holds mu (or owns s exclusively).
func (s *Session) fresh(phase Phase) State {
	snake := []Point{s.start}
	food, _ := placeFood(s.board, snake, s.rng)
	s.finalized = false
	return State{
		Snake:       snake,
		Food:        food,
		Pending:     s.startDir,
		LastApplied: s.startDir,
		Phase:       phase,
	}
}

// Board returns the session's board.
func (s *Session) Board() Board {
	return s.board
}

// Start moves an idle game to Running and starts the timer.
// It does nothing in any other phase.
func (s *Session) Start() {
	s.mu.Lock()
	if s.closed || s.state.Phase != PhaseIdle {
		s.mu.Unlock()
		return
	}
	s.state.Phase = PhaseRunning
	s.paused = false
	s.startTimerLocked()
	s.logger.Debug("game started", "board", s.board.Size, "period", s.period)
	seq, f := s.frameLocked()
	s.mu.Unlock()

	s.publish(seq, f)
}

// Restart begins a fresh running game from any phase.
func (s *Session) Restart() {
	s.reset(PhaseRunning)
}

// Reset returns to a fresh idle game with the timer stopped.
func (s *Session) Reset() {
	s.reset(PhaseIdle)
}

func (s *Session) reset(phase Phase) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.state.Phase == PhaseRunning {
		s.finalizeLocked()
	}
	s.state = s.fresh(phase)
	s.paused = false
	if phase == PhaseRunning {
		s.startTimerLocked()
	} else {
		s.stopTimerLocked()
	}
	seq, f := s.frameLocked()
	s.mu.Unlock()

	s.publish(seq, f)
}

// Tick applies one simulation step. Drivers without a timer, and tests, call
// it directly. It does nothing unless the game is running and not paused.
func (s *Session) Tick() {
	s.mu.Lock()
	if s.closed || s.paused {
		s.mu.Unlock()
		return
	}
	seq, f, ok := s.stepLocked()
	s.mu.Unlock()

	if ok {
		s.publish(seq, f)
	}
}

// tickFromTimer is Tick for the timer goroutine that owns quit. A ticker
// that lost a race with stop finds s.quit replaced and exits without stepping.
func (s *Session) tickFromTimer(quit chan struct{}) bool {
	s.mu.Lock()
	if s.quit != quit {
		s.mu.Unlock()
		return false
	}
	seq, f, ok := s.stepLocked()
	live := s.quit == quit
	s.mu.Unlock()

	if ok {
		s.publish(seq, f)
	}
	return live
}

func (s *Session) stepLocked() (uint64, Frame, bool) {
	if s.state.Phase != PhaseRunning {
		return 0, Frame{}, false
	}

	prev := s.state.Score
	s.state = Step(s.state, s.board, s.rng)
	s.ticks++

	if s.state.Score > prev {
		s.keeper.Observe(s.state.Score)
	}
	if s.state.Phase == PhaseOver {
		s.stopTimerLocked()
		s.finalizeLocked()
		s.logger.Info("game over", "cause", s.state.Cause, "score", s.state.Score, "length", len(s.state.Snake))
	}

	seq, f := s.frameLocked()
	return seq, f, true
}

func (s *Session) finalizeLocked() {
	if s.finalized {
		return
	}
	s.finalized = true
	s.keeper.Finalize(s.state.Score)
}

// SetDirection records a steering request for the next tick. Reversals and
// requests outside a running game are ignored.
func (s *Session) SetDirection(d Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Steer(s.state, d)
}

// Pause halts the timer without leaving Running.
func (s *Session) Pause() {
	s.setPaused(true)
}

// Resume restarts the timer of a paused or stopped running game.
func (s *Session) Resume() {
	s.setPaused(false)
}

// TogglePause flips between Pause and Resume.
func (s *Session) TogglePause() {
	s.mu.Lock()
	paused := s.paused
	s.mu.Unlock()
	s.setPaused(!paused)
}

func (s *Session) setPaused(paused bool) {
	s.mu.Lock()
	if s.closed || s.state.Phase != PhaseRunning {
		s.mu.Unlock()
		return
	}
	s.paused = paused
	if paused {
		s.stopTimerLocked()
	} else {
		s.startTimerLocked()
	}
	seq, f := s.frameLocked()
	s.mu.Unlock()

	s.publish(seq, f)
}

// Stop halts the timer and leaves the state as it is. Stopping a stopped
// session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// SetTickPeriod changes the step period. A live timer is restarted with it.
func (s *Session) SetTickPeriod(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTickPeriod, d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if d == s.period {
		return nil
	}
	s.period = d
	if s.quit != nil {
		s.stopTimerLocked()
		s.startTimerLocked()
	}
	return nil
}

// TickPeriod returns the current step period.
func (s *Session) TickPeriod() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

// Close stops the timer and records an unfinished game's score. Later calls
// do nothing. Every other method becomes a no-op after Close.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.stopTimerLocked()
	if s.state.Phase == PhaseRunning {
		s.finalizeLocked()
	}
	s.mu.Unlock()

	if s.ownKeeper {
		s.keeper.Close()
	}
	return nil
}

func (s *Session) startTimerLocked() {
	if s.quit != nil || s.closed || s.state.Phase != PhaseRunning {
		return
	}
	quit := make(chan struct{})
	s.quit = quit
	go s.run(s.period, quit)
}

func (s *Session) stopTimerLocked() {
	if s.quit == nil {
		return
	}
	close(s.quit)
	s.quit = nil
}

func (s *Session) run(period time.Duration, quit chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			if !s.tickFromTimer(quit) {
				return
			}
		}
	}
}

// State returns a copy of the current game state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase
}

// Paused reports whether a running game is paused.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Ticking reports whether the timer goroutine is active.
func (s *Session) Ticking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quit != nil
}

// Ticks returns how many steps have been applied over the session's life.
func (s *Session) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// HighScore returns the best score known to this session.
func (s *Session) HighScore() int {
	return s.keeper.Best()
}

// Frame projects the current state, with the best score and pause flag filled in.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, f := s.frameLocked()
	return f
}

func (s *Session) frameLocked() (uint64, Frame) {
	s.seq++
	f := Project(s.state, s.board)
	f.HighScore = max(s.keeper.Best(), s.state.Score)
	f.Paused = s.paused
	return s.seq, f
}

// Subscribe registers fn to receive a frame after every step, start, pause
// and reset. Frames are delivered in order from the goroutine that caused
// them; fn must not block and must not call back into mutating methods.
func (s *Session) Subscribe(fn func(Frame)) (cancel func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// publish hands f to every subscriber. Frames older than one already
// delivered are dropped, so observers never see time run backwards.
func (s *Session) publish(seq uint64, f Frame) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if seq <= s.published {
		return
	}
	s.published = seq

	s.mu.Lock()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(f)
	}
}

// Updates streams frames on a channel that always holds the latest one.
// The current frame is sent first. The channel is closed when ctx is done.
func (s *Session) Updates(ctx context.Context) <-chan Frame {
	ch := make(chan Frame, 1)
	ch <- s.Frame()

	cancel := s.Subscribe(func(f Frame) {
		// Only publish sends, under notifyMu, so drain-then-send cannot race
		select {
		case ch <- f:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- f
		}
	})

	go func() {
		<-ctx.Done()
		cancel()
		s.notifyMu.Lock()
		close(ch)
		s.notifyMu.Unlock()
	}()
	return ch
}
