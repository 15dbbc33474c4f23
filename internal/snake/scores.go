package snake

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	storeTimeout   = 2 * time.Second
	scoreQueueSize = 16
)

// ScoreStore persists a single best score. Implementations pick the key.
// A missing value must be reported as 0, not as an error.
type ScoreStore interface {
	HighScore(ctx context.Context) (int, error)
	SetHighScore(ctx context.Context, score int) error
}

// ScoreRecorder is optionally implemented by a ScoreStore that keeps a
// history of finished games.
type ScoreRecorder interface {
	RecordScore(ctx context.Context, score int) error
}

// scoreWrite is one queued persistence job.
type scoreWrite struct {
	high  int
	final int
	done  bool // game finished, record final in history
}

// ScoreKeeper tracks the best score for a process and writes it through to a
// ScoreStore on a background goroutine, so a slow or broken store never
// delays a tick. Store failures are logged and otherwise ignored.
type ScoreKeeper struct {
	store  ScoreStore
	logger *log.Logger

	mu     sync.Mutex
	best   int
	writes chan scoreWrite
	closed bool

	closeOnce sync.Once
	done      chan struct{}
}

// NewScoreKeeper reads the stored high score once. A nil store gives a keeper
// that only remembers the best score in memory.
func NewScoreKeeper(ctx context.Context, store ScoreStore, logger *log.Logger) *ScoreKeeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	k := &ScoreKeeper{
		store:  store,
		logger: logger,
		done:   make(chan struct{}),
	}

	if store == nil {
		close(k.done)
		return k
	}

	loadCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	best, err := store.HighScore(loadCtx)
	if err != nil {
		logger.Warn("could not read high score, starting from 0", "error", err)
		best = 0
	}
	k.best = max(best, 0)

	k.writes = make(chan scoreWrite, scoreQueueSize)
	go k.run()
	return k
}

// Best returns the highest score seen so far, stored or played.
func (k *ScoreKeeper) Best() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.best
}

// Observe is called after every tick. It persists the score when it beats
// the best so far.
func (k *ScoreKeeper) Observe(score int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if score <= k.best {
		return
	}
	k.best = score
	k.enqueueLocked(scoreWrite{high: score})
}

// Finalize is called once when a game ends. It persists max(best, score)
// and records score in the history if the store keeps one.
func (k *ScoreKeeper) Finalize(score int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.best = max(k.best, score)
	k.enqueueLocked(scoreWrite{high: k.best, final: score, done: true})
}

func (k *ScoreKeeper) enqueueLocked(w scoreWrite) {
	if k.writes == nil || k.closed {
		return
	}
	select {
	case k.writes <- w:
	default:
		// The stored value is a max, so a dropped write is repaired by the next one
		k.logger.Warn("score store is falling behind, dropping write", "score", w.high)
	}
}

func (k *ScoreKeeper) run() {
	defer close(k.done)

	recorder, _ := k.store.(ScoreRecorder)
	for w := range k.writes {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if err := k.store.SetHighScore(ctx, w.high); err != nil {
			k.logger.Warn("could not save high score", "score", w.high, "error", err)
		}
		if w.done && w.final > 0 && recorder != nil {
			if err := recorder.RecordScore(ctx, w.final); err != nil {
				k.logger.Warn("could not record score", "score", w.final, "error", err)
			}
		}
		cancel()
	}
}

// Close flushes queued writes and stops the writer. It is safe to call more than once.
func (k *ScoreKeeper) Close() {
	k.closeOnce.Do(func() {
		k.mu.Lock()
		k.closed = true
		if k.writes != nil {
			close(k.writes)
		}
		k.mu.Unlock()
	})
	<-k.done
}
