// Package web serves snake sessions over a JSON HTTP API for browser clients.
// Every created session runs its own timer on the server; clients steer it
// and poll for frames.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
	storeTimeout      = 2 * time.Second
)

// SessionFactory builds a fresh idle session for one client.
type SessionFactory func(ctx context.Context) (*snake.Session, error)

// ScoreSource is where the score endpoints read from.
// *storage.KeyedScores implements it.
type ScoreSource interface {
	TopScores(ctx context.Context, limit int) ([]storage.ScoreEntry, error)
	Stats(ctx context.Context) (*storage.GameStats, error)
}

// Config holds configuration for the HTTP server.
type Config struct {
	Address string

	// Sessions untouched for IdleTimeout are closed by the reaper.
	// Zero keeps them until deleted.
	IdleTimeout time.Duration

	NewSession SessionFactory
	Scores     ScoreSource // May be nil
	Logger     *log.Logger
}

type entry struct {
	session  *snake.Session
	lastSeen time.Time
}

// Server owns the live sessions and the gin router that exposes them.
type Server struct {
	cfg    Config
	logger *log.Logger
	router *gin.Engine
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewServer builds the router. It does not listen until ListenAndServe.
func NewServer(cfg Config) (*Server, error) {
	if cfg.NewSession == nil {
		return nil, errors.New("web: server needs a session factory")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.withSession(s.getFrame))
	api.POST("/sessions/:id/direction", s.withSession(s.setDirection))
	api.POST("/sessions/:id/restart", s.withSession(s.restart))
	api.POST("/sessions/:id/pause", s.withSession(s.togglePause))
	api.DELETE("/sessions/:id", s.deleteSession)
	api.GET("/highscore", s.highScore)
	api.GET("/scores", s.topScores)

	s.router = r
	return s, nil
}

// Handler returns the HTTP handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs one line per request through the server's logger.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(started),
		)
	}
}

func (s *Server) createSession(c *gin.Context) {
	session, err := s.cfg.NewSession(c.Request.Context())
	if err != nil {
		s.logger.Error("could not create session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	session.Start()

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &entry{session: session, lastSeen: s.now()}
	count := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("session started", "session", id, "live", count)
	c.JSON(http.StatusCreated, gin.H{"id": id, "frame": NewFrameJSON(session.Frame())})
}

// withSession resolves :id and refreshes its idle clock, or answers 404.
func (s *Server) withSession(h func(*gin.Context, *snake.Session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		e, ok := s.sessions[c.Param("id")]
		if ok {
			e.lastSeen = s.now()
		}
		s.mu.Unlock()

		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
			return
		}
		h(c, e.session)
	}
}

func (s *Server) getFrame(c *gin.Context, session *snake.Session) {
	c.JSON(http.StatusOK, NewFrameJSON(session.Frame()))
}

type directionRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (s *Server) setDirection(c *gin.Context, session *snake.Session) {
	var req directionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"direction\": \"up|down|left|right\"}"})
		return
	}
	dir, err := snake.ParseDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session.SetDirection(dir)
	c.Status(http.StatusNoContent)
}

func (s *Server) restart(c *gin.Context, session *snake.Session) {
	session.Restart()
	c.JSON(http.StatusOK, NewFrameJSON(session.Frame()))
}

func (s *Server) togglePause(c *gin.Context, session *snake.Session) {
	session.TogglePause()
	c.JSON(http.StatusOK, NewFrameJSON(session.Frame()))
}

func (s *Server) deleteSession(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	//nolint:errcheck // Close never fails
	e.session.Close()
	s.logger.Info("session closed", "session", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) highScore(c *gin.Context) {
	if s.cfg.Scores == nil {
		c.JSON(http.StatusOK, gin.H{"highScore": 0})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	stats, err := s.cfg.Scores.Stats(ctx)
	if err != nil {
		s.logger.Warn("could not read high score", "error", err)
		c.JSON(http.StatusOK, gin.H{"highScore": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"highScore": stats.HighScore})
}

type scoreJSON struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) topScores(c *gin.Context) {
	limit := defaultScoreLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxScoreLimit)
	}

	out := []scoreJSON{}
	if s.cfg.Scores != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		entries, err := s.cfg.Scores.TopScores(ctx, limit)
		if err != nil {
			s.logger.Error("could not read scores", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "scores unavailable"})
			return
		}
		for i, e := range entries {
			out = append(out, scoreJSON{Rank: i + 1, Score: e.Score, CreatedAt: e.CreatedAt})
		}
	}
	c.JSON(http.StatusOK, gin.H{"scores": out})
}

// Reap closes sessions idle since before now-IdleTimeout and returns how
// many it closed.
func (s *Server) Reap(now time.Time) int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-s.cfg.IdleTimeout)

	var stale []*snake.Session
	s.mu.Lock()
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.session)
			delete(s.sessions, id)
			s.logger.Info("session expired", "session", id)
		}
	}
	s.mu.Unlock()

	for _, session := range stale {
		//nolint:errcheck // Close never fails
		session.Close()
	}
	return len(stale)
}

// Len returns the number of live sessions.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close closes every live session.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range sessions {
		//nolint:errcheck // Close never fails
		e.session.Close()
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully and
// closes all sessions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	defer s.Close()

	if s.cfg.IdleTimeout > 0 {
		go s.reapLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("web: %w", err)
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) reapLoop(ctx context.Context) {
	ticker := time.NewTicker(min(s.cfg.IdleTimeout, time.Minute))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Reap(now)
		}
	}
}
