// Package config provides YAML-based configuration loading for the snake
// binary, with environment and flag overrides applied on top.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Config contains all configuration for a snake process.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Storage StorageConfig `yaml:"storage"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig defines the playing field and where the snake begins.
type BoardConfig struct {
	Size      int    `yaml:"size"`
	StartX    int    `yaml:"start_x"` // -1 = center
	StartY    int    `yaml:"start_y"` // -1 = center
	Direction string `yaml:"direction"`
}

// TimingConfig defines the tick period. A named speed wins over tick_ms.
type TimingConfig struct {
	TickMS int    `yaml:"tick_ms"`
	Speed  string `yaml:"speed"` // "slow", "normal", "fast" or empty
}

// StorageConfig defines where scores live.
type StorageConfig struct {
	Path string `yaml:"path"`
	Key  string `yaml:"key"`
}

// RenderConfig defines terminal drawing.
type RenderConfig struct {
	CellWidth int    `yaml:"cell_width"`
	Theme     string `yaml:"theme"`
}

// ServerConfig defines the SSH and HTTP listeners.
type ServerConfig struct {
	SSHAddr            string `yaml:"ssh_addr"`
	HTTPAddr           string `yaml:"http_addr"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var (
	ErrInvalidTick  = errors.New("config: tick_ms must be positive")
	ErrInvalidSpeed = errors.New("config: unknown speed")
)

// Validate checks the values the engine would otherwise reject at runtime.
func (c Config) Validate() error {
	if c.Board.Size < snake.MinBoardSize {
		return fmt.Errorf("config: board size %d: %w", c.Board.Size, snake.ErrBoardTooSmall)
	}
	if _, err := c.TickPeriod(); err != nil {
		return err
	}
	if _, err := c.StartDirection(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Board.StartX >= c.Board.Size || c.Board.StartY >= c.Board.Size {
		return fmt.Errorf("config: start (%d,%d): %w", c.Board.StartX, c.Board.StartY, snake.ErrStartOutsideBoard)
	}
	if c.Render.CellWidth < 1 {
		return fmt.Errorf("config: cell_width must be at least 1, got %d", c.Render.CellWidth)
	}
	return nil
}

// TickPeriod resolves the speed preset or tick_ms into a duration.
func (c Config) TickPeriod() (time.Duration, error) {
	if c.Timing.Speed != "" {
		ms, err := SpeedTickMS(Speed(c.Timing.Speed))
		if err != nil {
			return 0, err
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	if c.Timing.TickMS <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTick, c.Timing.TickMS)
	}
	return time.Duration(c.Timing.TickMS) * time.Millisecond, nil
}

// StartDirection parses the configured initial heading. Empty means right.
func (c Config) StartDirection() (snake.Direction, error) {
	if c.Board.Direction == "" {
		return snake.DirRight, nil
	}
	return snake.ParseDirection(c.Board.Direction)
}

// StartPoint returns the configured start cell, or nil for the board center.
func (c Config) StartPoint() *snake.Point {
	if c.Board.StartX < 0 || c.Board.StartY < 0 {
		return nil
	}
	return &snake.Point{X: c.Board.StartX, Y: c.Board.StartY}
}

// IdleTimeout returns how long an unused web session survives.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutMinutes) * time.Minute
}

// SessionOptions builds engine options from the config. Scores, Seed and
// Logger are left for the caller.
func (c Config) SessionOptions() (snake.Options, error) {
	if err := c.Validate(); err != nil {
		return snake.Options{}, err
	}
	period, _ := c.TickPeriod()
	dir, _ := c.StartDirection()
	return snake.Options{
		Board:      snake.Board{Size: c.Board.Size},
		TickPeriod: period,
		Start:      c.StartPoint(),
		Direction:  dir,
	}, nil
}
