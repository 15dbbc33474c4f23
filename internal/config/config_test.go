package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg := Config{}
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))

	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  size: 12\ntiming:\n  speed: fast\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Board.Size)
	assert.Equal(t, -1, cfg.Board.StartX)
	assert.Equal(t, "~/.snake/scores.db", cfg.Storage.Path)

	period, err := cfg.TickPeriod()
	require.NoError(t, err)
	assert.Equal(t, 70*time.Millisecond, period)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"board too small", func(c *Config) { c.Board.Size = 4 }, snake.ErrBoardTooSmall},
		{"zero tick", func(c *Config) { c.Timing.TickMS = 0 }, ErrInvalidTick},
		{"unknown speed", func(c *Config) { c.Timing.Speed = "ludicrous" }, ErrInvalidSpeed},
		{"start outside", func(c *Config) { c.Board.StartX = 20; c.Board.StartY = 0 }, snake.ErrStartOutsideBoard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.target)
		})
	}

	cfg := Default()
	cfg.Board.Direction = "diagonal"
	assert.Error(t, cfg.Validate())
}

func TestSessionOptions(t *testing.T) {
	cfg := Default()
	cfg.Board.StartX, cfg.Board.StartY = 3, 4
	cfg.Board.Direction = "up"
	cfg.Timing.Speed = "slow"

	opts, err := cfg.SessionOptions()
	require.NoError(t, err)

	assert.Equal(t, 20, opts.Board.Size)
	assert.Equal(t, 150*time.Millisecond, opts.TickPeriod)
	require.NotNil(t, opts.Start)
	assert.Equal(t, snake.Point{X: 3, Y: 4}, *opts.Start)
	assert.Equal(t, snake.DirUp, opts.Direction)

	assert.Nil(t, Default().StartPoint())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SNAKE_DB":         "/tmp/snake.db",
		"SNAKE_TICK_MS":    "80",
		"SNAKE_BOARD_SIZE": "15",
		"SNAKE_LOG_LEVEL":  "debug",
		"PORT":             "9000",
		"SNAKE_THEME":      "  ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	cfg.Timing.Speed = "fast"
	require.NoError(t, ApplyEnv(&cfg, lookup))

	assert.Equal(t, "/tmp/snake.db", cfg.Storage.Path)
	assert.Equal(t, 80, cfg.Timing.TickMS)
	assert.Empty(t, cfg.Timing.Speed, "explicit tick_ms beats the preset")
	assert.Equal(t, 15, cfg.Board.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9000", cfg.Server.HTTPAddr)
	assert.Equal(t, "zinc", cfg.Render.Theme, "blank values are ignored")
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, func(k string) (string, bool) {
		if k == "SNAKE_BOARD_SIZE" {
			return "huge", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SNAKE_SPEED=slow\nPORT=7070\n"), 0o644))

	vars, err := godotenv.Read(path)
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, ApplyEnv(&cfg, func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}))
	assert.Equal(t, ":7070", cfg.Server.HTTPAddr)
	assert.Equal(t, "slow", cfg.Timing.Speed)

	own := filepath.Join(t.TempDir(), "own.env")
	require.NoError(t, os.WriteFile(own, []byte("SNAKE_TEST_SPEED_VALUE=slow\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SNAKE_TEST_SPEED_VALUE") })
	require.NoError(t, LoadDotEnv(own, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "slow", os.Getenv("SNAKE_TEST_SPEED_VALUE"))
}

func TestSpeedPresets(t *testing.T) {
	for _, sp := range Speeds {
		ms, err := SpeedTickMS(sp)
		require.NoError(t, err)
		assert.Positive(t, ms)
	}
	assert.Equal(t, SpeedFast, SpeedNormal.Next())
	assert.Equal(t, SpeedSlow, SpeedFast.Next())
	assert.Equal(t, SpeedNormal, Speed("bogus").Next())
}

func TestSpeedForTickMS(t *testing.T) {
	sp, ok := SpeedForTickMS(100)
	assert.True(t, ok)
	assert.Equal(t, SpeedNormal, sp)

	sp, ok = SpeedForTickMS(40)
	assert.False(t, ok)
	assert.Empty(t, sp)
}
