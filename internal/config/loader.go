package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFile = "snake.yaml"

// Load loads the snake configuration. Values missing from the file keep their defaults.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// LoadDotEnv loads KEY=value files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg from environment variables:
// SNAKE_DB, SNAKE_TICK_MS, SNAKE_SPEED, SNAKE_BOARD_SIZE, SNAKE_THEME,
// SNAKE_LOG_LEVEL and PORT (HTTP listen port).
// lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("SNAKE_DB"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := get("SNAKE_TICK_MS"); ok {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SNAKE_TICK_MS: %w", err)
		}
		cfg.Timing.TickMS = ms
		cfg.Timing.Speed = ""
	}
	if v, ok := get("SNAKE_SPEED"); ok {
		cfg.Timing.Speed = strings.ToLower(v)
	}
	if v, ok := get("SNAKE_BOARD_SIZE"); ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SNAKE_BOARD_SIZE: %w", err)
		}
		cfg.Board.Size = size
	}
	if v, ok := get("SNAKE_THEME"); ok {
		cfg.Render.Theme = v
	}
	if v, ok := get("SNAKE_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := get("PORT"); ok {
		cfg.Server.HTTPAddr = ":" + v
	}
	return nil
}
