package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the hardcoded configuration, identical to the embedded YAML.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:      20,
			StartX:    -1,
			StartY:    -1,
			Direction: "right",
		},
		Timing: TimingConfig{
			TickMS: 100,
		},
		Storage: StorageConfig{
			Path: "~/.snake/scores.db",
			Key:  "snake",
		},
		Render: RenderConfig{
			CellWidth: 2,
			Theme:     "zinc",
		},
		Server: ServerConfig{
			SSHAddr:            ":23234",
			HTTPAddr:           ":8080",
			HostKey:            "~/.snake/ssh_host_ed25519",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.snake/snake.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
