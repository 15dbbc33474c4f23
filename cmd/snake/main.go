// snake is the terminal Snake game with local, SSH and HTTP surfaces.
//
// Usage:
//
//	snake play               - Play one game in this terminal
//	snake menu               - Menu with speed picker and high scores
//	snake scores             - Print the top 10 scores
//	snake serve              - Start the SSH server for remote play
//	snake web                - Start the HTTP JSON API
//	snake config             - Print the default configuration
//
// Global flags:
//
//	--config <path>  - YAML config file
//	--db <path>      - Scores database (default: ~/.snake/scores.db)
//	--seed <value>   - RNG seed for reproducible food placement
//	--tick-ms <ms>   - Tick period in milliseconds
//	--board <n>      - Board size (n x n)
//	--speed <name>   - slow, normal or fast
//	--log-level <l>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagTickMS   int
	flagBoard    int
	flagSpeed    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake on a square board: steer with the arrows or WASD, eat food to grow,
and avoid the walls and your own tail.

Available commands:
  play     - Play directly
  menu     - Menu with speed picker and high scores
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start the HTTP API for browser clients
  config   - Print the default configuration

Examples:
  snake play
  snake play --speed fast --board 15
  snake menu
  snake serve --ssh :2222
  snake web --http :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to snake.yaml")
	pf.StringVar(&flagDBPath, "db", "", "Path to scores database (default from config: ~/.snake/scores.db)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&flagTickMS, "tick-ms", 0, "Tick period in milliseconds")
	pf.IntVar(&flagBoard, "board", 0, "Board size")
	pf.StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(configCmd)
}
