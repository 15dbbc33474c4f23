package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 scores and the best score ever.

Examples:
  snake scores
  snake scores --db ./scores.db
  snake scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	scores := store.Keyed(cfg.Storage.Key)
	if flagClearScores {
		if err := store.ClearScores(ctx, scores.Key()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Scores cleared.")
		return nil
	}

	return printScores(ctx, cmd.OutOrStdout(), scores)
}

// printScores writes the top 10 table followed by the best score.
func printScores(ctx context.Context, out io.Writer, scores *storage.KeyedScores) error {
	entries, err := scores.TopScores(ctx, 10)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "High Scores - Snake")
	fmt.Fprintln(out)

	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'snake play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range entries {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	if stats, err := scores.Stats(ctx); err == nil {
		fmt.Fprintf(out, "Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
