package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and progress",
	Long: `Display the top 10 runs for a mode, or for every mode when none is
given, followed by coins, achievements and adventure stars.

Examples:
  bubbles scores
  bubbles scores classic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	modes := core.Modes
	if len(args) == 1 {
		m, err := core.ParseMode(args[0])
		if err != nil {
			return err
		}
		modes = []core.Mode{m}
	}

	a, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := storage.Open(a.dbPath)
	if err != nil {
		return fmt.Errorf("open progress database: %w", err)
	}
	a.store = store

	ctx := context.Background()
	for _, m := range modes {
		if err := printScores(ctx, store, m); err != nil {
			return err
		}
	}
	if len(args) == 0 {
		return printProgress(ctx, store)
	}
	return nil
}

func printScores(ctx context.Context, store *storage.Store, m core.Mode) error {
	scores, err := store.TopScores(ctx, m.String(), 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", m.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'bubbles play %s' to set the first high score!\n\n", m)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %s\n", "Rank", "Score", "Level", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %s\n", "----", "-----", "-----", "------", "----")
	for i, e := range scores {
		level := e.LevelID
		if level == "" {
			level = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-12s  %-6s  %s\n", i+1, e.Score, level, e.Outcome, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(ctx, m.String()); err == nil {
		fmt.Printf("\nRuns: %d  Wins: %d  Best: %d  Avg: %.0f\n", stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore)
	}
	fmt.Println()
	return nil
}

func printProgress(ctx context.Context, store *storage.Store) error {
	coins, err := store.Coins(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Coins: %d\n", coins)

	achievements, err := store.Achievements(ctx)
	if err != nil {
		return err
	}
	if len(achievements) > 0 {
		fmt.Println("\nAchievements:")
		for _, a := range achievements {
			fmt.Printf("  %-14s  %s\n", a.ID, a.UnlockedAt.Format("2006-01-02"))
		}
	}

	results, err := store.LevelResults(ctx)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		fmt.Println("\nAdventure:")
		for _, id := range sortedKeys(results) {
			r := results[id]
			fmt.Printf("  %-14s  %-3s  best %d\n", id, starString(r.Stars), r.BestScore)
		}
	}
	return nil
}

func starString(n int) string {
	s := ""
	for i := 0; i < 3; i++ {
		if i < n {
			s += "*"
		} else {
			s += "."
		}
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
