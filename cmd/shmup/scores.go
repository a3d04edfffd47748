package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shmup/internal/games/shmup"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

var (
	flagLimit int
	flagRuns  bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent runs",
	Long: `Display the top scores, or with --runs the most recent games.

Examples:
  shmup scores
  shmup scores --limit 20
  shmup scores --runs
  shmup scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recent runs instead of top scores")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score and run")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	case flagRuns:
		return printRuns(store)
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", shmup.New(shmup.Options{}).Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'shmup play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Stage", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, entry.Score, entry.Stage, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %d  Average: %.0f  Best stage: %d  Clears: %d\n",
			stats.GamesCount, stats.AvgScore, stats.BestStage, stats.Clears)
	}
	return nil
}

func printRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Recent Runs - %s\n", shmup.New(shmup.Options{}).Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-5s  %-8s  %-7s  %-7s  %s\n", "Date", "Score", "Stage", "Level", "Time", "Dropped", "Seed")
	for _, r := range runs {
		stage := fmt.Sprintf("%d", r.Stage)
		if r.Cleared {
			stage = "ALL"
		}
		fmt.Printf("  %-16s  %-10d  %-5s  %-8s  %-7s  %-7d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, stage, r.Difficulty,
			fmt.Sprintf("%d:%02d", r.Duration/60, r.Duration%60), r.Dropped, r.Seed)
	}
	return nil
}
