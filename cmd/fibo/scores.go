package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fibo/internal/platform/tui"
	"github.com/vovakirdan/fibo/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs",
	Long: `Display the best runs, or the latest ones with --recent.

Examples:
  fibo scores
  fibo scores --recent --limit 20
  fibo scores --interactive
  fibo scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run and the high score")
	scoresCmd.Flags().BoolVarP(&flagScoresTUI, "interactive", "i", false, "Browse runs in a scrollable table")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunScoreboard(store, width, height)
	}

	var runs []storage.Run
	title := "High Scores"
	if flagScoresRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		runs, err = store.TopRuns(flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'fibo play' to set the first high score!")
		return nil
	}

	printRuns(runs)

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.0f  Best tile: %d\n",
		stats.RunsCount, stats.Wins, stats.HighScore, stats.AvgScore, stats.BestTile)
	return nil
}

func printRuns(runs []storage.Run) {
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-3s  %-6s  %s\n", "Rank", "Score", "Max", "Moves", "Won", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-6s  %-3s  %-6s  %s\n", "----", "-----", "---", "-----", "---", "-----", "----")

	for i, r := range runs {
		won := ""
		if r.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-10d  %-8d  %-6d  %-3s  %-6s  %s\n",
			i+1, r.Score, r.MaxTile, r.Moves, won, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
