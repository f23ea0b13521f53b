package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fibo/internal/board"
	"github.com/vovakirdan/fibo/internal/fibonacci"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence [limit]",
	Short: "Print the tile sequence",
	Long: `Print every tile value up to limit (default 2584), with its
position in the sequence and the next larger tile.

Examples:
  fibo sequence
  fibo sequence 100000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSequence,
}

func runSequence(_ *cobra.Command, args []string) error {
	limit := board.DefaultWinValue
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid limit %q: want a positive integer", args[0])
		}
		limit = n
	}

	fmt.Printf("  %-3s  %-20s  %s\n", "n", "Tile", "Next")
	fmt.Printf("  %-3s  %-20s  %s\n", "-", "----", "----")

	for i, v := range fibonacci.UpTo(limit) {
		next := ""
		if n, ok := fibonacci.NextAfter(v); ok {
			next = strconv.Itoa(n)
		}
		fmt.Printf("  %-3d  %-20d  %s\n", i+1, v, next)
	}
	return nil
}
