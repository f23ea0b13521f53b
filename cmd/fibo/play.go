package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fibo/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of fibo.

Controls:
  Arrows/WASD  - Slide tiles
  U            - Undo
  1-4          - Destroy lowest, promote highest, shuffle, undo power-ups
  H            - Hammer (pick a tile, Enter to smash, Esc to cancel)
  P/Esc        - Pause
  N            - New game
  B            - Back to menu
  M            - Mute
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More 1s, five undo levels, extra power-up uses
  normal - Values from the config file
  hard   - Fewer 1s, one undo level, fewer power-up uses

Examples:
  fibo play
  fibo play --difficulty easy
  fibo play --seed 42
  fibo play --config ./my-fibo.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("fibo")
	if err != nil {
		return err
	}

	game, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{
		Game:       game,
		Difficulty: string(preset),
		Seed:       flagSeed,
		Store:      store,
		Logger:     logger,
		Width:      width,
		Height:     height,
	}
	runErr := tui.Run(opts)

	// Close store before returning
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("error running game: %w", runErr)
	}
	return nil
}
