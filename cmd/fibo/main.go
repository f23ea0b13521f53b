// fibo is a Fibonacci sliding-tile merge puzzle for the terminal.
//
// Usage:
//
//	fibo                     - Play (same as fibo play)
//	fibo play                - Play a game
//	fibo serve               - Start SSH server for remote play
//	fibo scores              - Show recorded runs
//	fibo sequence [limit]    - Print the tile sequence
//	fibo mute [on|off]       - Show or set the sound preference
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.fibo/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fibo/internal/config"
	"github.com/vovakirdan/fibo/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fibo",
	Short: "fibo - merge Fibonacci tiles in your terminal",
	Long: `fibo is a sliding-tile puzzle on a 4x4 board. Two tiles merge when
they are consecutive Fibonacci numbers (1+1, 1+2, 2+3, 3+5, ...).
Reach 2584 to win.

Available commands:
  play      - Play a game (default)
  serve     - Start SSH server for remote play
  scores    - View recorded runs
  sequence  - Print the tile sequence
  mute      - Show or set the sound preference

Examples:
  fibo
  fibo play --difficulty hard
  fibo serve --ssh :2222
  fibo scores --recent`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fibo/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(muteCmd)
}

// newLogger builds the stderr logger from --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadGameConfig loads the game config and applies --difficulty.
func loadGameConfig() (config.GameConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.GameConfig{}, "", err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, "", err
	}
	config.ApplyPreset(&cfg, preset)

	return cfg, preset, nil
}

// openStore opens the scores database from --db.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open scores database: %w", err)
	}
	return store, nil
}
