// shapes is a terminal edition of Shape Explorers, a shape-matching game for
// young children with adaptive difficulty.
//
// Usage:
//
//	shapes play              - Play in this terminal
//	shapes serve             - Start SSH server for remote play
//	shapes scores            - Show high scores
//	shapes history           - Show recent difficulty adjustments
//	shapes levels            - Print level parameters per difficulty
//	shapes preview           - Print a generated board
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.shapes/shapes.db)
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Shape Explorers - find the shape you hear",
	Long: `Shape Explorers scatters colorful shapes on a board and asks the
player to find one by name. After every level the difficulty is tuned to
how quickly and accurately the player found them.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  history  - View recent difficulty adjustments
  levels   - Print level parameters per difficulty
  preview  - Print a generated board

Examples:
  shapes play
  shapes play --difficulty easy --suggester heuristic
  shapes serve --ssh :2222
  shapes levels --max-level 15`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env file is fine; the environment may already be set.
		//nolint:errcheck // Best-effort
		godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(previewCmd)
}

// newLogger creates a logger honoring --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// loadConfig loads the game config and applies environment overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	if s := os.Getenv("SHAPES_SUGGESTER"); s != "" {
		cfg.Adjust.Suggester = s
	}
	if model := os.Getenv("SHAPES_MODEL"); model != "" {
		cfg.Adjust.Model = model
	}
	return cfg, nil
}

// applyOverrides applies --difficulty and --suggester style flags.
func applyOverrides(cfg *config.Config, difficulty, suggester string) error {
	if difficulty != "" {
		d, ok := config.ParseDifficulty(difficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q (want one of: very-easy, easy, normal, hard, very-hard)", difficulty)
		}
		cfg.StartDifficulty = d
	}

	switch suggester {
	case "":
	case config.SuggesterGemini, config.SuggesterHeuristic:
		cfg.Adjust.Suggester = suggester
	default:
		return fmt.Errorf("unknown suggester %q (want gemini or heuristic)", suggester)
	}
	return nil
}

// openStore opens the database, or returns nil with a warning so the game
// can still be played.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}
