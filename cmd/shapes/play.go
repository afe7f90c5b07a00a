package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shape-explorers/internal/adjust"
	"github.com/vovakirdan/shape-explorers/internal/platform/tui"
)

var (
	flagDifficulty string
	flagSuggester  string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game of Shape Explorers in this terminal.

Controls:
  Arrows/hjkl   - Move the cursor
  Enter/Space   - Tap the shape under the cursor
  1-9           - Tap a numbered shape
  Mouse click   - Tap a shape
  R             - Repeat the prompt
  N/Enter       - Next level (after a level is complete)
  M/Esc         - Back to the menu
  Q/Ctrl+C      - Quit

Difficulty is adjusted after every level. With --suggester gemini the
GEMINI_API_KEY environment variable (or .env file) must be set; otherwise
a built-in heuristic is used.

Logs go to ~/.shapes/shapes.log so they do not disturb the board.

Examples:
  shapes play
  shapes play --difficulty "very easy"
  shapes play --suggester heuristic --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Starting difficulty: very-easy, easy, normal, hard, very-hard")
	playCmd.Flags().StringVar(&flagSuggester, "suggester", "", "Difficulty suggester: gemini or heuristic")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for the scoreboard (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyOverrides(&cfg, flagDifficulty, flagSuggester); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The board owns the terminal, so logs go to a file.
	logger := newLogger(io.Discard, "shapes")
	if logFile, err := openLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	} else {
		logger = newLogger(logFile, "shapes")
		defer logFile.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(logger)
	gateway := adjust.NewFromConfig(context.Background(), cfg.Adjust, logger)

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	runErr := tui.Run(tui.Options{
		Config:  cfg,
		Store:   store,
		Gateway: gateway,
		Logger:  logger,
		Player:  player,
		Seed:    flagSeed,
		Width:   width,
		Height:  height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogFile opens ~/.shapes/shapes.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".shapes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "shapes.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
