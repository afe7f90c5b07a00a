package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-explorers/internal/storage"
)

var (
	flagLimit         int
	flagHistoryPlayer string
	flagClearScores   bool
	flagPlayers       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores across all players.

Examples:
  shapes scores
  shapes scores --limit 25
  shapes scores --players
  shapes scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent difficulty adjustments",
	Long: `Display the most recent difficulty adjustments, newest first.

Examples:
  shapes history
  shapes history --player alice --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagPlayers, "players", false, "Show per-player totals instead")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show this player's adjustments")
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runScores(_ *cobra.Command, _ []string) {
	store := mustOpenStore()

	if flagClearScores {
		defer store.Close()
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All scores cleared.")
		return
	}

	if flagPlayers {
		defer store.Close()
		printPlayerStats(store)
		return
	}

	scores, err := store.TopScores(flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("High Scores - Shape Explorers")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'shapes play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-14s  %-6s  %-5s  %-10s  %s\n", "Rank", "Player", "Score", "Level", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-14s  %-6s  %-5s  %-10s  %s\n", "----", "------", "-----", "-----", "----------", "----")

	for i, e := range scores {
		fmt.Printf("  %-4d  %-14s  %-6d  %-5d  %-10s  %s\n",
			i+1, e.Player, e.Score, e.Level, e.Difficulty, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if highScore, err := store.HighScore(); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func runHistory(_ *cobra.Command, _ []string) {
	store := mustOpenStore()

	entries, err := store.RecentAdjustments(flagHistoryPlayer, flagLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(entries) == 0 {
		fmt.Println("No difficulty adjustments recorded yet.")
		return
	}

	for _, e := range entries {
		outcome := fmt.Sprintf("%s -> %s", e.FromDifficulty, e.ToDifficulty)
		if e.Failed {
			outcome = fmt.Sprintf("%s (adjustment failed)", e.FromDifficulty)
		}
		fmt.Printf("%s  %-12s level %-3d %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Player, e.Level, outcome)
		fmt.Printf("    accuracy %.0f%%, %.1fs per shape, mistakes: %s\n",
			e.SuccessRate*100, e.Speed, e.ErrorPatterns)
		if e.Reasoning != "" {
			fmt.Printf("    %s\n", e.Reasoning)
		}
	}
}

func printPlayerStats(store *storage.Store) {
	stats, err := store.GetPlayerStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving player stats: %v\n", err)
		os.Exit(1)
	}

	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	players := make([]*storage.PlayerStats, 0, len(stats))
	for _, ps := range stats {
		players = append(players, ps)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].HighScore != players[j].HighScore {
			return players[i].HighScore > players[j].HighScore
		}
		return players[i].Player < players[j].Player
	})

	fmt.Printf("  %-14s  %-5s  %-6s  %-7s  %-5s  %s\n", "Player", "Games", "Best", "Average", "Level", "Last played")
	fmt.Printf("  %-14s  %-5s  %-6s  %-7s  %-5s  %s\n", "------", "-----", "----", "-------", "-----", "-----------")
	for _, ps := range players {
		fmt.Printf("  %-14s  %-5d  %-6d  %-7.1f  %-5d  %s\n",
			ps.Player, ps.GamesCount, ps.HighScore, ps.AvgScore, ps.BestLevel, ps.LastPlayed.Format("2006-01-02 15:04"))
	}
}
