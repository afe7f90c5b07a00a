package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-explorers/internal/adjust"
	"github.com/vovakirdan/shape-explorers/internal/platform/tui"
)

var (
	flagSSHAddr         string
	flagHostKey         string
	flagIdleTimeout     int
	flagServeSuggester  string
	flagServeDifficulty string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Shape Explorers SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Scores and difficulty history are
stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.shapes/host_key

Examples:
  shapes serve                           # Listen on :23235 with auto-generated key
  shapes serve --ssh :2222               # Listen on port 2222
  shapes serve --host-key ./my_host_key  # Use specific host key
  shapes serve --db ./shapes.db          # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSuggester, "suggester", "", "Difficulty suggester: gemini or heuristic")
	serveCmd.Flags().StringVar(&flagServeDifficulty, "difficulty", "", "Starting difficulty for every player")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "shapes-ssh")

	gameCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyOverrides(&gameCfg, flagServeDifficulty, flagServeSuggester); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Seed:        flagSeed,
		Game:        gameCfg,
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	gateway := adjust.NewFromConfig(context.Background(), gameCfg.Adjust, logger)

	server, err := tui.NewSSHServer(cfg, store, gateway, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Shape Explorers SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		// os.Exit skips deferred calls
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
