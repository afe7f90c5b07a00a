package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/level"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name           string
		difficulty     string
		suggester      string
		wantDifficulty config.DifficultyLevel
		wantSuggester  string
		wantErr        bool
	}{
		{"no overrides", "", "", config.DifficultyNormal, config.SuggesterGemini, false},
		{"dashed difficulty", "very-easy", "", config.DifficultyVeryEasy, config.SuggesterGemini, false},
		{"heuristic", "", "heuristic", config.DifficultyNormal, config.SuggesterHeuristic, false},
		{"bad difficulty", "impossible", "", "", "", true},
		{"bad suggester", "", "oracle", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := applyOverrides(&cfg, tt.difficulty, tt.suggester)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("applyOverrides() failed: %v", err)
			}
			if cfg.StartDifficulty != tt.wantDifficulty || cfg.Adjust.Suggester != tt.wantSuggester {
				t.Errorf("got %q / %q", cfg.StartDifficulty, cfg.Adjust.Suggester)
			}
		})
	}
}

func TestPreviewBoardShape(t *testing.T) {
	layout := level.NewGenerator(nil, 1).Generate(1, config.DifficultyNormal)
	out := previewBoard(layout)

	lines := strings.Split(out, "\n")
	if len(lines) != 2*level.GridRows+1 {
		t.Errorf("preview has %d lines, want %d", len(lines), 2*level.GridRows+1)
	}
}
