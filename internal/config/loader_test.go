package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseEmbeddedDefaults(t *testing.T) {
	cfg, err := Parse(defaultShapesYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	def := DefaultConfig()
	for _, d := range Levels() {
		if cfg.Difficulty[d] != def.Difficulty[d] {
			t.Errorf("%s: embedded %+v, built-in %+v", d, cfg.Difficulty[d], def.Difficulty[d])
		}
	}
	if cfg.StartDifficulty != DifficultyNormal {
		t.Errorf("StartDifficulty = %q, want Normal", cfg.StartDifficulty)
	}
	if cfg.Adjust.Timeout != 20*time.Second {
		t.Errorf("Adjust.Timeout = %v, want 20s", cfg.Adjust.Timeout)
	}
	if cfg.Scoring.CorrectPoints != 100 || cfg.Scoring.WrongPenalty != 10 {
		t.Errorf("Scoring = %+v", cfg.Scoring)
	}
}

func TestParseClampsAndMerges(t *testing.T) {
	data := []byte(`
start_difficulty: very-hard
difficulty:
  Hard:
    shape_count: 30
    shape_type_count: 0
    shape_color_count: 9
adjust:
  suggester: crystal-ball
  timeout: 0s
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	hard := cfg.Difficulty[DifficultyHard]
	if hard != (LevelConfig{ShapeCount: 8, ShapeTypeCount: 1, ShapeColorCount: 6}) {
		t.Errorf("Hard = %+v, want clamped {8 1 6}", hard)
	}

	// Tiers not mentioned in the file keep their defaults
	if cfg.Difficulty[DifficultyEasy] != (LevelConfig{4, 3, 3}) {
		t.Errorf("Easy = %+v, want default", cfg.Difficulty[DifficultyEasy])
	}

	if cfg.StartDifficulty != DifficultyVeryHard {
		t.Errorf("StartDifficulty = %q, want Very Hard", cfg.StartDifficulty)
	}
	if cfg.Adjust.Suggester != SuggesterGemini {
		t.Errorf("Suggester = %q, want default gemini", cfg.Adjust.Suggester)
	}
	if cfg.Adjust.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want default 20s", cfg.Adjust.Timeout)
	}
}

func TestParsePartialTierKeepsOtherFields(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		label DifficultyLevel
		want  LevelConfig
	}{
		{
			name:  "one field of a known tier",
			yaml:  "difficulty:\n  Hard:\n    shape_count: 7\n",
			label: DifficultyHard,
			want:  LevelConfig{ShapeCount: 7, ShapeTypeCount: 5, ShapeColorCount: 5},
		},
		{
			name:  "normal tier",
			yaml:  "difficulty:\n  Normal:\n    shape_color_count: 2\n",
			label: DifficultyNormal,
			want:  LevelConfig{ShapeCount: 5, ShapeTypeCount: 4, ShapeColorCount: 2},
		},
		{
			name:  "loose label spelling",
			yaml:  "difficulty:\n  very-easy:\n    shape_type_count: 1\n",
			label: DifficultyVeryEasy,
			want:  LevelConfig{ShapeCount: 3, ShapeTypeCount: 1, ShapeColorCount: 2},
		},
		{
			name:  "new label starts from normal",
			yaml:  "difficulty:\n  Nightmare:\n    shape_count: 8\n",
			label: DifficultyLevel("Nightmare"),
			want:  LevelConfig{ShapeCount: 8, ShapeTypeCount: 4, ShapeColorCount: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := cfg.Difficulty[tt.label]; got != tt.want {
				t.Errorf("%s = %+v, want %+v", tt.label, got, tt.want)
			}
			// Untouched tiers keep their defaults
			if got := cfg.Difficulty[DifficultyEasy]; got != (LevelConfig{4, 3, 3}) {
				t.Errorf("Easy = %+v, want default", got)
			}
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("difficulty: [unclosed")); err == nil {
		t.Error("Parse accepted invalid YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("adjust:\n  suggester: heuristic\nscoring:\n  wrong_penalty: 25\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if cfg.Adjust.Suggester != SuggesterHeuristic {
		t.Errorf("Suggester = %q, want heuristic", cfg.Adjust.Suggester)
	}
	if cfg.Scoring.WrongPenalty != 25 {
		t.Errorf("WrongPenalty = %d, want 25", cfg.Scoring.WrongPenalty)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing custom path returned nil error")
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  DifficultyLevel
		ok    bool
	}{
		{"Very Easy", DifficultyVeryEasy, true},
		{"very-easy", DifficultyVeryEasy, true},
		{"VERY_HARD", DifficultyVeryHard, true},
		{" normal ", DifficultyNormal, true},
		{"hard", DifficultyHard, true},
		{"medium", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDifficulty(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseDifficulty(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDifficultyStep(t *testing.T) {
	tests := []struct {
		from  DifficultyLevel
		delta int
		want  DifficultyLevel
	}{
		{DifficultyNormal, 1, DifficultyHard},
		{DifficultyNormal, -1, DifficultyEasy},
		{DifficultyVeryHard, 1, DifficultyVeryHard},
		{DifficultyVeryEasy, -1, DifficultyVeryEasy},
		{"Mystery", 1, DifficultyHard},
		{DifficultyEasy, 0, DifficultyEasy},
	}

	for _, tt := range tests {
		if got := tt.from.Step(tt.delta); got != tt.want {
			t.Errorf("%q.Step(%d) = %q, want %q", tt.from, tt.delta, got, tt.want)
		}
	}
}
