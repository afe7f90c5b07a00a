package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/shapes.yaml
var defaultShapesYAML []byte

var defaultTable = DifficultyTable{
	DifficultyVeryEasy: {ShapeCount: 3, ShapeTypeCount: 2, ShapeColorCount: 2},
	DifficultyEasy:     {ShapeCount: 4, ShapeTypeCount: 3, ShapeColorCount: 3},
	DifficultyNormal:   {ShapeCount: 5, ShapeTypeCount: 4, ShapeColorCount: 4},
	DifficultyHard:     {ShapeCount: 6, ShapeTypeCount: 5, ShapeColorCount: 5},
	DifficultyVeryHard: {ShapeCount: 7, ShapeTypeCount: 6, ShapeColorCount: 6},
}

// DefaultTable returns a copy of the built-in difficulty table.
func DefaultTable() DifficultyTable {
	out := make(DifficultyTable, len(defaultTable))
	for k, v := range defaultTable {
		out[k] = v
	}
	return out
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		StartDifficulty: DifficultyNormal,
		Difficulty:      DefaultTable(),
		Scoring: ScoringConfig{
			CorrectPoints: 100,
			WrongPenalty:  10,
		},
		Adjust: AdjustConfig{
			Suggester: SuggesterGemini,
			Model:     "gemini-2.5-flash",
			Timeout:   20 * time.Second,
			Retries:   2,
			CacheSize: 64,
		},
	}
}
