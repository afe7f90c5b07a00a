// Package config provides YAML-based game configuration loading and
// difficulty management for Shape Explorers.
package config

import "time"

// Config contains all configuration for a game session.
type Config struct {
	StartDifficulty DifficultyLevel `yaml:"start_difficulty"`
	Difficulty      DifficultyTable `yaml:"difficulty"`
	Scoring         ScoringConfig   `yaml:"scoring"`
	Adjust          AdjustConfig    `yaml:"adjust"`
}

// LevelConfig holds the generation parameters for one level.
type LevelConfig struct {
	ShapeCount      int `yaml:"shape_count"`
	ShapeTypeCount  int `yaml:"shape_type_count"`
	ShapeColorCount int `yaml:"shape_color_count"`
}

// ScoringConfig defines points awarded and taken per tap.
type ScoringConfig struct {
	CorrectPoints int `yaml:"correct_points"`
	WrongPenalty  int `yaml:"wrong_penalty"` // Score never drops below zero
}

// AdjustConfig configures the difficulty suggestion mechanism.
type AdjustConfig struct {
	Suggester string        `yaml:"suggester"` // "gemini" or "heuristic"
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	Retries   int           `yaml:"retries"`
	CacheSize int           `yaml:"cache_size"` // 0 disables caching
	Fallback  bool          `yaml:"fallback"`   // Fall back to the heuristic on model failure
}

// Suggester names accepted in AdjustConfig.Suggester.
const (
	SuggesterGemini    = "gemini"
	SuggesterHeuristic = "heuristic"
)
