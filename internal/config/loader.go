package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.shapes/config.yaml -> ./configs/shapes.yaml -> embedded default
//
// Values missing from a file keep their defaults, down to single fields of a
// difficulty tier, and difficulty entries are clamped into the valid ranges.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "shapes.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultShapesYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig and normalizes the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

// levelOverride is a difficulty tier as written in a config file.
// Nil fields were left out of the file.
type levelOverride struct {
	ShapeCount      *int `yaml:"shape_count"`
	ShapeTypeCount  *int `yaml:"shape_type_count"`
	ShapeColorCount *int `yaml:"shape_color_count"`
}

// UnmarshalYAML merges each tier in the file over the table's current entry,
// so fields left out keep their previous value. A label the table does not
// have yet starts from the built-in tier of the same name, or from Normal.
func (t *DifficultyTable) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]levelOverride
	if err := node.Decode(&raw); err != nil {
		return err
	}

	out := make(DifficultyTable, len(*t)+len(raw))
	for label, lc := range *t {
		out[label] = lc
	}

	for name, o := range raw {
		label := DifficultyLevel(name)
		if parsed, ok := ParseDifficulty(name); ok {
			label = parsed
		}

		base, ok := out[label]
		if !ok {
			if base, ok = defaultTable[label]; !ok {
				base = defaultTable[DifficultyNormal]
			}
		}
		if o.ShapeCount != nil {
			base.ShapeCount = *o.ShapeCount
		}
		if o.ShapeTypeCount != nil {
			base.ShapeTypeCount = *o.ShapeTypeCount
		}
		if o.ShapeColorCount != nil {
			base.ShapeColorCount = *o.ShapeColorCount
		}
		out[label] = base
	}

	*t = out
	return nil
}

// normalize repairs values that would break generation or scoring.
func (c *Config) normalize() {
	def := DefaultConfig()

	c.Difficulty = c.Difficulty.normalize()

	if parsed, ok := ParseDifficulty(string(c.StartDifficulty)); ok {
		c.StartDifficulty = parsed
	} else {
		c.StartDifficulty = def.StartDifficulty
	}

	if c.Scoring.CorrectPoints <= 0 {
		c.Scoring.CorrectPoints = def.Scoring.CorrectPoints
	}
	if c.Scoring.WrongPenalty < 0 {
		c.Scoring.WrongPenalty = 0
	}

	switch c.Adjust.Suggester {
	case SuggesterGemini, SuggesterHeuristic:
	default:
		c.Adjust.Suggester = def.Adjust.Suggester
	}
	if c.Adjust.Model == "" {
		c.Adjust.Model = def.Adjust.Model
	}
	if c.Adjust.Timeout <= 0 {
		c.Adjust.Timeout = def.Adjust.Timeout
	}
	if c.Adjust.Retries < 0 {
		c.Adjust.Retries = 0
	}
	if c.Adjust.CacheSize < 0 {
		c.Adjust.CacheSize = 0
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shapes", filename)
}
