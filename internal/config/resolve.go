package config

import "github.com/vovakirdan/shape-explorers/internal/shapes"

// Generation caps. The grid holds 20 cells, so MaxShapeCount leaves room
// for the placement sampler to always find a free cell.
const (
	MaxShapeCount = 8
	LevelsPerRamp = 5 // Every LevelsPerRamp levels all parameters grow by one
)

// MaxShapeTypeCount is the number of shape types in the catalog.
func MaxShapeTypeCount() int { return len(shapes.Types) }

// MaxShapeColorCount is the number of shape colors in the catalog.
func MaxShapeColorCount() int { return len(shapes.Colors) }

// DifficultyTable maps a difficulty tier to its base level parameters.
type DifficultyTable map[DifficultyLevel]LevelConfig

// Base returns the base parameters for difficulty, falling back to the
// Normal tier for unrecognized labels. The second result is false when the
// fallback was used.
func (t DifficultyTable) Base(difficulty DifficultyLevel) (LevelConfig, bool) {
	if base, ok := t[difficulty]; ok {
		return base, true
	}
	if base, ok := t[DifficultyNormal]; ok {
		return base, false
	}
	return defaultTable[DifficultyNormal], false
}

// Resolve computes the concrete parameters for a level at the given difficulty.
// Parameters ramp up by one every LevelsPerRamp levels and are capped at the
// catalog and grid limits. Levels below 1 are treated as level 1.
func (t DifficultyTable) Resolve(level int, difficulty DifficultyLevel) LevelConfig {
	base, _ := t.Base(difficulty)
	if level < 1 {
		level = 1
	}
	modifier := (level - 1) / LevelsPerRamp

	return LevelConfig{
		ShapeCount:      min(MaxShapeCount, base.ShapeCount+modifier),
		ShapeTypeCount:  min(MaxShapeTypeCount(), base.ShapeTypeCount+modifier),
		ShapeColorCount: min(MaxShapeColorCount(), base.ShapeColorCount+modifier),
	}
}

// Resolve computes level parameters using the built-in difficulty table.
func Resolve(level int, difficulty DifficultyLevel) LevelConfig {
	return DefaultTable().Resolve(level, difficulty)
}

// normalize clamps every entry into the valid parameter ranges and ensures
// the Normal tier exists, since it backs the fallback for unknown labels.
func (t DifficultyTable) normalize() DifficultyTable {
	out := make(DifficultyTable, len(t)+1)
	for label, lc := range t {
		out[label] = LevelConfig{
			ShapeCount:      clampI(lc.ShapeCount, 1, MaxShapeCount),
			ShapeTypeCount:  clampI(lc.ShapeTypeCount, 1, MaxShapeTypeCount()),
			ShapeColorCount: clampI(lc.ShapeColorCount, 1, MaxShapeColorCount()),
		}
	}
	if _, ok := out[DifficultyNormal]; !ok {
		out[DifficultyNormal] = defaultTable[DifficultyNormal]
	}
	return out
}

// clampI restricts an int to [lo, hi].
func clampI(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
