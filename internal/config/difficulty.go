package config

import "strings"

// DifficultyLevel is a named difficulty tier.
// Labels returned by the suggestion mechanism are kept verbatim, so a
// DifficultyLevel may hold a value outside the known set; Resolve treats
// such labels as Normal.
type DifficultyLevel string

const (
	DifficultyVeryEasy DifficultyLevel = "Very Easy"
	DifficultyEasy     DifficultyLevel = "Easy"
	DifficultyNormal   DifficultyLevel = "Normal"
	DifficultyHard     DifficultyLevel = "Hard"
	DifficultyVeryHard DifficultyLevel = "Very Hard"
)

var difficultyOrder = []DifficultyLevel{
	DifficultyVeryEasy,
	DifficultyEasy,
	DifficultyNormal,
	DifficultyHard,
	DifficultyVeryHard,
}

// Levels returns the known difficulty tiers from easiest to hardest.
func Levels() []DifficultyLevel {
	out := make([]DifficultyLevel, len(difficultyOrder))
	copy(out, difficultyOrder)
	return out
}

// String returns the label.
func (d DifficultyLevel) String() string {
	return string(d)
}

// Ordinal returns the position of d in Levels, or -1 for unknown labels.
// Only display and progression use the ordinal; generation keys off the table.
func (d DifficultyLevel) Ordinal() int {
	for i, l := range difficultyOrder {
		if l == d {
			return i
		}
	}
	return -1
}

// Known reports whether d is one of the five standard tiers.
func (d DifficultyLevel) Known() bool {
	return d.Ordinal() >= 0
}

// Step returns the tier delta positions away from d, clamped to the ends of
// the scale. Unknown labels step from Normal.
func (d DifficultyLevel) Step(delta int) DifficultyLevel {
	i := d.Ordinal()
	if i < 0 {
		i = DifficultyNormal.Ordinal()
	}
	i += delta
	if i < 0 {
		i = 0
	}
	if i >= len(difficultyOrder) {
		i = len(difficultyOrder) - 1
	}
	return difficultyOrder[i]
}

// ParseDifficulty maps user input such as "very-easy", "VERY_EASY" or
// "Very Easy" to a known tier.
func ParseDifficulty(s string) (DifficultyLevel, bool) {
	norm := normalizeLabel(s)
	for _, l := range difficultyOrder {
		if normalizeLabel(string(l)) == norm {
			return l, true
		}
	}
	return "", false
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	return s
}
