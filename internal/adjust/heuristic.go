package adjust

import (
	"context"
	"fmt"

	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/stats"
)

// Thresholds for HeuristicSuggester.
const (
	promoteSuccessRate = 0.9
	promoteMaxSpeed    = 3.0 // seconds
	demoteSuccessRate  = 0.6
	demoteMinSpeed     = 8.0 // seconds
)

// HeuristicSuggester moves one tier at a time based on accuracy and speed.
// It needs no network and never fails.
type HeuristicSuggester struct{}

// NewHeuristicSuggester creates the rule-based suggester.
func NewHeuristicSuggester() HeuristicSuggester {
	return HeuristicSuggester{}
}

func (HeuristicSuggester) Name() string { return "heuristic" }

// Suggest applies the rules:
//   - accurate and fast: one tier harder
//   - inaccurate or slow: one tier easier
//   - otherwise: stay
//
// Unknown current labels are treated as Normal.
func (HeuristicSuggester) Suggest(ctx context.Context, in Input) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	current := config.DifficultyLevel(in.CurrentDifficulty)
	if !current.Known() {
		current = config.DifficultyNormal
	}

	switch {
	case in.SuccessRate >= promoteSuccessRate && in.Speed <= promoteMaxSpeed:
		next := current.Step(1)
		if next == current {
			return Output{
				SuggestedDifficulty: string(current),
				Reasoning:           fmt.Sprintf("Great job! %.0f%% correct and quick, already at the hardest level.", in.SuccessRate*100),
			}, nil
		}
		return Output{
			SuggestedDifficulty: string(next),
			Reasoning:           fmt.Sprintf("Great job! %.0f%% correct in about %.1f seconds per shape, so let's try %s.", in.SuccessRate*100, in.Speed, next),
		}, nil

	case in.SuccessRate < demoteSuccessRate || in.Speed > demoteMinSpeed:
		next := current.Step(-1)
		if next == current {
			return Output{
				SuggestedDifficulty: string(current),
				Reasoning:           "Let's keep practicing at the easiest level.",
			}, nil
		}
		reason := fmt.Sprintf("Taking it slow is fine, so let's try %s.", next)
		if in.ErrorPatterns != "" && in.ErrorPatterns != stats.NoErrors {
			reason = fmt.Sprintf("Some shapes were tricky (%s), so let's try %s.", in.ErrorPatterns, next)
		}
		return Output{
			SuggestedDifficulty: string(next),
			Reasoning:           reason,
		}, nil
	}

	return Output{
		SuggestedDifficulty: string(current),
		Reasoning:           fmt.Sprintf("Nice and steady! Staying at %s.", current),
	}, nil
}
