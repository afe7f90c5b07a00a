// Package adjust maps a level's performance summary onto a suggested
// difficulty for the next level.
//
// The suggestion itself comes from a pluggable Suggester (a language model or
// a deterministic heuristic). The Gateway applies a timeout, validates the
// answer and turns every failure into ErrAdjustmentFailed so callers can keep
// the current difficulty.
package adjust

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/stats"
)

var (
	// ErrAdjustmentFailed wraps every failure surfaced by Gateway.Adjust.
	ErrAdjustmentFailed = errors.New("adjust: difficulty adjustment failed")

	// ErrMalformedOutput reports a suggestion missing a required field.
	ErrMalformedOutput = errors.New("adjust: malformed suggestion")
)

// Input is the data sent to the suggestion mechanism.
type Input struct {
	SuccessRate       float64 `json:"successRate"`
	Speed             float64 `json:"speed"` // Average seconds to a correct tap
	ErrorPatterns     string  `json:"errorPatterns"`
	CurrentDifficulty string  `json:"currentDifficulty"`
}

// Output is the suggestion mechanism's answer.
type Output struct {
	SuggestedDifficulty string `json:"suggestedDifficulty"`
	Reasoning           string `json:"reasoning"`
}

// Suggester proposes a difficulty from a performance summary.
type Suggester interface {
	Name() string
	Suggest(ctx context.Context, in Input) (Output, error)
}

// SuggesterFunc adapts a function to the Suggester interface.
type SuggesterFunc func(ctx context.Context, in Input) (Output, error)

func (f SuggesterFunc) Name() string { return "func" }

func (f SuggesterFunc) Suggest(ctx context.Context, in Input) (Output, error) {
	return f(ctx, in)
}

// Result is an accepted difficulty suggestion.
type Result struct {
	SuggestedDifficulty config.DifficultyLevel
	Reasoning           string
}

// Gateway runs difficulty suggestions for completed levels.
type Gateway struct {
	suggester Suggester
	timeout   time.Duration
	logger    *log.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithTimeout bounds each suggestion call. Zero disables the bound.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.timeout = d }
}

// WithLogger sets the logger used for failed adjustments.
func WithLogger(l *log.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGateway creates a gateway around s.
func NewGateway(s Suggester, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		suggester: s,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the name of the underlying suggester.
func (g *Gateway) Name() string {
	if g.suggester == nil {
		return "none"
	}
	return g.suggester.Name()
}

// InputFor builds the suggestion input for a snapshot.
func InputFor(snap stats.Snapshot, current config.DifficultyLevel) Input {
	return Input{
		SuccessRate:       snap.SuccessRate,
		Speed:             snap.AverageLatencySeconds,
		ErrorPatterns:     snap.ErrorSummary,
		CurrentDifficulty: string(current),
	}
}

// Adjust asks the suggester for the next difficulty.
// On success the suggestion is returned as given (trimmed of surrounding
// whitespace); the label is not checked against the known tiers. Any failure
// is returned wrapped in ErrAdjustmentFailed with a zero Result.
func (g *Gateway) Adjust(ctx context.Context, snap stats.Snapshot, current config.DifficultyLevel) (Result, error) {
	if g.suggester == nil {
		return Result{}, fmt.Errorf("%w: no suggester configured", ErrAdjustmentFailed)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	in := InputFor(snap, current)
	out, err := g.suggester.Suggest(ctx, in)
	if err == nil {
		err = validate(out)
	}
	if err != nil {
		g.logger.Warn("difficulty adjustment failed",
			"suggester", g.suggester.Name(),
			"current", current,
			"error", err,
		)
		return Result{}, fmt.Errorf("%w: %w", ErrAdjustmentFailed, err)
	}

	res := Result{
		SuggestedDifficulty: config.DifficultyLevel(strings.TrimSpace(out.SuggestedDifficulty)),
		Reasoning:           strings.TrimSpace(out.Reasoning),
	}
	g.logger.Debug("difficulty adjusted",
		"suggester", g.suggester.Name(),
		"from", current,
		"to", res.SuggestedDifficulty,
	)
	return res, nil
}

// Apply returns the difficulty to use after an adjustment attempt:
// the suggestion on success, current otherwise.
func Apply(current config.DifficultyLevel, res Result, err error) config.DifficultyLevel {
	if err != nil || res.SuggestedDifficulty == "" {
		return current
	}
	return res.SuggestedDifficulty
}

func validate(out Output) error {
	if strings.TrimSpace(out.SuggestedDifficulty) == "" {
		return fmt.Errorf("%w: empty suggestedDifficulty", ErrMalformedOutput)
	}
	if strings.TrimSpace(out.Reasoning) == "" {
		return fmt.Errorf("%w: empty reasoning", ErrMalformedOutput)
	}
	return nil
}
