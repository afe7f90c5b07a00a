package adjust

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shape-explorers/internal/config"
)

// NewFromConfig builds the gateway described by cfg.
// When the Gemini client cannot be created the heuristic suggester is used
// instead and a warning is logged; the game never starts without a gateway.
func NewFromConfig(ctx context.Context, cfg config.AdjustConfig, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.Default()
	}

	var s Suggester
	switch cfg.Suggester {
	case config.SuggesterHeuristic:
		s = NewHeuristicSuggester()
	default:
		gemini, err := NewGeminiSuggester(ctx, os.Getenv("GEMINI_API_KEY"), cfg.Model)
		if err != nil {
			logger.Warn("gemini unavailable, using heuristic difficulty", "error", err)
			s = NewHeuristicSuggester()
			break
		}
		mws := []Middleware{
			WithCache(cfg.CacheSize),
			WithRetry(cfg.Retries+1, 300*time.Millisecond),
		}
		if cfg.Fallback {
			mws = append([]Middleware{WithFallback(NewHeuristicSuggester())}, mws...)
		}
		s = Chain(gemini, mws...)
	}

	logger.Debug("difficulty suggester ready", "suggester", s.Name())
	return NewGateway(s, WithTimeout(cfg.Timeout), WithLogger(logger))
}
