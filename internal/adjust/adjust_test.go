package adjust

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shape-explorers/internal/config"
	"github.com/vovakirdan/shape-explorers/internal/stats"
)

// stubSuggester returns canned answers and records its inputs.
type stubSuggester struct {
	out   Output
	err   error
	calls int
	last  Input
}

func (s *stubSuggester) Name() string { return "stub" }

func (s *stubSuggester) Suggest(_ context.Context, in Input) (Output, error) {
	s.calls++
	s.last = in
	return s.out, s.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func sampleSnapshot() stats.Snapshot {
	agg := stats.NewAggregator()
	agg.RecordHit(1 * time.Second)
	agg.RecordHit(3 * time.Second)
	return agg.Snapshot()
}

func TestAdjustSuccessIsVerbatim(t *testing.T) {
	stub := &stubSuggester{out: Output{SuggestedDifficulty: " Hard ", Reasoning: "You are fast!"}}
	gw := NewGateway(stub, WithLogger(quietLogger()))

	res, err := gw.Adjust(context.Background(), sampleSnapshot(), config.DifficultyNormal)
	if err != nil {
		t.Fatalf("Adjust() failed: %v", err)
	}
	if res.SuggestedDifficulty != config.DifficultyHard {
		t.Errorf("SuggestedDifficulty = %q, want Hard", res.SuggestedDifficulty)
	}
	if res.Reasoning != "You are fast!" {
		t.Errorf("Reasoning = %q", res.Reasoning)
	}

	want := Input{SuccessRate: 1, Speed: 2, ErrorPatterns: "None", CurrentDifficulty: "Normal"}
	if stub.last != want {
		t.Errorf("suggester input = %+v, want %+v", stub.last, want)
	}

	if got := Apply(config.DifficultyNormal, res, err); got != config.DifficultyHard {
		t.Errorf("Apply = %q, want Hard", got)
	}
}

func TestAdjustKeepsUnknownLabel(t *testing.T) {
	stub := &stubSuggester{out: Output{SuggestedDifficulty: "Super Duper", Reasoning: "why not"}}
	gw := NewGateway(stub, WithLogger(quietLogger()))

	res, err := gw.Adjust(context.Background(), sampleSnapshot(), config.DifficultyEasy)
	if err != nil {
		t.Fatalf("Adjust() failed: %v", err)
	}
	if res.SuggestedDifficulty != "Super Duper" {
		t.Errorf("SuggestedDifficulty = %q, want opaque label kept", res.SuggestedDifficulty)
	}
}

func TestAdjustFailureKeepsDifficulty(t *testing.T) {
	tests := []struct {
		name string
		stub *stubSuggester
	}{
		{"suggester error", &stubSuggester{err: errors.New("model exploded")}},
		{"empty label", &stubSuggester{out: Output{Reasoning: "no label"}}},
		{"empty reasoning", &stubSuggester{out: Output{SuggestedDifficulty: "Easy"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := NewGateway(tt.stub, WithLogger(quietLogger()))
			res, err := gw.Adjust(context.Background(), sampleSnapshot(), config.DifficultyHard)
			if !errors.Is(err, ErrAdjustmentFailed) {
				t.Fatalf("Adjust() error = %v, want ErrAdjustmentFailed", err)
			}
			if res != (Result{}) {
				t.Errorf("Result = %+v, want zero", res)
			}
			if got := Apply(config.DifficultyHard, res, err); got != config.DifficultyHard {
				t.Errorf("Apply = %q, want unchanged Hard", got)
			}
		})
	}
}

func TestAdjustMalformedIsDistinguishable(t *testing.T) {
	gw := NewGateway(&stubSuggester{out: Output{SuggestedDifficulty: "Easy"}}, WithLogger(quietLogger()))
	_, err := gw.Adjust(context.Background(), sampleSnapshot(), config.DifficultyNormal)
	if !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("error = %v, want ErrMalformedOutput in chain", err)
	}
}

func TestAdjustTimeout(t *testing.T) {
	slow := SuggesterFunc(func(ctx context.Context, in Input) (Output, error) {
		<-ctx.Done()
		return Output{}, ctx.Err()
	})
	gw := NewGateway(slow, WithTimeout(20*time.Millisecond), WithLogger(quietLogger()))

	start := time.Now()
	_, err := gw.Adjust(context.Background(), sampleSnapshot(), config.DifficultyNormal)
	if !errors.Is(err, ErrAdjustmentFailed) {
		t.Fatalf("error = %v, want ErrAdjustmentFailed", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want DeadlineExceeded in chain", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout was not applied")
	}
}

func TestAdjustWithoutSuggester(t *testing.T) {
	gw := NewGateway(nil, WithLogger(quietLogger()))
	if _, err := gw.Adjust(context.Background(), sampleSnapshot(), config.DifficultyNormal); !errors.Is(err, ErrAdjustmentFailed) {
		t.Errorf("error = %v, want ErrAdjustmentFailed", err)
	}
}

func TestApplyEmptyResult(t *testing.T) {
	if got := Apply(config.DifficultyEasy, Result{}, nil); got != config.DifficultyEasy {
		t.Errorf("Apply(empty) = %q, want Easy", got)
	}
}

func TestNewFromConfigHeuristic(t *testing.T) {
	cfg := config.DefaultConfig().Adjust
	cfg.Suggester = config.SuggesterHeuristic

	gw := NewFromConfig(context.Background(), cfg, quietLogger())
	if gw.Name() != "heuristic" {
		t.Errorf("Name() = %q, want heuristic", gw.Name())
	}

	res, err := gw.Adjust(context.Background(), sampleSnapshot(), config.DifficultyNormal)
	if err != nil {
		t.Fatalf("Adjust() failed: %v", err)
	}
	if res.SuggestedDifficulty != config.DifficultyHard {
		t.Errorf("SuggestedDifficulty = %q, want Hard", res.SuggestedDifficulty)
	}
}
