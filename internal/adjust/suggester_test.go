package adjust

import (
	"context"
	"errors"
	"testing"
	"time"

	genai "google.golang.org/genai"

	"github.com/vovakirdan/shape-explorers/internal/config"
)

func TestHeuristicSuggester(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want config.DifficultyLevel
	}{
		{"fast and accurate promotes", Input{SuccessRate: 1, Speed: 2, ErrorPatterns: "None", CurrentDifficulty: "Normal"}, config.DifficultyHard},
		{"top tier stays", Input{SuccessRate: 1, Speed: 1, ErrorPatterns: "None", CurrentDifficulty: "Very Hard"}, config.DifficultyVeryHard},
		{"inaccurate demotes", Input{SuccessRate: 0.5, Speed: 2, ErrorPatterns: "tapped star instead of heart (2 times)", CurrentDifficulty: "Hard"}, config.DifficultyNormal},
		{"slow demotes", Input{SuccessRate: 1, Speed: 9, ErrorPatterns: "None", CurrentDifficulty: "Easy"}, config.DifficultyVeryEasy},
		{"bottom tier stays", Input{SuccessRate: 0.2, Speed: 12, ErrorPatterns: "None", CurrentDifficulty: "Very Easy"}, config.DifficultyVeryEasy},
		{"middle stays", Input{SuccessRate: 0.75, Speed: 4, ErrorPatterns: "None", CurrentDifficulty: "Easy"}, config.DifficultyEasy},
		{"unknown label treated as normal", Input{SuccessRate: 0.75, Speed: 4, ErrorPatterns: "None", CurrentDifficulty: "Spicy"}, config.DifficultyNormal},
	}

	h := NewHeuristicSuggester()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Suggest(context.Background(), tt.in)
			if err != nil {
				t.Fatalf("Suggest() failed: %v", err)
			}
			if config.DifficultyLevel(out.SuggestedDifficulty) != tt.want {
				t.Errorf("SuggestedDifficulty = %q, want %q", out.SuggestedDifficulty, tt.want)
			}
			if out.Reasoning == "" {
				t.Error("Reasoning is empty")
			}
		})
	}
}

func TestHeuristicCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHeuristicSuggester().Suggest(ctx, Input{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRetryEventuallySucceeds(t *testing.T) {
	calls := 0
	flaky := SuggesterFunc(func(ctx context.Context, in Input) (Output, error) {
		calls++
		if calls < 3 {
			return Output{}, errors.New("503")
		}
		return Output{SuggestedDifficulty: "Easy", Reasoning: "ok"}, nil
	})

	s := Chain(flaky, WithRetry(3, time.Millisecond))
	out, err := s.Suggest(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Suggest() failed: %v", err)
	}
	if out.SuggestedDifficulty != "Easy" || calls != 3 {
		t.Errorf("out = %+v after %d calls", out, calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	stub := &stubSuggester{err: errors.New("down")}
	s := Chain(stub, WithRetry(2, time.Millisecond))
	if _, err := s.Suggest(context.Background(), Input{}); err == nil {
		t.Fatal("Suggest() returned nil error")
	}
	if stub.calls != 2 {
		t.Errorf("calls = %d, want 2", stub.calls)
	}
}

func TestRetrySkipsMalformed(t *testing.T) {
	stub := &stubSuggester{err: ErrMalformedOutput}
	s := Chain(stub, WithRetry(5, time.Millisecond))
	if _, err := s.Suggest(context.Background(), Input{}); !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("error = %v, want ErrMalformedOutput", err)
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1", stub.calls)
	}
}

func TestCacheReusesIdenticalInput(t *testing.T) {
	stub := &stubSuggester{out: Output{SuggestedDifficulty: "Hard", Reasoning: "fast"}}
	s := Chain(stub, WithCache(8))

	in := Input{SuccessRate: 1, Speed: 2, ErrorPatterns: "None", CurrentDifficulty: "Normal"}
	for i := 0; i < 3; i++ {
		if _, err := s.Suggest(context.Background(), in); err != nil {
			t.Fatalf("Suggest() failed: %v", err)
		}
	}
	if stub.calls != 1 {
		t.Errorf("calls = %d, want 1", stub.calls)
	}

	in.Speed = 2.5
	if _, err := s.Suggest(context.Background(), in); err != nil {
		t.Fatalf("Suggest() failed: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("calls = %d after new input, want 2", stub.calls)
	}
}

func TestCacheSkipsMalformed(t *testing.T) {
	stub := &stubSuggester{out: Output{SuggestedDifficulty: "Hard"}}
	s := Chain(stub, WithCache(8))
	for i := 0; i < 2; i++ {
		//nolint:errcheck // only call counting matters here
		s.Suggest(context.Background(), Input{})
	}
	if stub.calls != 2 {
		t.Errorf("calls = %d, want 2 (malformed output must not be cached)", stub.calls)
	}
}

func TestFallback(t *testing.T) {
	broken := &stubSuggester{err: errors.New("quota")}
	s := Chain(broken, WithFallback(NewHeuristicSuggester()))

	out, err := s.Suggest(context.Background(), Input{SuccessRate: 1, Speed: 1, CurrentDifficulty: "Easy"})
	if err != nil {
		t.Fatalf("Suggest() failed: %v", err)
	}
	if out.SuggestedDifficulty != string(config.DifficultyNormal) {
		t.Errorf("SuggestedDifficulty = %q, want Normal from heuristic", out.SuggestedDifficulty)
	}
	if s.Name() != "stub+heuristic" {
		t.Errorf("Name() = %q", s.Name())
	}
}

// fakeModels stands in for the genai Models service.
type fakeModels struct {
	text   string
	err    error
	model  string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = cfg
	if f.err != nil {
		return nil, f.err
	}
	if f.text == "" {
		return &genai.GenerateContentResponse{}, nil
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestGeminiSuggesterDecodes(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain json", `{"suggestedDifficulty":"Easy","reasoning":"Slow down a bit."}`},
		{"fenced json", "```json\n{\"suggestedDifficulty\":\"Easy\",\"reasoning\":\"Slow down a bit.\"}\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeModels{text: tt.text}
			g := &GeminiSuggester{models: fake, model: "gemini-test"}

			out, err := g.Suggest(context.Background(), Input{SuccessRate: 0.4, Speed: 6, ErrorPatterns: "None", CurrentDifficulty: "Normal"})
			if err != nil {
				t.Fatalf("Suggest() failed: %v", err)
			}
			if out.SuggestedDifficulty != "Easy" || out.Reasoning != "Slow down a bit." {
				t.Errorf("out = %+v", out)
			}
			if fake.model != "gemini-test" {
				t.Errorf("model = %q", fake.model)
			}
			if fake.config == nil || fake.config.ResponseMIMEType != "application/json" {
				t.Error("request did not ask for application/json")
			}
		})
	}
}

func TestGeminiSuggesterErrors(t *testing.T) {
	apiErr := errors.New("permission denied")

	g := &GeminiSuggester{models: &fakeModels{err: apiErr}, model: "m"}
	if _, err := g.Suggest(context.Background(), Input{}); !errors.Is(err, apiErr) {
		t.Errorf("error = %v, want API error", err)
	}

	g = &GeminiSuggester{models: &fakeModels{}, model: "m"}
	if _, err := g.Suggest(context.Background(), Input{}); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("error = %v, want ErrEmptyResponse", err)
	}

	g = &GeminiSuggester{models: &fakeModels{text: "I think Easy"}, model: "m"}
	if _, err := g.Suggest(context.Background(), Input{}); !errors.Is(err, ErrMalformedOutput) {
		t.Errorf("error = %v, want ErrMalformedOutput", err)
	}
}
