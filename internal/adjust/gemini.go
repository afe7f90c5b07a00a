package adjust

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// ErrEmptyResponse reports a model response without any text part.
var ErrEmptyResponse = errors.New("adjust: empty response from model")

const suggestPrompt = `You are an expert game designer, skilled at adjusting game difficulty to match player skill.
The player is a young child finding named shapes on a board.

Based on the player's performance in the INPUT JSON, suggest a new difficulty level and explain your reasoning
in one or two short, friendly sentences addressed to the child.

Consider the following difficulty levels: Very Easy, Easy, Normal, Hard, Very Hard.
successRate is the fraction of correct taps (0 to 1), speed is the average seconds to a correct tap.
Respond with a JSON object: {"suggestedDifficulty": "...", "reasoning": "..."}.`

// contentGenerator is the subset of the genai Models service used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiSuggester asks a Gemini model for the next difficulty.
// Retries, caching and fallbacks are layered on with middleware.
type GeminiSuggester struct {
	models contentGenerator
	model  string
}

// NewGeminiSuggester creates a suggester backed by the Gemini API.
// An empty apiKey lets the genai client read GEMINI_API_KEY / GOOGLE_API_KEY.
func NewGeminiSuggester(ctx context.Context, apiKey, model string) (*GeminiSuggester, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("adjust: cannot create gemini client: %w", err)
	}
	return &GeminiSuggester{models: cli.Models, model: model}, nil
}

func (g *GeminiSuggester) Name() string { return "gemini:" + g.model }

// Suggest sends the prompt and input and decodes the JSON answer.
func (g *GeminiSuggester) Suggest(ctx context.Context, in Input) (Output, error) {
	body, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return Output{}, err
	}
	full := suggestPrompt + "\n\n[INPUT JSON]\n" + string(body)

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   outputSchema,
		},
	)
	if err != nil {
		return Output{}, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Output{}, ErrEmptyResponse
	}

	return decodeOutput(resp.Candidates[0].Content.Parts[0].Text)
}

var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestedDifficulty": {Type: genai.TypeString},
		"reasoning":           {Type: genai.TypeString},
	},
	Required: []string{"suggestedDifficulty", "reasoning"},
}

// decodeOutput parses model text, tolerating a Markdown code fence around the JSON.
func decodeOutput(text string) (Output, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var out Output
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return out, nil
}
