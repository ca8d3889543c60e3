package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/puzzlekit/wordjudge/internal/config"
	"github.com/puzzlekit/wordjudge/internal/model"
)

// Evaluator rates a single wordlist entry. The pipeline depends on this
// interface so that tests can substitute a fake without touching the API.
type Evaluator interface {
	// Evaluate rates one word. Parse failures and API errors are returned
	// per word; callers decide whether to record or retry them.
	Evaluate(ctx context.Context, word string) (*model.Evaluation, error)

	// Model returns the name of the underlying model, for reports.
	Model() string
}

// evaluationSchema is the response schema the model must follow.
// This is the API-side equivalent of guided JSON decoding: the model is
// constrained to emit an object with exactly these fields.
var evaluationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"word":     {Type: genai.TypeString, Description: "The evaluated word"},
		"analysis": {Type: genai.TypeString, Description: "The chain-of-thought explanation"},
		"rating":   {Type: genai.TypeInteger, Description: "The quality score (integer between 10 and 50)"},
	},
	Required: []string{"word", "analysis", "rating"},
}

// GeminiEvaluator rates words via the Gemini API.
// Sampling parameters come from the active configuration profile.
type GeminiEvaluator struct {
	// client is the underlying GenAI client.
	client *genai.Client

	// profile carries the model name and sampling parameters.
	profile config.Profile

	// timeout bounds each generate request.
	timeout time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// GeminiOption configures a GeminiEvaluator.
type GeminiOption func(*GeminiEvaluator)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) GeminiOption {
	return func(g *GeminiEvaluator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithGeminiLogger sets a custom logger for the evaluator.
func WithGeminiLogger(logger *slog.Logger) GeminiOption {
	return func(g *GeminiEvaluator) {
		g.logger = logger
	}
}

// NewGeminiEvaluator creates an evaluator for the given profile.
// Credentials come from the environment: GEMINI_API_KEY for the Gemini
// API backend, or the usual Google Cloud variables for Vertex AI.
func NewGeminiEvaluator(ctx context.Context, profile config.Profile, opts ...GeminiOption) (*GeminiEvaluator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	g := &GeminiEvaluator{
		client:  client,
		profile: profile,
		timeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}

	return g, nil
}

// Model returns the model name used for evaluations.
func (g *GeminiEvaluator) Model() string {
	return g.profile.Model
}

// Evaluate rates one word. The request asks for chain-of-thought reasoning
// followed by a JSON object matching evaluationSchema; the reply is parsed
// and validated before being returned.
//
// One retry is attempted on generate errors: transient API failures are
// common enough on long runs that failing a word on the first hiccup would
// litter reports with noise.
func (g *GeminiEvaluator) Evaluate(ctx context.Context, word string) (*model.Evaluation, error) {
	prompt := BuildPrompt(word, g.profile.SystemHint)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		g.logger.Debug("generate failed, retrying once", "word", word, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		raw, err = g.generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate failed for %q: %w", word, err)
		}
	}

	ev, err := ParseEvaluation(raw, word)
	if err != nil {
		return nil, err
	}

	ev.Model = g.profile.Model
	ev.EvaluatedAt = time.Now()
	return ev, nil
}

// generate performs a single GenerateContent call and returns the reply text.
func (g *GeminiEvaluator) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.profile.Model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(g.profile.TemperatureOrDefault())),
			TopP:             genai.Ptr(float32(g.profile.TopPOrDefault())),
			MaxOutputTokens:  int32(g.profile.MaxTokensOrDefault()),
			ResponseMIMEType: "application/json",
			ResponseSchema:   evaluationSchema,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
