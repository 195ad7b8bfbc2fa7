// Package analysis compares resume and job description text with an LLM
// and parses the fixed-marker match report it returns.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is the Gemini model used for comparison.
	DefaultModel = "gemini-2.5-flash"
	// Temperature keeps sampling near-deterministic so repeated runs on the
	// same pair produce comparable reports.
	Temperature = 0.2
	// rawSnippetLimit caps the diagnostic snippet carried by AnalysisError.
	rawSnippetLimit = 500
)

// Generator produces a text completion for a prompt. The production
// implementation wraps the Gemini client; tests substitute fakes.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the resume / job description comparison.
type Analyzer struct {
	generator Generator
	logger    *zap.Logger
}

// NewAnalyzer creates an Analyzer on top of a Generator.
func NewAnalyzer(generator Generator, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{generator: generator, logger: logger}
}

// Analyze compares the two texts and returns the parsed report along with
// the raw model response. Both inputs must be non-empty after trimming.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jdText string) (*Result, string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, "", &InvalidInputError{Field: "resume"}
	}
	if strings.TrimSpace(jdText) == "" {
		return nil, "", &InvalidInputError{Field: "job description"}
	}

	prompt := BuildPrompt(resumeText, jdText)
	a.logger.Info("sending comparison request",
		zap.Int("prompt_chars", len(prompt)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		var blocked *BlockedError
		if errors.As(err, &blocked) {
			a.logger.Warn("model response blocked", zap.String("reason", blocked.Reason))
			return nil, raw, err
		}
		return nil, raw, &AnalysisError{Cause: err, RawSnippet: snippet(raw)}
	}

	result := ParseResponse(raw)
	a.logger.Info("parsed comparison response",
		zap.Int("match_percentage", result.MatchPercentage),
	)
	return result, raw, nil
}

// GeminiGenerator is the production Generator backed by the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator. The model is
// configured for low-randomness single-candidate sampling.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateContent sends the prompt and returns the response text. A response
// with no candidates surfaces as *BlockedError with whatever block-reason
// metadata the provider attached.
func (g *GeminiGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(Temperature)
	model.SetCandidateCount(1)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		reason := ""
		if resp.PromptFeedback != nil {
			reason = resp.PromptFeedback.BlockReason.String()
		}
		return "", &BlockedError{Reason: reason}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &BlockedError{Reason: "empty candidate content"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &BlockedError{Reason: "no text parts in candidate"}
	}

	return strings.Join(parts, ""), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// snippet truncates raw response text for error diagnostics.
func snippet(raw string) string {
	if len(raw) <= rawSnippetLimit {
		return raw
	}
	return raw[:rawSnippetLimit] + "..."
}
