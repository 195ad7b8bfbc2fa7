package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns a canned response or error and records the prompt.
type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestAnalyze_EmptyResume(t *testing.T) {
	a := NewAnalyzer(&fakeGenerator{}, nil)

	_, _, err := a.Analyze(context.Background(), "   \n ", "some jd text")
	require.Error(t, err)

	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "resume", invalid.Field)
}

func TestAnalyze_EmptyJD(t *testing.T) {
	a := NewAnalyzer(&fakeGenerator{}, nil)

	_, _, err := a.Analyze(context.Background(), "resume text", "\t")
	require.Error(t, err)

	var invalid *InvalidInputError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "job description", invalid.Field)
}

func TestAnalyze_Success(t *testing.T) {
	gen := &fakeGenerator{response: fullResponse}
	a := NewAnalyzer(gen, nil)

	result, raw, err := a.Analyze(context.Background(), "resume text", "jd text")
	require.NoError(t, err)
	assert.Equal(t, fullResponse, raw)
	assert.Equal(t, 85, result.MatchPercentage)

	// The prompt embeds both inputs verbatim.
	assert.Contains(t, gen.prompt, "resume text")
	assert.Contains(t, gen.prompt, "jd text")
}

func TestAnalyze_Blocked(t *testing.T) {
	gen := &fakeGenerator{err: &BlockedError{Reason: "SAFETY"}}
	a := NewAnalyzer(gen, nil)

	_, _, err := a.Analyze(context.Background(), "resume", "jd")
	require.Error(t, err)

	var blocked *BlockedError
	assert.ErrorAs(t, err, &blocked)
	assert.Equal(t, "SAFETY", blocked.Reason)
}

func TestAnalyze_GeneratorFailureWrapped(t *testing.T) {
	cause := errors.New("network down")
	a := NewAnalyzer(&fakeGenerator{err: cause}, nil)

	_, _, err := a.Analyze(context.Background(), "resume", "jd")
	require.Error(t, err)

	var analysisErr *AnalysisError
	assert.ErrorAs(t, err, &analysisErr)
	assert.ErrorIs(t, err, cause)
}

func TestSnippet_Truncation(t *testing.T) {
	long := strings.Repeat("x", rawSnippetLimit+100)
	got := snippet(long)
	assert.Len(t, got, rawSnippetLimit+3)
	assert.True(t, strings.HasSuffix(got, "..."))

	short := "short response"
	assert.Equal(t, short, snippet(short))
}

func TestAnalysisError_IncludesSnippet(t *testing.T) {
	err := &AnalysisError{Cause: errors.New("boom"), RawSnippet: "partial output"}
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "partial output")
}
