package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const fullResponse = `RESUME_SUMMARY:
Senior backend engineer with 7 years of Go experience.

JD_SUMMARY:
Looking for a senior Go engineer for distributed systems work.

REQUIREMENTS_MET:
- 5+ years of Go ("7 years of Go experience")
- Distributed systems background

REQUIREMENTS_MISSING:
- Kubernetes operator experience

PERCENTAGE_MATCH:
85
`

func TestParseResponse_AllMarkers(t *testing.T) {
	result := ParseResponse(fullResponse)

	assert.Equal(t, "Senior backend engineer with 7 years of Go experience.", result.ResumeSummary)
	assert.Equal(t, "Looking for a senior Go engineer for distributed systems work.", result.JDSummary)
	assert.Contains(t, result.RequirementsMet, "5+ years of Go")
	assert.Contains(t, result.RequirementsMissing, "Kubernetes operator experience")
	assert.Equal(t, 85, result.MatchPercentage)
}

func TestParseResponse_PercentageOutOfRange(t *testing.T) {
	raw := `RESUME_SUMMARY:
a
JD_SUMMARY:
b
REQUIREMENTS_MET:
c
REQUIREMENTS_MISSING:
d
PERCENTAGE_MATCH:
150`

	result := ParseResponse(raw)
	assert.Equal(t, 0, result.MatchPercentage)
}

func TestParseResponse_PercentageMissing(t *testing.T) {
	raw := `RESUME_SUMMARY:
a
JD_SUMMARY:
b
REQUIREMENTS_MET:
c
REQUIREMENTS_MISSING:
d
`

	result := ParseResponse(raw)
	assert.Equal(t, 0, result.MatchPercentage)
}

func TestParseResponse_MissingJDSummaryMarker(t *testing.T) {
	raw := `RESUME_SUMMARY:
Solid candidate.
REQUIREMENTS_MET:
- Go
REQUIREMENTS_MISSING:
- None
PERCENTAGE_MATCH:
90`

	result := ParseResponse(raw)

	assert.Equal(t, PlaceholderJDSummary, result.JDSummary)
	assert.Equal(t, "Could not parse Job Description Summary.", result.JDSummary)
	// RESUME_SUMMARY needs JD_SUMMARY as its right boundary, so it also
	// falls back; the later sections still parse from their own markers.
	assert.Equal(t, "- Go", result.RequirementsMet)
	assert.Equal(t, "- None", result.RequirementsMissing)
	assert.Equal(t, 90, result.MatchPercentage)
}

func TestParseResponse_EmptyResponse(t *testing.T) {
	result := ParseResponse("")

	assert.Equal(t, PlaceholderResumeSummary, result.ResumeSummary)
	assert.Equal(t, PlaceholderJDSummary, result.JDSummary)
	assert.Equal(t, PlaceholderRequirementsMet, result.RequirementsMet)
	assert.Equal(t, PlaceholderRequirementsMissing, result.RequirementsMissing)
	assert.Equal(t, 0, result.MatchPercentage)
}

func TestParseResponse_CaseInsensitiveMarkers(t *testing.T) {
	raw := `resume_summary:
lower
jd_summary:
case
requirements_met:
met
requirements_missing:
miss
percentage_match: 42`

	result := ParseResponse(raw)
	assert.Equal(t, "lower", result.ResumeSummary)
	assert.Equal(t, 42, result.MatchPercentage)
}

func TestParseResponse_PercentageSameLine(t *testing.T) {
	raw := fullResponse[:len(fullResponse)-4] + " 67\n"
	result := ParseResponse(raw)
	assert.Equal(t, 67, result.MatchPercentage)
}

func TestParseResponse_ZeroIsValid(t *testing.T) {
	raw := `RESUME_SUMMARY:
a
JD_SUMMARY:
b
REQUIREMENTS_MET:
None
REQUIREMENTS_MISSING:
Everything
PERCENTAGE_MATCH:
0`

	result := ParseResponse(raw)
	assert.Equal(t, 0, result.MatchPercentage)
	assert.Equal(t, "None", result.RequirementsMet)
}

func TestBuildPrompt_EmbedsTextsVerbatim(t *testing.T) {
	prompt := BuildPrompt("MY RESUME TEXT", "MY JD TEXT")

	assert.Contains(t, prompt, "--- START RESUME ---\nMY RESUME TEXT\n--- END RESUME ---")
	assert.Contains(t, prompt, "--- START JOB DESCRIPTION ---\nMY JD TEXT\n--- END JOB DESCRIPTION ---")
	assert.Contains(t, prompt, MarkerPercentageMatch)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildPrompt("r", "j"), BuildPrompt("r", "j"))
}
