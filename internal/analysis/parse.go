package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholders substituted for sections whose marker is absent from the
// response. Missing markers never fail the parse.
const (
	PlaceholderResumeSummary       = "Could not parse Resume Summary."
	PlaceholderJDSummary           = "Could not parse Job Description Summary."
	PlaceholderRequirementsMet     = "Could not parse Requirements Met."
	PlaceholderRequirementsMissing = "Could not parse Requirements Missing."
)

var (
	resumeSummaryRe       = regexp.MustCompile(`(?is)RESUME_SUMMARY:(.*?)JD_SUMMARY:`)
	jdSummaryRe           = regexp.MustCompile(`(?is)JD_SUMMARY:(.*?)REQUIREMENTS_MET:`)
	requirementsMetRe     = regexp.MustCompile(`(?is)REQUIREMENTS_MET:(.*?)REQUIREMENTS_MISSING:`)
	requirementsMissingRe = regexp.MustCompile(`(?is)REQUIREMENTS_MISSING:(.*?)PERCENTAGE_MATCH:`)
	percentageRe          = regexp.MustCompile(`(?i)PERCENTAGE_MATCH:\s*(\d{1,3})`)
)

// Result is the structured match report parsed from the model response.
type Result struct {
	ResumeSummary       string `json:"resume_summary"`
	JDSummary           string `json:"jd_summary"`
	RequirementsMet     string `json:"requirements_met"`
	RequirementsMissing string `json:"requirements_missing"`
	MatchPercentage     int    `json:"match_percentage"`
}

// ParseResponse extracts the five fixed-marker sections from a raw model
// response. Each section is the text between its marker and the next one,
// in strict sequence; a missing marker yields that section's placeholder.
// The percentage is a 1-3 digit integer right after its marker; absent or
// outside [0,100] it is forced to 0.
func ParseResponse(raw string) *Result {
	result := &Result{
		ResumeSummary:       PlaceholderResumeSummary,
		JDSummary:           PlaceholderJDSummary,
		RequirementsMet:     PlaceholderRequirementsMet,
		RequirementsMissing: PlaceholderRequirementsMissing,
	}

	if m := resumeSummaryRe.FindStringSubmatch(raw); m != nil {
		result.ResumeSummary = strings.TrimSpace(m[1])
	}
	if m := jdSummaryRe.FindStringSubmatch(raw); m != nil {
		result.JDSummary = strings.TrimSpace(m[1])
	}
	if m := requirementsMetRe.FindStringSubmatch(raw); m != nil {
		result.RequirementsMet = strings.TrimSpace(m[1])
	}
	if m := requirementsMissingRe.FindStringSubmatch(raw); m != nil {
		result.RequirementsMissing = strings.TrimSpace(m[1])
	}

	if m := percentageRe.FindStringSubmatch(raw); m != nil {
		// \d{1,3} guarantees Atoi succeeds.
		pct, _ := strconv.Atoi(m[1])
		if pct >= 0 && pct <= 100 {
			result.MatchPercentage = pct
		}
	}

	return result
}
