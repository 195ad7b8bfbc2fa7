package analysis

import "strings"

// Section markers the model is instructed to emit, parsed back in order.
const (
	MarkerResumeSummary       = "RESUME_SUMMARY:"
	MarkerJDSummary           = "JD_SUMMARY:"
	MarkerRequirementsMet     = "REQUIREMENTS_MET:"
	MarkerRequirementsMissing = "REQUIREMENTS_MISSING:"
	MarkerPercentageMatch     = "PERCENTAGE_MATCH:"
)

const promptTemplate = `
Analyze the following Resume and Job Description.

**Resume Text:**
--- START RESUME ---
{{RESUME_TEXT}}
--- END RESUME ---

**Job Description Text:**
--- START JOB DESCRIPTION ---
{{JD_TEXT}}
--- END JOB DESCRIPTION ---

**Analysis Task:**
1. Provide a brief summary of the candidate's profile based *only* on the resume text.
2. Provide a brief summary of the key requirements based *only* on the job description text.
3. List the key requirements *explicitly stated* in the job description that **ARE clearly met** by the candidate's resume. Be specific and quote evidence from the resume if possible. If none are met, state "None".
4. List the key requirements *explicitly stated* in the job description that **ARE potentially missing or NOT clearly met** based on the resume. Be specific. If all requirements seem met, state "None".
5. Based *only* on the comparison between the explicitly stated requirements (minimum and preferred qualifications if listed) in the Job Description and the evidence in the Resume, estimate the percentage match (0-100). Provide *only* the number, without any explanation or percentage sign.

**Output Format:**
Use the following exact markers for each section:

RESUME_SUMMARY:
[Your summary of the resume]

JD_SUMMARY:
[Your summary of the job description]

REQUIREMENTS_MET:
- [Requirement 1 met]
- [Requirement 2 met]
... or None

REQUIREMENTS_MISSING:
- [Requirement 1 missing]
- [Requirement 2 missing]
... or None

PERCENTAGE_MATCH:
[A single number between 0 and 100]
`

// BuildPrompt embeds both texts verbatim into the comparison prompt.
// The prompt is deterministic: identical inputs yield an identical prompt.
func BuildPrompt(resumeText, jdText string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME_TEXT}}", resumeText)
	prompt = strings.ReplaceAll(prompt, "{{JD_TEXT}}", jdText)
	return prompt
}
