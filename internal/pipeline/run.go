// Package pipeline orchestrates a full resume / job description match
// analysis: extract the resume, obtain the job description (scrape or
// extract), validate both texts, run the model comparison, and record
// auxiliary artifacts along the way.
//
// The pipeline is strictly sequential. Each step runs under its own retry
// policy, and any step failure short-circuits the run into a Failure
// outcome with a human-readable message.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/venev-g/resume-jd-matching/internal/analysis"
	"github.com/venev-g/resume-jd-matching/internal/extract"
	"github.com/venev-g/resume-jd-matching/internal/report"
	"github.com/venev-g/resume-jd-matching/internal/scrape"
)

// previewLimit caps the size of text previews attached as artifacts.
const previewLimit = 1000

// Extractor turns a local document or image into text.
type Extractor interface {
	Extract(ctx context.Context, path string) (*extract.Result, error)
}

// Fetcher retrieves a job description from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Analyzer compares a resume against a job description and returns the
// structured result together with the raw model response.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jdText string) (*analysis.Result, string, error)
}

// Options configures a single pipeline run.
type Options struct {
	// ResumePath is the local path of the resume document or image.
	ResumePath string `validate:"required"`
	// JDInput is either a URL or a local file path for the job description.
	JDInput string `validate:"required"`

	Extractor Extractor `validate:"required"`
	Analyzer  Analyzer  `validate:"required"`
	// Fetcher is required only when JDInput is a URL.
	Fetcher Fetcher

	// Reporter receives best-effort artifacts. Defaults to report.Nop.
	Reporter report.Reporter
	// Retry overrides the per-step retry policies. Unset policies fall
	// back to DefaultRetryConfig.
	Retry RetryConfig

	Logger *zap.Logger
}

// Outcome is the terminal state of a run. Err is empty on success.
type Outcome struct {
	Result *analysis.Result `json:"result,omitempty"`
	Err    string           `json:"error,omitempty"`
}

// Succeeded reports whether the run produced a result.
func (o Outcome) Succeeded() bool {
	return o.Err == ""
}

// Success wraps a result in a successful outcome.
func Success(result *analysis.Result) Outcome {
	return Outcome{Result: result}
}

// Failure wraps a message in a failed outcome.
func Failure(format string, args ...any) Outcome {
	return Outcome{Err: fmt.Sprintf(format, args...)}
}

var validate = validator.New()

// Run executes the pipeline and always returns a terminal Outcome. Step
// errors surface as Failure outcomes; Run itself never returns a Go error.
func Run(ctx context.Context, opts Options) Outcome {
	if err := validate.Struct(opts); err != nil {
		return Failure("invalid pipeline options: %v", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = report.Nop{}
	}

	defaults := DefaultRetryConfig()
	retry := RetryConfig{
		Extract: opts.Retry.Extract.orDefault(defaults.Extract),
		Fetch:   opts.Retry.Fetch.orDefault(defaults.Fetch),
		Analyze: opts.Retry.Analyze.orDefault(defaults.Analyze),
	}

	jdIsURL, err := classifyJDSource(opts.JDInput)
	if err != nil {
		return Failure("Invalid Job Description input '%s': %v", opts.JDInput, err)
	}

	resumeName := filepath.Base(opts.ResumePath)
	logger.Info("pipeline started",
		zap.String("resume", resumeName),
		zap.String("jd_source", opts.JDInput),
		zap.Bool("jd_is_url", jdIsURL),
	)

	emit(ctx, reporter, logger, report.Artifact{
		Key:         "input-sources",
		Type:        report.TypeMarkdown,
		Description: "Inputs received by the pipeline",
		Data: fmt.Sprintf("**Resume:** `%s`\n\n**Job Description:** `%s`\n",
			opts.ResumePath, opts.JDInput),
	})

	var resumeResult *extract.Result
	err = runWithRetry(ctx, retry.Extract, logger, "extract resume", func(ctx context.Context) error {
		var stepErr error
		resumeResult, stepErr = opts.Extractor.Extract(ctx, opts.ResumePath)
		return stepErr
	})
	if err != nil {
		return Failure("Failed to process Resume '%s': %v", resumeName, err)
	}
	emit(ctx, reporter, logger, report.Artifact{
		Key:         "extracted-resume-" + SanitizeArtifactKey(resumeName),
		Type:        report.TypeText,
		Description: fmt.Sprintf("Resume text extracted from %s (%d pages)", resumeName, resumeResult.PageCount),
		Data:        preview(resumeResult.Text),
	})

	jdText, jdLabel, err := obtainJD(ctx, opts, retry, logger, jdIsURL)
	if err != nil {
		return Failure("Failed to process Job Description from '%s': %v", jdLabel, err)
	}
	emit(ctx, reporter, logger, report.Artifact{
		Key:         "extracted-jd-" + SanitizeArtifactKey(jdLabel),
		Type:        report.TypeText,
		Description: "Job description text from " + jdLabel,
		Data:        preview(jdText),
	})

	// Both texts must be non-empty after trimming before analysis. The
	// resume is checked first so its failure message wins when both are
	// empty.
	if strings.TrimSpace(resumeResult.Text) == "" {
		return Failure("Resume '%s' produced no text after extraction.", resumeName)
	}
	if strings.TrimSpace(jdText) == "" {
		return Failure("Job Description from '%s' produced no text after processing.", jdLabel)
	}

	var (
		result *analysis.Result
		raw    string
	)
	err = runWithRetry(ctx, retry.Analyze, logger, "analyze", func(ctx context.Context) error {
		var stepErr error
		result, raw, stepErr = opts.Analyzer.Analyze(ctx, resumeResult.Text, jdText)
		return stepErr
	})
	if err != nil {
		emit(ctx, reporter, logger, report.Artifact{
			Key:         "analysis-error-info",
			Type:        report.TypeText,
			Description: "Error returned by the analysis step",
			Data:        err.Error(),
		})
		return Failure("Analysis failed: %v", err)
	}

	emit(ctx, reporter, logger, report.Artifact{
		Key:         "analysis-raw-response",
		Type:        report.TypeText,
		Description: "Raw model response before parsing",
		Data:        raw,
	})

	// The two final artifacts are independent; record them concurrently.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		emit(groupCtx, reporter, logger, report.Artifact{
			Key:         "analysis-summary",
			Type:        report.TypeMarkdown,
			Description: "Structured match analysis",
			Data:        summaryMarkdown(result),
		})
		return nil
	})
	group.Go(func() error {
		emit(groupCtx, reporter, logger, report.Artifact{
			Key:         "match-percentage",
			Type:        report.TypeText,
			Description: "Overall match percentage",
			Data:        fmt.Sprintf("%d%%", result.MatchPercentage),
		})
		return nil
	})
	_ = group.Wait()

	logger.Info("pipeline completed", zap.Int("match_percentage", result.MatchPercentage))
	return Success(result)
}

// classifyJDSource decides whether the job description input is a URL or
// an existing local file.
func classifyJDSource(input string) (isURL bool, err error) {
	if scrape.IsHTTPURL(input) {
		return true, nil
	}
	info, statErr := os.Stat(input)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return false, fmt.Errorf("not a URL and no such file")
		}
		return false, statErr
	}
	if info.IsDir() {
		return false, fmt.Errorf("path is a directory, not a file")
	}
	return false, nil
}

// obtainJD runs the URL or file branch for the job description and
// returns the text together with a short source label for messages.
func obtainJD(ctx context.Context, opts Options, retry RetryConfig, logger *zap.Logger, isURL bool) (string, string, error) {
	if isURL {
		if opts.Fetcher == nil {
			return "", opts.JDInput, fmt.Errorf("no fetcher configured for URL input")
		}
		var text string
		err := runWithRetry(ctx, retry.Fetch, logger, "fetch job description", func(ctx context.Context) error {
			var stepErr error
			text, stepErr = opts.Fetcher.Fetch(ctx, opts.JDInput)
			return stepErr
		})
		return text, opts.JDInput, err
	}

	label := filepath.Base(opts.JDInput)
	var result *extract.Result
	err := runWithRetry(ctx, retry.Extract, logger, "extract job description", func(ctx context.Context) error {
		var stepErr error
		result, stepErr = opts.Extractor.Extract(ctx, opts.JDInput)
		return stepErr
	})
	if err != nil {
		return "", label, err
	}
	return result.Text, label, nil
}

// emit records an artifact and logs, but never propagates, a reporter
// failure.
func emit(ctx context.Context, reporter report.Reporter, logger *zap.Logger, artifact report.Artifact) {
	if err := reporter.Report(ctx, artifact); err != nil {
		logger.Warn("artifact report failed",
			zap.String("key", artifact.Key),
			zap.Error(err),
		)
	}
}

// preview truncates text for artifact previews.
func preview(text string) string {
	if len(text) <= previewLimit {
		return text
	}
	return text[:previewLimit] + "\n...[truncated]"
}

// summaryMarkdown renders the structured result for the final artifact.
func summaryMarkdown(result *analysis.Result) string {
	return fmt.Sprintf(
		"## Match Analysis\n\n**Match Percentage:** %d%%\n\n### Resume Summary\n%s\n\n### Job Description Summary\n%s\n\n### Requirements Met\n%s\n\n### Requirements Missing\n%s\n",
		result.MatchPercentage,
		result.ResumeSummary,
		result.JDSummary,
		result.RequirementsMet,
		result.RequirementsMissing,
	)
}
