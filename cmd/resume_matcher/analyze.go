package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/venev-g/resume-jd-matching/internal/analysis"
	"github.com/venev-g/resume-jd-matching/internal/pipeline"
	"github.com/venev-g/resume-jd-matching/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze how well a resume matches a job description",
	Long: `Extracts text from the resume (PDF or image, with OCR fallback), obtains
the job description from a LinkedIn URL or a local file, and asks Gemini for
a structured match analysis.

Configuration can be loaded from a JSON file using --config. Environment
variables and command-line flags override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJD         string
	analyzeJDURL      string
	analyzeAPIKey     string
	analyzeDBURL      string
	analyzeJSON       bool
	analyzeHeadful    bool
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume PDF or image (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJD, "jd", "j", "", "Path to job description PDF or image (mutually exclusive with --jd-url)")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "LinkedIn job URL to scrape (mutually exclusive with --jd)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeHeadful, "headful", false, "Run the browser with a visible window (debugging)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	analyzeCmd.Flags().StringVar(&analyzeDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jdInput := analyzeJDURL
	if jdInput == "" {
		jdInput = analyzeJD
	}
	if jdInput == "" {
		return fmt.Errorf("provide a job description with --jd or --jd-url")
	}

	cfg, err := resolveConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if analyzeAPIKey != "" {
		cfg.APIKey = analyzeAPIKey
	}
	if analyzeDBURL != "" {
		cfg.DatabaseURL = analyzeDBURL
	}

	logger, err := newLogger(analyzeVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	deps, err := buildComponents(ctx, cfg, resolveHeadless(analyzeHeadful, cfg), logger)
	if err != nil {
		return err
	}
	defer deps.close()

	// Artifact persistence is optional: without a database URL, artifacts
	// are written to the log only.
	var reporter report.Reporter = report.NewLogger(logger)
	var runReporter *report.RunReporter
	if cfg.DatabaseURL != "" {
		store, err := report.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to artifact store: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		runReporter, err = store.CreateRun(ctx, analyzeResume, jdInput)
		if err != nil {
			return fmt.Errorf("failed to create run record: %w", err)
		}
		reporter = runReporter
	}

	outcome := pipeline.Run(ctx, pipeline.Options{
		ResumePath: analyzeResume,
		JDInput:    jdInput,
		Extractor:  deps.extractor,
		Fetcher:    deps.fetcher,
		Analyzer:   deps.analyzer,
		Reporter:   reporter,
		Logger:     logger,
	})

	if runReporter != nil {
		status := "completed"
		if !outcome.Succeeded() {
			status = "failed"
		}
		if err := runReporter.Complete(ctx, status); err != nil {
			logger.Warn("failed to finalize run record", zap.Error(err))
		}
	}

	if !outcome.Succeeded() {
		return fmt.Errorf("%s", outcome.Err)
	}
	return printResult(outcome.Result, analyzeJSON)
}

// printResult renders the analysis to stdout.
func printResult(result *analysis.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Match: %d%%\n\n", result.MatchPercentage)
	fmt.Printf("Resume Summary:\n%s\n\n", result.ResumeSummary)
	fmt.Printf("Job Description Summary:\n%s\n\n", result.JDSummary)
	fmt.Printf("Requirements Met:\n%s\n\n", result.RequirementsMet)
	fmt.Printf("Requirements Missing:\n%s\n", result.RequirementsMissing)
	return nil
}
