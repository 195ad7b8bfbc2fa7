package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/venev-g/resume-jd-matching/internal/analysis"
	"github.com/venev-g/resume-jd-matching/internal/config"
	"github.com/venev-g/resume-jd-matching/internal/extract"
	"github.com/venev-g/resume-jd-matching/internal/ocr"
	"github.com/venev-g/resume-jd-matching/internal/scrape"
)

// defaultConfig holds the built-in fallbacks applied after file and env
// values are merged.
func defaultConfig() config.Config {
	return config.Config{
		Model:                 analysis.DefaultModel,
		OCRBinary:             "tesseract",
		OCRLanguage:           "eng",
		SessionTimeoutSeconds: int(scrape.DefaultSessionTimeout / time.Second),
		ListenAddr:            ":8080",
	}
}

// resolveConfig layers configuration: flag-provided file values first, then
// environment variables, then built-in defaults.
func resolveConfig(configPath string) (config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg = cfg.MergeWithDefaults(defaultConfig())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// resolveHeadless decides the browser mode; a headful request from either
// the flag or the config wins over the headless default.
func resolveHeadless(flagHeadful bool, cfg config.Config) bool {
	return !(flagHeadful || cfg.Headful)
}

// newLogger builds the process logger.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// components bundles the pipeline dependencies built from configuration.
type components struct {
	extractor *extract.Extractor
	fetcher   *scrape.Fetcher
	analyzer  *analysis.Analyzer
	generator *analysis.GeminiGenerator
}

// close releases resources held by the components.
func (c *components) close() {
	if c.generator != nil {
		_ = c.generator.Close()
	}
}

// buildComponents wires the extractor, fetcher and analyzer from the merged
// configuration. The caller must invoke close when done.
func buildComponents(ctx context.Context, cfg config.Config, headless bool, logger *zap.Logger) (*components, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or api_key in the config file)")
	}

	generator, err := analysis.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	engine := ocr.NewTesseract(cfg.OCRBinary, cfg.OCRLanguage)

	browserOpts := scrape.DefaultOptions()
	browserOpts.Headless = headless
	if cfg.SessionTimeoutSeconds > 0 {
		browserOpts.SessionTimeout = time.Duration(cfg.SessionTimeoutSeconds) * time.Second
	}

	return &components{
		extractor: extract.New(engine, logger),
		fetcher:   scrape.NewFetcher(browserOpts, logger),
		analyzer:  analysis.NewAnalyzer(generator, logger),
		generator: generator,
	}, nil
}
