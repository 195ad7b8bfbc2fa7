package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/venev-g/resume-jd-matching/internal/report"
	"github.com/venev-g/resume-jd-matching/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /analyze for resume / job description matching.`,
	RunE:  runServe,
}

var (
	serveConfigPath string
	serveAddr       string
	serveVerbose    bool
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to :8080)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}

	logger, err := newLogger(serveVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	deps, err := buildComponents(ctx, cfg, resolveHeadless(false, cfg), logger)
	if err != nil {
		return err
	}
	defer deps.close()

	srvCfg := server.Config{
		Addr:      cfg.ListenAddr,
		UploadDir: cfg.UploadDir,
		Extractor: deps.extractor,
		Fetcher:   deps.fetcher,
		Analyzer:  deps.analyzer,
		Reporter:  report.NewLogger(logger),
		Logger:    logger,
	}

	// With a database configured, each request gets its own run record.
	if cfg.DatabaseURL != "" {
		store, err := report.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to artifact store: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		srvCfg.NewRunReporter = func(ctx context.Context, resumeSource, jdSource string) (report.RunRecorder, error) {
			return store.CreateRun(ctx, resumeSource, jdSource)
		}
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
