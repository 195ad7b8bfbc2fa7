// Package server provides the HTTP API for the resume / job description
// match analyzer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/venev-g/resume-jd-matching/internal/pipeline"
	"github.com/venev-g/resume-jd-matching/internal/report"
)

// maxUploadBytes bounds the multipart form size for /analyze.
const maxUploadBytes = 32 << 20

// runFunc executes one pipeline run. Tests substitute a fake.
type runFunc func(ctx context.Context, opts pipeline.Options) pipeline.Outcome

// Config holds server configuration.
type Config struct {
	Addr      string
	UploadDir string

	Extractor pipeline.Extractor
	Fetcher   pipeline.Fetcher
	Analyzer  pipeline.Analyzer
	Reporter  report.Reporter
	Retry     pipeline.RetryConfig

	// NewRunReporter, when set, creates a per-request reporter bound to a
	// fresh run record; its Complete is called with the terminal status.
	// Creation failures are logged and the request falls back to Reporter.
	NewRunReporter func(ctx context.Context, resumeSource, jdSource string) (report.RunRecorder, error)

	Logger *zap.Logger
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        Config
	logger     *zap.Logger
	run        runFunc
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	if cfg.Extractor == nil || cfg.Analyzer == nil {
		return nil, fmt.Errorf("server requires an extractor and an analyzer")
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = os.TempDir()
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", cfg.UploadDir, err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		run:    pipeline.Run,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // analysis runs can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until an interrupt or
// SIGTERM triggers a graceful shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart form with a "resume" file and either a
// "jd" file or a "jd_url" field, runs the pipeline, and returns the match
// result. Uploaded files are removed before the response is written.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	_, resumeHeader, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing 'resume' file")
		return
	}

	resumePath, err := saveUpload(s.cfg.UploadDir, resumeHeader)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer os.Remove(resumePath)

	jdInput := r.FormValue("jd_url")
	if jdInput == "" {
		_, jdHeader, err := r.FormFile("jd")
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "provide either a 'jd' file or a 'jd_url' field")
			return
		}
		jdPath, err := saveUpload(s.cfg.UploadDir, jdHeader)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer os.Remove(jdPath)
		jdInput = jdPath
	}

	// Run records are best-effort: a failed create never blocks analysis.
	reporter := s.cfg.Reporter
	var recorder report.RunRecorder
	if s.cfg.NewRunReporter != nil {
		rec, err := s.cfg.NewRunReporter(r.Context(), resumeHeader.Filename, jdInput)
		if err != nil {
			s.logger.Warn("failed to create run record", zap.Error(err))
		} else {
			recorder = rec
			reporter = rec
		}
	}

	outcome := s.run(r.Context(), pipeline.Options{
		ResumePath: resumePath,
		JDInput:    jdInput,
		Extractor:  s.cfg.Extractor,
		Fetcher:    s.cfg.Fetcher,
		Analyzer:   s.cfg.Analyzer,
		Reporter:   reporter,
		Retry:      s.cfg.Retry,
		Logger:     s.logger,
	})

	if recorder != nil {
		status := "completed"
		if !outcome.Succeeded() {
			status = "failed"
		}
		if err := recorder.Complete(r.Context(), status); err != nil {
			s.logger.Warn("failed to finalize run record", zap.Error(err))
		}
	}

	if !outcome.Succeeded() {
		s.errorResponse(w, http.StatusUnprocessableEntity, outcome.Err)
		return
	}
	s.jsonResponse(w, http.StatusOK, outcome.Result)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
