// Package report provides best-effort auxiliary reporting of pipeline
// progress and results. Reports are side records only: the pipeline never
// depends on them for correctness and never fails because of them.
package report

import (
	"context"

	"go.uber.org/zap"
)

// Artifact types.
const (
	TypeMarkdown = "markdown"
	TypeText     = "text"
)

// Artifact is one auxiliary record: an input provenance note, a text
// preview, a raw model response, or a final summary.
type Artifact struct {
	Key         string
	Type        string
	Description string
	Data        string
}

// Reporter records artifacts. Implementations must tolerate being called
// concurrently for independent artifacts.
type Reporter interface {
	Report(ctx context.Context, artifact Artifact) error
}

// RunRecorder is a Reporter bound to a single run record that is finalized
// with a terminal status.
type RunRecorder interface {
	Reporter
	Complete(ctx context.Context, status string) error
}

// Nop discards all artifacts.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(context.Context, Artifact) error { return nil }

// Logger records artifacts to a zap logger.
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a Logger reporter.
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger}
}

// Report implements Reporter.
func (l *Logger) Report(_ context.Context, artifact Artifact) error {
	l.logger.Info("artifact",
		zap.String("key", artifact.Key),
		zap.String("type", artifact.Type),
		zap.String("description", artifact.Description),
		zap.Int("bytes", len(artifact.Data)),
	)
	return nil
}
