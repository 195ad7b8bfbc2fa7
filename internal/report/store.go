package report

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Store persists pipeline runs and their artifacts in PostgreSQL.
// It is optional: the pipeline works with any Reporter, and the CLI only
// wires a Store when a database URL is configured.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// EnsureSchema creates the runs and artifacts tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateRun inserts a run record and returns a Reporter bound to it.
func (s *Store) CreateRun(ctx context.Context, resumeSource, jdSource string) (*RunReporter, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO pipeline_runs (resume_source, jd_source, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		resumeSource, jdSource,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return &RunReporter{store: s, runID: id}, nil
}

// RunReporter records artifacts against one pipeline run.
type RunReporter struct {
	store *Store
	runID uuid.UUID
}

// RunID returns the run this reporter is bound to.
func (r *RunReporter) RunID() uuid.UUID {
	return r.runID
}

// Report implements Reporter. Artifacts are upserted by (run, key) so a
// retried step overwrites its earlier report.
func (r *RunReporter) Report(ctx context.Context, artifact Artifact) error {
	_, err := r.store.pool.Exec(ctx,
		`INSERT INTO run_artifacts (run_id, key, type, description, data)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (run_id, key)
		 DO UPDATE SET type = $3, description = $4, data = $5, created_at = NOW()`,
		r.runID, artifact.Key, artifact.Type, artifact.Description, artifact.Data,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", artifact.Key, err)
	}
	return nil
}

// Complete marks the run finished with the given status.
func (r *RunReporter) Complete(ctx context.Context, status string) error {
	_, err := r.store.pool.Exec(ctx,
		`UPDATE pipeline_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, r.runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}
