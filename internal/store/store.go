// Package store persists per-case run metadata to a local SQLite
// database — a run/QC audit trail produced alongside evaluation but
// with no mandated persistence mechanism; caching it here is an
// implementation accelerator, not part of the scoring core. Grounded
// on internal/feedback/sqlite.go: modernc.org/sqlite, WAL mode, schema
// created on open.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lirical-go/lirical/internal/domain"
)

// RunStore persists RunMetadata for completed evaluations, keyed by a
// generated run id (google/uuid, used the same way the reference
// feedback store uses uuid for request identifiers).
type RunStore struct {
	db *sql.DB
}

// Open creates (if absent) and opens the SQLite database at dbPath,
// enabling WAL mode for concurrent readers the way the reference
// feedback store does.
func Open(dbPath string) (*RunStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &RunStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *RunStore) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		sample_name TEXT NOT NULL,
		analysis_date DATETIME NOT NULL,
		ontology_version TEXT DEFAULT '',
		corpus_size INTEGER NOT NULL,
		genes_with_variants INTEGER NOT NULL DEFAULT 0,
		retained_variants INTEGER NOT NULL DEFAULT 0,
		filtered_variants INTEGER NOT NULL DEFAULT 0,
		top_disease_id TEXT DEFAULT '',
		top_posterior REAL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_runs_sample_name ON runs(sample_name);
	`)
	return err
}

// RecordRun inserts a completed evaluation's metadata and top hit,
// returning the generated run id. Called after Evaluate() returns, so
// it never observes a partial or failed run.
func (s *RunStore) RecordRun(ctx context.Context, meta domain.RunMetadata, ranked []domain.DiseaseScore) (string, error) {
	runID := uuid.NewString()

	var topID string
	var topPosterior float64
	if len(ranked) > 0 {
		topID = ranked[0].DiseaseID
		topPosterior = ranked[0].Posterior
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, sample_name, analysis_date, ontology_version, corpus_size,
			genes_with_variants, retained_variants, filtered_variants, top_disease_id, top_posterior)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, meta.SampleName, meta.AnalysisDate.Format(time.RFC3339), meta.OntologyVersion, meta.CorpusSize,
		meta.GenesWithVariants, meta.RetainedVariants, meta.FilteredVariants, topID, topPosterior)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return runID, nil
}

// RunRecord is one persisted row, returned by RecentRuns for
// audit/QC review of past invocations.
type RunRecord struct {
	RunID             string
	SampleName        string
	AnalysisDate      time.Time
	CorpusSize        int
	GenesWithVariants int
	TopDiseaseID      string
	TopPosterior      float64
}

// RecentRuns returns the most recent limit runs, newest first.
func (s *RunStore) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, sample_name, analysis_date, corpus_size, genes_with_variants, top_disease_id, top_posterior
		FROM runs ORDER BY analysis_date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var analysisDate string
		if err := rows.Scan(&r.RunID, &r.SampleName, &analysisDate, &r.CorpusSize, &r.GenesWithVariants, &r.TopDiseaseID, &r.TopPosterior); err != nil {
			return nil, err
		}
		r.AnalysisDate, _ = time.Parse(time.RFC3339, analysisDate)
		out = append(out, r)
	}
	return out, rows.Err()
}
