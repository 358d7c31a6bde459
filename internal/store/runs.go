package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ed-00/AED-EEND/internal/overlap"
)

// Run is one persisted overlap-analysis run.
type Run struct {
	ID            string          `json:"id"`
	CreatedAt     string          `json:"created_at"`
	Source        string          `json:"source"`
	MinConcurrent int             `json:"min_concurrent"`
	Summary       overlap.Summary `json:"summary"`
}

// SaveRun records a run and its per-recording breakdown in one transaction.
// Returns the new run id.
func (s *Store) SaveRun(ctx context.Context, source string, minConcurrent int,
	summary overlap.Summary, results []overlap.RecordingResult) (string, error) {

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	runID := id.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, min_concurrent, recordings,
		                  speech_seconds, overlap_seconds, overlap_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, source, minConcurrent, summary.Recordings,
		summary.SpeechSeconds, summary.OverlapSeconds, summary.OverlapPercent)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_recordings (run_id, reco_id, union_seconds, overlap_seconds)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare recording insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.ExecContext(ctx, runID, r.RecoID, r.Union, r.Overlap); err != nil {
			return "", fmt.Errorf("insert recording %s: %w", r.RecoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, min_concurrent, recordings,
		       speech_seconds, overlap_seconds, overlap_percent
		FROM runs
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.MinConcurrent,
			&r.Summary.Recordings, &r.Summary.SpeechSeconds,
			&r.Summary.OverlapSeconds, &r.Summary.OverlapPercent); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunRecordings returns the per-recording breakdown of one run, ordered by
// recording id.
func (s *Store) RunRecordings(ctx context.Context, runID string) ([]overlap.RecordingResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reco_id, union_seconds, overlap_seconds
		FROM run_recordings
		WHERE run_id = ?
		ORDER BY reco_id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run recordings: %w", err)
	}
	defer rows.Close()

	var results []overlap.RecordingResult
	for rows.Next() {
		var r overlap.RecordingResult
		if err := rows.Scan(&r.RecoID, &r.Union, &r.Overlap); err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recordings: %w", err)
	}
	return results, nil
}
