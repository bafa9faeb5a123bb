// Package runlog keeps a small sqlite history of attribution runs. The
// engine itself is stateless between runs; the log exists so operators can
// watch how often each failure class occurs instead of a single pass/fail.
package runlog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Log is an open run log.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the run log at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create run log schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends one run to the log.
func (l *Log) Record(report *model.Report) error {
	_, err := l.db.Exec(`
		INSERT INTO runs (id, page, started_at, window_start, window_end,
		                  archived, resolved, no_match, multiple_match, notified, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.Page,
		report.StartedAt.UTC().Format(time.RFC3339),
		report.Window.Start.UTC().Format(time.RFC3339),
		report.Window.End.UTC().Format(time.RFC3339),
		report.Counts.Archived,
		report.Counts.Resolved,
		report.Counts.NoMatch,
		report.Counts.MultipleMatch,
		report.Counts.Notified,
		report.Counts.Skipped,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", report.RunID, err)
	}
	return nil
}

// Stats aggregates outcome counters across recorded runs.
type Stats struct {
	Runs          int
	Archived      int
	Resolved      int
	NoMatch       int
	MultipleMatch int
	Notified      int
	Skipped       int
}

// ResolvedRate returns the fraction of archived threads attributed.
func (s Stats) ResolvedRate() float64 {
	if s.Archived == 0 {
		return 0
	}
	return float64(s.Resolved) / float64(s.Archived)
}

// Stats aggregates the most recent limit runs; limit <= 0 means all.
func (l *Log) Stats(limit int) (Stats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(archived), 0),
		       COALESCE(SUM(resolved), 0),
		       COALESCE(SUM(no_match), 0),
		       COALESCE(SUM(multiple_match), 0),
		       COALESCE(SUM(notified), 0),
		       COALESCE(SUM(skipped), 0)
		FROM runs`
	args := []any{}
	if limit > 0 {
		query = `
		SELECT COUNT(*),
		       COALESCE(SUM(archived), 0),
		       COALESCE(SUM(resolved), 0),
		       COALESCE(SUM(no_match), 0),
		       COALESCE(SUM(multiple_match), 0),
		       COALESCE(SUM(notified), 0),
		       COALESCE(SUM(skipped), 0)
		FROM (SELECT * FROM runs ORDER BY started_at DESC LIMIT ?)`
		args = append(args, limit)
	}

	var s Stats
	err := l.db.QueryRow(query, args...).Scan(
		&s.Runs, &s.Archived, &s.Resolved, &s.NoMatch, &s.MultipleMatch, &s.Notified, &s.Skipped)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate run log: %w", err)
	}
	return s, nil
}

// RunSummary is one row of the run log.
type RunSummary struct {
	ID        string
	Page      string
	StartedAt time.Time
	Counts    model.ReportCounts
}

// Recent returns the latest n runs, newest first.
func (l *Log) Recent(n int) ([]RunSummary, error) {
	rows, err := l.db.Query(`
		SELECT id, page, started_at, archived, resolved, no_match, multiple_match, notified, skipped
		FROM runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query run log: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r  RunSummary
			ts string
		)
		if err := rows.Scan(&r.ID, &r.Page, &ts,
			&r.Counts.Archived, &r.Counts.Resolved, &r.Counts.NoMatch,
			&r.Counts.MultipleMatch, &r.Counts.Notified, &r.Counts.Skipped); err != nil {
			return nil, fmt.Errorf("scan run log row: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("parse run %s timestamp: %w", r.ID, err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}
