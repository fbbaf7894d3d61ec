package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"iocccorg/internal/curate"
	"iocccorg/internal/logging"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an ISO 8601 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite catalog at path and creates the schema.
// The parent directory is created if it does not exist.
func Open(path string) (*SqlStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("store: check schema_version table: %w", err)
	}
	if tableCount == 0 {
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("store: create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
			return fmt.Errorf("store: set schema version: %w", err)
		}
		logging.New("store").Info("created catalog schema", "version", schemaVersion)
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil {
		return fmt.Errorf("store: read schema version: %w", err)
	}
	if v != schemaVersion {
		return fmt.Errorf("store: unknown schema version %d", v)
	}
	return nil
}

// Close releases the database handle.
func (s *SqlStore) Close() error { return s.db.Close() }

// RecordRun stores a run and all its entries in one transaction.
func (s *SqlStore) RecordRun(run Run, entries []Entry) (int64, error) {
	if run.StartedAt == "" {
		run.StartedAt = nowUTC()
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		"INSERT INTO runs(started_at, source_root, output_dir, row_count, entry_count) VALUES(?, ?, ?, ?, ?)",
		run.StartedAt, run.SourceRoot, run.OutputDir, run.Rows, run.Entries,
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries(
		run_id, seq, year, award, entry, authors, output_dir, source_file, summary,
		award_source, authors_source, summary_source
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		_, err := stmt.Exec(
			runID, i, e.Period, e.Award, e.EntryID, e.Authors, e.OutputDir, e.SourceFile, e.Summary,
			string(e.Sources[curate.FieldAward]),
			string(e.Sources[curate.FieldAuthors]),
			string(e.Sources[curate.FieldSummary]),
		)
		if err != nil {
			return 0, fmt.Errorf("store: insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	logging.New("store").Info("recorded run", "run", runID, "entries", len(entries))
	return runID, nil
}

// LatestRun returns the most recent run, or nil if the catalog is empty.
func (s *SqlStore) LatestRun() (*Run, error) {
	var r Run
	err := s.db.QueryRow(
		"SELECT id, started_at, source_root, output_dir, row_count, entry_count FROM runs ORDER BY id DESC LIMIT 1",
	).Scan(&r.ID, &r.StartedAt, &r.SourceRoot, &r.OutputDir, &r.Rows, &r.Entries)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: latest run: %w", err)
	}
	return &r, nil
}

// ListEntries returns the entries of a run in discovery order.
func (s *SqlStore) ListEntries(runID int64) ([]Entry, error) {
	rows, err := s.db.Query(`SELECT year, award, entry, authors, output_dir, source_file, summary,
		award_source, authors_source, summary_source
		FROM entries WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: list entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var awardSrc, authorsSrc, summarySrc string
		if err := rows.Scan(&e.Period, &e.Award, &e.EntryID, &e.Authors, &e.OutputDir, &e.SourceFile, &e.Summary,
			&awardSrc, &authorsSrc, &summarySrc); err != nil {
			return nil, fmt.Errorf("store: scan entry: %w", err)
		}
		e.Sources = map[string]curate.Source{
			curate.FieldAward:   curate.Source(awardSrc),
			curate.FieldAuthors: curate.Source(authorsSrc),
			curate.FieldSummary: curate.Source(summarySrc),
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate entries: %w", err)
	}
	return out, nil
}

var _ Store = (*SqlStore)(nil)
