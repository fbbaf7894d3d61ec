package store

// schemaVersion is the catalog schema this build writes.
const schemaVersion = 1

var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT NOT NULL,
	source_root TEXT NOT NULL,
	output_dir  TEXT NOT NULL,
	row_count   INTEGER NOT NULL DEFAULT 0,
	entry_count INTEGER NOT NULL DEFAULT 0
);

-- One row per processed source file, in discovery order (seq).
CREATE TABLE IF NOT EXISTS entries (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         INTEGER NOT NULL REFERENCES runs(id),
	seq            INTEGER NOT NULL,
	year           TEXT NOT NULL,
	award          TEXT NOT NULL,
	entry          TEXT NOT NULL,
	authors        TEXT NOT NULL,
	output_dir     TEXT NOT NULL,
	source_file    TEXT NOT NULL,
	summary        TEXT NOT NULL,
	award_source   TEXT NOT NULL,
	authors_source TEXT NOT NULL,
	summary_source TEXT NOT NULL,
	UNIQUE(run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_entries_year ON entries(year);
CREATE INDEX IF NOT EXISTS idx_entries_award ON entries(award);
`
