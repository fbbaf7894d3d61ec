// Package store keeps an optional SQLite catalog of organize runs, so
// classification results can be queried after the output tree is rebuilt.
package store

import (
	"iocccorg/internal/curate"
	"iocccorg/internal/manifest"
)

// Run is one pipeline pass.
type Run struct {
	ID         int64
	StartedAt  string
	SourceRoot string
	OutputDir  string
	Rows       int
	Entries    int
}

// Entry is one manifest row plus the resolved metadata behind it.
type Entry struct {
	manifest.Row
	SourceFile string
	Summary    string
	Sources    map[string]curate.Source
}

// NewEntry builds a catalog entry from a manifest row and its resolved fields.
func NewEntry(row manifest.Row, sourceFile string, r curate.Resolved) Entry {
	return Entry{
		Row:        row,
		SourceFile: sourceFile,
		Summary:    r.Summary.Value,
		Sources: map[string]curate.Source{
			curate.FieldAward:   r.Award.Source,
			curate.FieldAuthors: r.Authors.Source,
			curate.FieldSummary: r.Summary.Source,
		},
	}
}

// Store is the catalog facade used by the pipeline and the report command.
type Store interface {
	RecordRun(run Run, entries []Entry) (runID int64, err error)
	LatestRun() (*Run, error)
	ListEntries(runID int64) ([]Entry, error)
	Close() error
}
