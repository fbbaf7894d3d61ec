// Package organize runs the reorganization pipeline: acquire the source
// tree, classify every qualifying file, and write the output tree, the
// per-entry descriptors and the manifest.
package organize

import (
	"iocccorg/internal/curate"
	"iocccorg/internal/manifest"
	"iocccorg/internal/probe"
	"iocccorg/internal/source"
)

// Options configures one run.
type Options struct {
	Source     source.Request
	OutDir     string
	Force      bool
	Extensions source.Extensions
	Hints      probe.HintTables // empty categories fall back to probe.DefaultHints
	Catalog    string           // SQLite catalog path; empty disables it

	// Fetcher acquires the source tree. Nil means source.NewFetcher().
	Fetcher *source.Fetcher
}

// Result describes a finished run.
type Result struct {
	SourceRoot   string
	OutputDir    string
	ManifestPath string
	Rows         []manifest.Row
	Entries      int
	Completeness curate.Stats
	CatalogRunID int64 // 0 when no catalog was written
}
