package extract

import (
	"errors"
	"fmt"
	"path/filepath"

	"iocccorg/internal/curate"
	"iocccorg/internal/probe"
	"iocccorg/internal/source"
)

// DefaultSideFileLimit bounds how much of each side file is read.
const DefaultSideFileLimit = 512_000

// SideFiles is the ordered list of conventional documentation files probed in
// an entry directory. Earlier files win per field.
var SideFiles = []string{
	"README", "README.txt", "README.md", "readme", "readme.txt", "readme.md",
	"index.html", "index.htm", "remarks", "remarks.txt", "overview", "overview.txt",
	"ABOUT", "about.txt", "Makefile", "makefile", "info", "info.txt",
}

// SideFileExtractor probes the documentation files next to a source file.
type SideFileExtractor struct {
	Hints probe.Hints
	Names []string
	Limit int64
}

// NewSideFileExtractor returns a SideFileExtractor over SideFiles.
func NewSideFileExtractor(h probe.Hints) *SideFileExtractor {
	return &SideFileExtractor{Hints: h, Names: SideFiles, Limit: DefaultSideFileLimit}
}

func (e *SideFileExtractor) Type() string { return "side-file" }

// Extract scans the side files of entryDir in list order. A field is taken
// from the first file that yields it; scanning stops once all three are set.
// A side file that exists but cannot be read is skipped, and its error is
// returned alongside whatever the other files supplied.
func (e *SideFileExtractor) Extract(entryDir string) (curate.FieldSet, error) {
	limit := e.Limit
	if limit <= 0 {
		limit = DefaultSideFileLimit
	}
	names := e.Names
	if names == nil {
		names = SideFiles
	}

	var merged curate.FieldSet
	var errs []error
	for _, name := range names {
		p := filepath.Join(entryDir, name)
		if !source.IsFile(p) {
			continue
		}
		text, err := source.ReadText(p, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("extract: read side file %s: %w", p, err))
			continue
		}
		var found curate.FieldSet
		if merged.Award == "" {
			found.Award, _ = probe.Probe(text, e.Hints.Award)
		}
		if merged.Authors == "" {
			found.Authors, _ = probe.Probe(text, e.Hints.Authors)
		}
		if merged.Summary == "" {
			found.Summary, _ = probe.Probe(text, e.Hints.Summary)
		}
		merged = merged.Fill(found)
		if merged.Complete() {
			break
		}
	}
	return merged, errors.Join(errs...)
}

var (
	_ curate.Extractor = (*HeaderExtractor)(nil)
	_ curate.Extractor = (*SideFileExtractor)(nil)
)
