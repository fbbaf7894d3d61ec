// Package manifest accumulates one row per processed source file and writes
// the run-level CSV index.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

// FileName is the manifest written at the root of the output tree.
const FileName = "manifest.csv"

// Header is the fixed first row of the manifest.
var Header = []string{"year", "award", "entry", "authors", "output_dir"}

// Row describes one processed source file.
type Row struct {
	Period    string `json:"year"`
	Award     string `json:"award"`
	EntryID   string `json:"entry"`
	Authors   string `json:"authors"`
	OutputDir string `json:"output_dir"`
}

func (r Row) record() []string {
	return []string{r.Period, r.Award, r.EntryID, r.Authors, r.OutputDir}
}

// Aggregator collects rows in discovery order. Rows are not deduplicated:
// an entry with N qualifying files contributes N rows.
type Aggregator struct {
	rows []Row
}

// Add appends a row.
func (a *Aggregator) Add(r Row) {
	a.rows = append(a.rows, r)
}

// Rows returns a copy of the accumulated rows.
func (a *Aggregator) Rows() []Row {
	return append([]Row(nil), a.rows...)
}

// Len returns the number of accumulated rows.
func (a *Aggregator) Len() int { return len(a.rows) }

// Entries returns the number of distinct output directories.
func (a *Aggregator) Entries() int {
	seen := make(map[string]bool, len(a.rows))
	for _, r := range a.rows {
		seen[r.OutputDir] = true
	}
	return len(seen)
}

// Write replaces path with the header and all rows.
func (a *Aggregator) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("manifest: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("manifest: create %s: %w", path, err)
	}
	if err := Encode(f, a.rows); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("manifest: close %s: %w", path, err)
	}
	return nil
}

// Encode writes the header and rows as CSV.
func Encode(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("manifest: write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("manifest: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("manifest: flush: %w", err)
	}
	return nil
}

// ErrBadHeader is returned by Read when the first row is not Header.
var ErrBadHeader = errors.New("manifest: unexpected header")

// Read loads a manifest written by Write.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(Header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	if len(records) == 0 || !slices.Equal(records[0], Header) {
		return nil, fmt.Errorf("%w in %s", ErrBadHeader, path)
	}
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{Period: rec[0], Award: rec[1], EntryID: rec[2], Authors: rec[3], OutputDir: rec[4]})
	}
	return rows, nil
}
