// Package layout builds the reorganized output tree: one directory per
// entry under period/award, holding copies of the qualifying source files
// and a descriptor.
package layout

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"iocccorg/internal/classify"
	"iocccorg/internal/curate"
	"iocccorg/internal/logging"
	"iocccorg/internal/slug"
	"iocccorg/internal/source"
)

// Placement is where an entry landed and which qualifying files it holds.
type Placement struct {
	OutputDir string
	Copied    []string
}

// Materializer copies qualifying files of an entry into the output tree.
type Materializer struct {
	Extensions source.Extensions
}

// NewMaterializer returns a Materializer for the given extensions.
func NewMaterializer(exts source.Extensions) *Materializer {
	if len(exts) == 0 {
		exts = source.DefaultExtensions
	}
	return &Materializer{Extensions: exts}
}

// OutputDir returns root/period/slug(award)/entry.
func OutputDir(root string, key classify.Key, award string) string {
	return filepath.Join(root, key.Period, slug.Normalize(award), key.EntryID)
}

// Materialize creates the entry's output directory and copies every
// qualifying file found under entryDir, keeping its relative path. Files
// that do not qualify are never copied. Existing copies are overwritten.
func (m *Materializer) Materialize(root string, key classify.Key, fields curate.FieldSet, entryDir string) (Placement, error) {
	log := logging.New("layout")
	out := OutputDir(root, key, fields.Award)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return Placement{}, fmt.Errorf("layout: create %s: %w", out, err)
	}

	files, err := source.ListFiles(entryDir, m.Extensions)
	if err != nil {
		return Placement{}, fmt.Errorf("layout: scan entry: %w", err)
	}
	copied := make([]string, 0, len(files))
	for _, src := range files {
		rel, err := filepath.Rel(entryDir, src)
		if err != nil {
			return Placement{}, fmt.Errorf("layout: relative path of %s: %w", src, err)
		}
		if err := source.CopyFile(src, filepath.Join(out, rel)); err != nil {
			return Placement{}, err
		}
		copied = append(copied, filepath.ToSlash(rel))
	}
	log.Debug("materialized", "entry", key.EntryID, "output", out, "copied", len(copied))
	return Placement{OutputDir: out, Copied: copied}, nil
}

// SourceFiles lists the qualifying files now present under outputDir as
// sorted slash-separated relative paths. This includes files left by other
// entries that resolved to the same directory.
func (m *Materializer) SourceFiles(outputDir string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && m.Extensions.Match(p) {
			rel, err := filepath.Rel(outputDir, p)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layout: list %s: %w", outputDir, err)
	}
	sort.Strings(files)
	return files, nil
}
