package organize

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"iocccorg/internal/classify"
	"iocccorg/internal/curate"
	"iocccorg/internal/extract"
	"iocccorg/internal/layout"
	"iocccorg/internal/logging"
	"iocccorg/internal/manifest"
	"iocccorg/internal/probe"
	"iocccorg/internal/source"
	"iocccorg/internal/store"
)

// Run executes the pipeline once. Setup failures (missing local clone,
// failed initial clone, existing output without Force) abort before any
// file is processed. Files whose metadata cannot be inferred are still
// organized under "unknown" and do not fail the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.New("organize")

	hints, err := probe.Compile(opts.Hints.Merge(probe.DefaultHints()))
	if err != nil {
		return nil, fmt.Errorf("organize: %w", err)
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = source.DefaultExtensions
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = source.NewFetcher()
	}
	root, err := fetcher.FetchOrReuse(ctx, opts.Source)
	if err != nil {
		return nil, err
	}

	outDir, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return nil, fmt.Errorf("organize: resolve outdir: %w", err)
	}
	if within(resolvePath(outDir), root) {
		return nil, fmt.Errorf("%w: %s under %s", ErrOutputInsideSource, outDir, root)
	}
	if within(root, resolvePath(outDir)) {
		return nil, fmt.Errorf("%w: %s under %s", ErrSourceInsideOutput, root, outDir)
	}
	if err := PrepareOutput(outDir, opts.Force); err != nil {
		return nil, err
	}

	files, err := source.ListFiles(root, exts)
	if err != nil {
		return nil, fmt.Errorf("organize: enumerate %s: %w", root, err)
	}
	log.Info("organizing", "source", root, "output", outDir, "files", len(files))

	p := &pass{
		log:     log,
		root:    root,
		outDir:  outDir,
		side:    extract.NewSideFileExtractor(hints),
		header:  extract.NewHeaderExtractor(hints),
		mat:     layout.NewMaterializer(exts),
		stats:   curate.NewStats(),
		catalog: opts.Catalog != "",
	}
	for _, f := range files {
		if err := p.file(f); err != nil {
			return nil, err
		}
	}

	res := &Result{
		SourceRoot:   root,
		OutputDir:    outDir,
		ManifestPath: filepath.Join(outDir, manifest.FileName),
		Rows:         p.rows.Rows(),
		Entries:      p.rows.Entries(),
		Completeness: p.stats,
	}
	if err := p.rows.Write(res.ManifestPath); err != nil {
		return nil, err
	}

	if opts.Catalog != "" {
		id, err := recordCatalog(opts.Catalog, res, p.entries)
		if err != nil {
			return nil, err
		}
		res.CatalogRunID = id
	}

	log.Info("done", "rows", len(res.Rows), "entries", res.Entries, "manifest", res.ManifestPath)
	return res, nil
}

// pass holds the state of one run. Only the manifest rows, statistics and
// catalog entries carry over between files.
type pass struct {
	log     *slog.Logger
	root    string
	outDir  string
	side    curate.Extractor
	header  curate.Extractor
	mat     *layout.Materializer
	rows    manifest.Aggregator
	stats   curate.Stats
	catalog bool
	entries []store.Entry
}

// file classifies and materializes one qualifying file. Entries with
// several files are re-extracted and their descriptor rewritten once per file.
func (p *pass) file(path string) error {
	log := p.log
	key := classify.Classify(path, p.root)
	entryDir := filepath.Dir(path)

	side, err := p.side.Extract(entryDir)
	if err != nil {
		log.Warn("side-file extraction failed", "dir", entryDir, "error", err)
	}
	header, err := p.header.Extract(path)
	if err != nil {
		log.Warn("header extraction failed", "file", path, "error", err)
	}
	resolved := curate.Merge(side, header, key.EntryID, key.Period)
	fields := resolved.Values()

	placed, err := p.mat.Materialize(p.outDir, key, fields, entryDir)
	if err != nil {
		return fmt.Errorf("organize: materialize %s: %w", path, err)
	}
	files, err := p.mat.SourceFiles(placed.OutputDir)
	if err != nil {
		return fmt.Errorf("organize: %w", err)
	}
	desc := layout.Descriptor{
		Year:         key.Period,
		Entry:        key.EntryID,
		Award:        fields.Award,
		Authors:      fields.Authors,
		OriginalPath: resolvePath(entryDir),
		SourceFiles:  files,
		Summary:      fields.Summary,
		LLMContext:   layout.Advisory,
	}
	if err := layout.WriteDescriptor(placed.OutputDir, desc); err != nil {
		return fmt.Errorf("organize: %w", err)
	}

	row := manifest.Row{
		Period:    key.Period,
		Award:     fields.Award,
		EntryID:   key.EntryID,
		Authors:   fields.Authors,
		OutputDir: placed.OutputDir,
	}
	p.rows.Add(row)
	p.stats.Add(resolved)
	if p.catalog {
		p.entries = append(p.entries, store.NewEntry(row, path, resolved))
	}
	log.Debug("classified", "file", path, "year", key.Period, "entry", key.EntryID,
		"award", fields.Award, "award_source", resolved.Award.Source, "copied", len(placed.Copied))
	return nil
}

// resolvePath returns p with symlinks evaluated, or p itself when that fails.
func resolvePath(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	return p
}

func recordCatalog(path string, res *Result, entries []store.Entry) (int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, fmt.Errorf("organize: open catalog: %w", err)
	}
	defer st.Close()
	id, err := st.RecordRun(store.Run{
		SourceRoot: res.SourceRoot,
		OutputDir:  res.OutputDir,
		Rows:       len(res.Rows),
		Entries:    res.Entries,
	}, entries)
	if err != nil {
		return 0, fmt.Errorf("organize: record catalog: %w", err)
	}
	return id, nil
}
