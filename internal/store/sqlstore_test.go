package store

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"iocccorg/internal/curate"
	"iocccorg/internal/logging"
	"iocccorg/internal/manifest"
)

func TestSqlStore_RecordAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if r, err := s.LatestRun(); err != nil || r != nil {
		t.Fatalf("LatestRun on empty catalog: got %+v err %v", r, err)
	}

	row := manifest.Row{Period: "2019", Award: "Best one-liner", EntryID: "bellard", Authors: "unknown", OutputDir: "/out/2019/Best_one-liner/bellard"}
	resolved := curate.Merge(curate.FieldSet{}, curate.FieldSet{Award: "Best one-liner"}, "bellard", "2019")
	entries := []Entry{
		NewEntry(row, "/src/2019/bellard/prog.c", resolved),
		NewEntry(row, "/src/2019/bellard/other.c", resolved),
	}

	runID, err := s.RecordRun(Run{SourceRoot: "/src", OutputDir: "/out", Rows: 2, Entries: 1}, entries)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	latest, err := s.LatestRun()
	if err != nil || latest == nil {
		t.Fatalf("LatestRun: got %+v err %v", latest, err)
	}
	if latest.ID != runID || latest.Rows != 2 || latest.Entries != 1 || latest.StartedAt == "" {
		t.Errorf("LatestRun = %+v", latest)
	}

	got, err := s.ListEntries(runID)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("ListEntries mismatch (-want +got):\n%s", diff)
	}
	if got[0].Sources[curate.FieldAward] != curate.SourceHeader {
		t.Errorf("award source = %q, want header", got[0].Sources[curate.FieldAward])
	}
}

func TestSqlStore_ReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first, err := s.RecordRun(Run{SourceRoot: "/a", OutputDir: "/o"}, nil)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	second, err := s2.RecordRun(Run{SourceRoot: "/b", OutputDir: "/o"}, nil)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if second <= first {
		t.Errorf("run ids not increasing: %d then %d", first, second)
	}
	latest, err := s2.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest.SourceRoot != "/b" {
		t.Errorf("LatestRun.SourceRoot = %q, want /b", latest.SourceRoot)
	}
	entries, err := s2.ListEntries(latest.ID)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestSqlStore_LogsSchemaAndRuns(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(slog.LevelInfo, logging.FormatText, &buf)
	t.Cleanup(func() { logging.Init(slog.LevelInfo, logging.FormatText) })

	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, err := s.RecordRun(Run{SourceRoot: "/src", OutputDir: "/out"}, nil); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"component=store", "created catalog schema", "recorded run", "run=1", "entries=0"} {
		if !strings.Contains(output, want) {
			t.Errorf("log missing %q: %s", want, output)
		}
	}
}
