package manifest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregator_WriteAndRead(t *testing.T) {
	var a Aggregator
	a.Add(Row{Period: "2019", Award: "Best one-liner", EntryID: "bellard", Authors: "unknown", OutputDir: "/out/2019/Best_one-liner/bellard"})
	a.Add(Row{Period: "2019", Award: "Best one-liner", EntryID: "bellard", Authors: "unknown", OutputDir: "/out/2019/Best_one-liner/bellard"})
	a.Add(Row{Period: "1984", Award: "Grand Prize", EntryID: "mullender", Authors: "A, B", OutputDir: "/out/1984/Grand_Prize/mullender"})

	if a.Len() != 3 {
		t.Errorf("Len = %d, want 3 (rows are per file, not per entry)", a.Len())
	}
	if a.Entries() != 2 {
		t.Errorf("Entries = %d, want 2", a.Entries())
	}

	path := filepath.Join(t.TempDir(), "nested", FileName)
	if err := a.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(a.Rows(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_Format(t *testing.T) {
	var buf bytes.Buffer
	rows := []Row{{Period: "2019", Award: "Best one-liner", EntryID: "bellard", Authors: "A, B", OutputDir: "/out/x"}}
	if err := Encode(&buf, rows); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "year,award,entry,authors,output_dir\n" +
		"2019,Best one-liner,bellard,\"A, B\",/out/x\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode =\n%q\nwant\n%q", got, want)
	}
}

func TestEncode_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := buf.String(); got != "year,award,entry,authors,output_dir\n" {
		t.Errorf("Encode = %q", got)
	}
}

func TestRows_ReturnsCopy(t *testing.T) {
	var a Aggregator
	a.Add(Row{EntryID: "x"})
	rows := a.Rows()
	rows[0].EntryID = "mutated"
	if a.Rows()[0].EntryID != "x" {
		t.Error("Rows should return a copy")
	}
}

func TestRead_BadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("a,b,c,d,e\n1,2,3,4,5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); !errors.Is(err, ErrBadHeader) {
		t.Errorf("err = %v, want ErrBadHeader", err)
	}
}
