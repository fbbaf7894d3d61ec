package probe

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProbe_FirstPatternWins(t *testing.T) {
	patterns := Patterns{
		regexp.MustCompile(`short`),
		regexp.MustCompile(`a much longer (and more specific) match`),
	}
	text := "this is a much longer and more specific match, and it is short"
	got, ok := Probe(text, patterns)
	if !ok {
		t.Fatal("Probe returned no match")
	}
	if got != "short" {
		t.Errorf("Probe = %q, want %q (first pattern must win)", got, "short")
	}
}

func TestProbe_CaptureVersusFullMatch(t *testing.T) {
	capture := Patterns{regexp.MustCompile(`(?i)award\s*:\s*(.+)`)}
	if got, _ := Probe("Award:   Grand Prize  ", capture); got != "Grand Prize" {
		t.Errorf("capture group: got %q, want %q", got, "Grand Prize")
	}

	full := Patterns{regexp.MustCompile(`(?i)\b(?:best|most|worst)\b[^\n]+`)}
	if got, _ := Probe("Most over-engineered\nnext line", full); got != "Most over-engineered" {
		t.Errorf("full match: got %q, want %q", got, "Most over-engineered")
	}
}

func TestProbe_NoMatch(t *testing.T) {
	got, ok := Probe("nothing to see", MustCompile(DefaultHints()).Summary)
	if ok || got != "" {
		t.Errorf("Probe = (%q, %v), want no match", got, ok)
	}
	if _, ok := Probe("anything", nil); ok {
		t.Error("Probe with no patterns should not match")
	}
}

func TestDefaultHints_Categories(t *testing.T) {
	hints := MustCompile(DefaultHints())
	tests := []struct {
		name     string
		patterns Patterns
		text     string
		want     string
	}{
		{"award label", hints.Award, "Award: Best one-liner", "Best one-liner"},
		{"category label", hints.Award, "category: Most useful obfuscation", "Most useful obfuscation"},
		{"structured before free text", hints.Award, "Best of show\nRanking: 1st place", "1st place"},
		{"honorable mention", hints.Award, "This got an Honourable Mention in 1990", "Honourable Mention"},
		{"free text award", hints.Award, "worst abuse of the C preprocessor", "worst abuse of the C preprocessor"},
		{"authors label", hints.Authors, "Authors: A, B", "A, B"},
		{"author singular", hints.Authors, "author: Fabrice Bellard", "Fabrice Bellard"},
		{"label beats by", hints.Authors, "written by someone\nAuthor: Real Name", "Real Name"},
		{"by phrase", hints.Authors, "An entry by Jane Doe", "Jane Doe"},
		{"summary label", hints.Summary, "Summary: prints pi", "prints pi"},
		{"what it does", hints.Summary, "What it does: computes primes", "computes primes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Probe(tc.text, tc.patterns)
			if !ok {
				t.Fatalf("Probe(%q) found nothing", tc.text)
			}
			if got != tc.want {
				t.Errorf("Probe(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestHintTables_Merge(t *testing.T) {
	override := HintTables{Authors: []string{`(?i)credits\s*:\s*(.+)`}}
	got := override.Merge(DefaultHints())
	want := DefaultHints()
	want.Authors = override.Authors
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile(HintTables{Summary: []string{`(unclosed`}})
	if err == nil {
		t.Fatal("Compile should fail on an invalid pattern")
	}
}

func TestCompile_PreservesOrder(t *testing.T) {
	tables := DefaultHints()
	hints := MustCompile(tables)
	for i, re := range hints.Award {
		if re.String() != tables.Award[i] {
			t.Errorf("Award[%d] = %q, want %q", i, re.String(), tables.Award[i])
		}
	}
}
