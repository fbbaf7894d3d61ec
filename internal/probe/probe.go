// Package probe extracts classification hints from free-form text using
// ordered lists of regular expressions. The order of each list is the
// tie-break policy: the first pattern that matches wins.
package probe

import (
	"fmt"
	"regexp"
	"strings"
)

// Patterns is an ordered list of compiled hint patterns for one field.
type Patterns []*regexp.Regexp

// Probe tries each pattern in order and returns the first match. When the
// matching pattern has a capture group the first group is returned, otherwise
// the whole match. The result is trimmed; ok reports whether any pattern matched.
func Probe(text string, patterns Patterns) (value string, ok bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if re.NumSubexp() > 0 {
			return strings.TrimSpace(m[1]), true
		}
		return strings.TrimSpace(m[0]), true
	}
	return "", false
}

// HintTables holds the raw pattern lists for the three classification fields.
type HintTables struct {
	Award   []string `json:"award,omitempty" yaml:"award,omitempty"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Summary []string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// DefaultHints returns the built-in hint tables. Structured "label: value"
// patterns come before free-text ones.
func DefaultHints() HintTables {
	return HintTables{
		Award: []string{
			`(?i)\baward\b\s*:\s*(.+)`,
			`(?i)\bcategory\b\s*:\s*(.+)`,
			`(?i)\branking\b\s*:\s*(.+)`,
			`(?i)\bprize\b\s*:\s*(.+)`,
			`(?i)\b(honou?rable mention)\b`,
			`(?i)\b(?:best|most|worst)\b[^\n]+`,
		},
		Authors: []string{
			`(?i)\bauthors?\b\s*:\s*(.+)`,
			`(?i)\bby\s+([^\n]+)`,
		},
		Summary: []string{
			`(?i)\bsummary\b\s*:\s*(.+)`,
			`(?i)\bdescription\b\s*:\s*(.+)`,
			`(?i)\bwhat it does\b\s*:\s*(.+)`,
		},
	}
}

// Merge returns h with every empty category taken from fallback. A non-empty
// category in h replaces the fallback list wholesale.
func (h HintTables) Merge(fallback HintTables) HintTables {
	if len(h.Award) == 0 {
		h.Award = fallback.Award
	}
	if len(h.Authors) == 0 {
		h.Authors = fallback.Authors
	}
	if len(h.Summary) == 0 {
		h.Summary = fallback.Summary
	}
	return h
}

// Hints is the compiled form of HintTables.
type Hints struct {
	Award   Patterns
	Authors Patterns
	Summary Patterns
}

// Compile compiles every pattern, preserving list order.
func Compile(h HintTables) (Hints, error) {
	var out Hints
	var err error
	if out.Award, err = compileList("award", h.Award); err != nil {
		return Hints{}, err
	}
	if out.Authors, err = compileList("authors", h.Authors); err != nil {
		return Hints{}, err
	}
	if out.Summary, err = compileList("summary", h.Summary); err != nil {
		return Hints{}, err
	}
	return out, nil
}

// MustCompile is like Compile but panics on error. Intended for the built-in tables.
func MustCompile(h HintTables) Hints {
	out, err := Compile(h)
	if err != nil {
		panic(err)
	}
	return out
}

func compileList(field string, exprs []string) (Patterns, error) {
	out := make(Patterns, 0, len(exprs))
	for i, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("probe: compile %s hint #%d %q: %w", field, i, expr, err)
		}
		out = append(out, re)
	}
	return out, nil
}
