// Package extract probes entry files for award, authors and summary hints.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"iocccorg/internal/curate"
	"iocccorg/internal/probe"
	"iocccorg/internal/source"
)

const (
	// DefaultHeaderLimit bounds how much of a source file is read.
	DefaultHeaderLimit = 64 << 10
	// headerFallbackChars is used when the file has no block comment.
	headerFallbackChars = 2000
	// summaryCap limits a two-line synthesized summary.
	summaryCap = 200
	// decoration is stripped from both ends of comment lines.
	decoration = "/* #\t-"
)

var reBlockComment = regexp.MustCompile(`(?s)/\*(.*?)\*/`)

// HeaderExtractor reads the leading block comment of a source file.
type HeaderExtractor struct {
	Hints probe.Hints
	Limit int64
}

// NewHeaderExtractor returns a HeaderExtractor with the default read limit.
func NewHeaderExtractor(h probe.Hints) *HeaderExtractor {
	return &HeaderExtractor{Hints: h, Limit: DefaultHeaderLimit}
}

func (e *HeaderExtractor) Type() string { return "header" }

// Extract probes the first block comment of path, or the first 2000
// characters when there is none. An unreadable file yields an empty
// FieldSet together with the read error.
func (e *HeaderExtractor) Extract(path string) (curate.FieldSet, error) {
	limit := e.Limit
	if limit <= 0 {
		limit = DefaultHeaderLimit
	}
	text, err := source.ReadText(path, limit)
	if err != nil {
		return curate.FieldSet{}, fmt.Errorf("extract: read header of %s: %w", path, err)
	}
	span := headerSpan(text)

	var out curate.FieldSet
	out.Award, _ = probe.Probe(span, e.Hints.Award)
	out.Authors, _ = probe.Probe(span, e.Hints.Authors)
	out.Summary, _ = probe.Probe(span, e.Hints.Summary)
	if out.Summary == "" {
		out.Summary = synthesizeSummary(span)
	}
	return out, nil
}

// headerSpan returns the body of the first /* ... */ comment, without its
// delimiters, or a bounded prefix of text.
func headerSpan(text string) string {
	if m := reBlockComment.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	runes := []rune(text)
	if len(runes) > headerFallbackChars {
		runes = runes[:headerFallbackChars]
	}
	return string(runes)
}

// synthesizeSummary joins the first one or two descriptive lines of span.
func synthesizeSummary(span string) string {
	var lines []string
	for _, ln := range strings.Split(span, "\n") {
		ln = strings.Trim(ln, decoration+"\r")
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
		if len(lines) == 2 {
			break
		}
	}
	if len(lines) == 0 {
		return ""
	}
	summary := lines[0]
	if len(lines) > 1 {
		if joined := summary + " " + lines[1]; utf8.RuneCountInString(joined) < summaryCap {
			summary = strings.TrimSpace(joined)
		}
	}
	return summary
}
