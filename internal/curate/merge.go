package curate

import "fmt"

// candidate is one value offered for a field, in precedence order.
type candidate struct {
	value  string
	source Source
}

// resolve returns the first non-empty candidate.
func resolve(candidates ...candidate) Field {
	for _, c := range candidates {
		if c.value != "" {
			return Field{Value: c.value, Source: c.source}
		}
	}
	return Field{}
}

// DefaultSummary is the summary used when no source describes an entry.
func DefaultSummary(entryID, period string) string {
	return fmt.Sprintf("IOCCC entry %s (%s)", entryID, period)
}

// Merge combines side-file and header results. For each field the side-file
// value wins over the header value, and a fixed default is used when neither
// source has one. Conventional documentation files are treated as more
// authoritative than comments inside the source.
func Merge(side, header FieldSet, entryID, period string) Resolved {
	return Resolved{
		Award: resolve(
			candidate{side.Award, SourceSideFile},
			candidate{header.Award, SourceHeader},
			candidate{Unknown, SourceDefault},
		),
		Authors: resolve(
			candidate{side.Authors, SourceSideFile},
			candidate{header.Authors, SourceHeader},
			candidate{Unknown, SourceDefault},
		),
		Summary: resolve(
			candidate{side.Summary, SourceSideFile},
			candidate{header.Summary, SourceHeader},
			candidate{DefaultSummary(entryID, period), SourceDefault},
		),
	}
}
