// Package curate holds the classification record types shared by the
// extractors and the output layer, and the precedence rules that combine
// partial results from several sources into one record.
//
// Nothing in this package touches the filesystem, so merge policy can be
// tested without fixtures.
package curate

// Field names used in records, descriptors and completeness reports.
const (
	FieldAward   = "award"
	FieldAuthors = "authors"
	FieldSummary = "summary"
)

// Unknown is the default for fields that no source supplied.
const Unknown = "unknown"

// FieldSet is a partial classification produced by one extractor.
// An empty string means the field was not found.
type FieldSet struct {
	Award   string `json:"award,omitempty"`
	Authors string `json:"authors,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Complete reports whether all three fields are present.
func (f FieldSet) Complete() bool {
	return f.Award != "" && f.Authors != "" && f.Summary != ""
}

// Fill sets every empty field of f from other and returns the result.
// Fields already present in f are kept.
func (f FieldSet) Fill(other FieldSet) FieldSet {
	if f.Award == "" {
		f.Award = other.Award
	}
	if f.Authors == "" {
		f.Authors = other.Authors
	}
	if f.Summary == "" {
		f.Summary = other.Summary
	}
	return f
}

// Source identifies where a resolved field value came from.
type Source string

const (
	SourceSideFile Source = "side"
	SourceHeader   Source = "header"
	SourceDefault  Source = "default"
)

// Field is a resolved value together with the source that supplied it.
type Field struct {
	Value  string `json:"value"`
	Source Source `json:"source"`
}

// Resolved is a FieldSet with every field filled.
type Resolved struct {
	Award   Field `json:"award"`
	Authors Field `json:"authors"`
	Summary Field `json:"summary"`
}

// Values flattens r back into a FieldSet.
func (r Resolved) Values() FieldSet {
	return FieldSet{Award: r.Award.Value, Authors: r.Authors.Value, Summary: r.Summary.Value}
}
