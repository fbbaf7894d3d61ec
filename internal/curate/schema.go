package curate

// CompletenessResult scores one resolved record: a field counts as present
// when some source supplied it rather than the fallback default.
type CompletenessResult struct {
	Score   float64  `json:"score"`
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// CheckCompleteness evaluates which fields of r were inferred from evidence.
func CheckCompleteness(r Resolved) CompletenessResult {
	var result CompletenessResult
	fields := []struct {
		name string
		f    Field
	}{
		{FieldAward, r.Award},
		{FieldAuthors, r.Authors},
		{FieldSummary, r.Summary},
	}
	for _, nf := range fields {
		if nf.f.Source == SourceDefault || nf.f.Value == "" {
			result.Missing = append(result.Missing, nf.name)
			continue
		}
		result.Present = append(result.Present, nf.name)
	}
	result.Score = float64(len(result.Present)) / float64(len(fields))
	return result
}

// Stats accumulates completeness over a run.
type Stats struct {
	Records  int            `json:"records"`
	Found    map[string]int `json:"found"`
	BySource map[Source]int `json:"by_source"`
}

// NewStats returns empty run statistics.
func NewStats() Stats {
	return Stats{Found: make(map[string]int), BySource: make(map[Source]int)}
}

// Add records one resolved record.
func (s *Stats) Add(r Resolved) {
	if s.Found == nil {
		s.Found = make(map[string]int)
	}
	if s.BySource == nil {
		s.BySource = make(map[Source]int)
	}
	s.Records++
	for _, name := range CheckCompleteness(r).Present {
		s.Found[name]++
	}
	for _, f := range []Field{r.Award, r.Authors, r.Summary} {
		s.BySource[f.Source]++
	}
}

// Coverage returns the fraction of records whose named field was inferred.
func (s Stats) Coverage(field string) float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Found[field]) / float64(s.Records)
}
