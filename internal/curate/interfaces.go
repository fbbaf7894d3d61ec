package curate

// Extractor probes one location for classification hints.
// Implementations are rule-based; a miss is an empty FieldSet, not an error.
type Extractor interface {
	Type() string
	Extract(path string) (FieldSet, error)
}
