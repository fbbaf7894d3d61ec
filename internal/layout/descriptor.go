package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DescriptorName is the side-car file written into every entry directory.
const DescriptorName = "descriptor.json"

// Advisory orients an automated reader that knows nothing about the contest.
// It is identical for every entry.
const Advisory = "This directory contains only the C source files of an IOCCC winning entry. " +
	"The code is intentionally obfuscated or unusually constructed. " +
	"When analyzing, first read descriptor.json for year, award, and authors. " +
	"Focus on top-of-file comments, macros, and unusual control flow to infer purpose. " +
	"Avoid relying on removed README/Makefiles from the original repo."

// Descriptor is the per-entry metadata record.
type Descriptor struct {
	Year         string   `json:"year"`
	Entry        string   `json:"entry"`
	Award        string   `json:"award"`
	Authors      string   `json:"authors"`
	OriginalPath string   `json:"original_path"`
	SourceFiles  []string `json:"source_files"`
	Summary      string   `json:"summary"`
	LLMContext   string   `json:"LLM_context"`
}

// WriteDescriptor replaces outputDir/descriptor.json with d.
func WriteDescriptor(outputDir string, d Descriptor) error {
	if d.SourceFiles == nil {
		d.SourceFiles = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("layout: marshal descriptor for %q: %w", d.Entry, err)
	}
	path := filepath.Join(outputDir, DescriptorName)
	if err := os.WriteFile(path, bytes.TrimRight(buf.Bytes(), "\n"), 0o644); err != nil {
		return fmt.Errorf("layout: write %s: %w", path, err)
	}
	return nil
}

// ReadDescriptor loads the descriptor stored in outputDir.
func ReadDescriptor(outputDir string) (*Descriptor, error) {
	path := filepath.Join(outputDir, DescriptorName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("layout: unmarshal %s: %w", path, err)
	}
	return &d, nil
}
