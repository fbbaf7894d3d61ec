package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"iocccorg/internal/probe"
)

// LoadFromPath reads a config file (YAML or JSON) and returns the parsed Workspace.
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by content.
// Relative paths in the file are resolved against the file's directory.
func LoadFromPath(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workspace: read: %w", err)
	}
	w, err := Load(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	w.resolveRelative(filepath.Dir(path))
	return w, nil
}

// Load parses a workspace from bytes. ext is a format hint; empty = detect from content.
func Load(data []byte, ext string) (*Workspace, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		ext = ".yaml"
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		}
	}

	var w Workspace
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("workspace: parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("workspace: parse yaml: %w", err)
		}
	}
	if err := w.validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

func (w *Workspace) validate() error {
	for _, e := range w.Extensions {
		if !strings.HasPrefix(e, ".") || len(e) < 2 {
			return fmt.Errorf("workspace: extension %q must start with a dot", e)
		}
	}
	if _, err := probe.Compile(w.Hints); err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	return nil
}

func (w *Workspace) resolveRelative(base string) {
	for _, p := range []*string{&w.Source.Path, &w.WorkDir, &w.OutDir, &w.Catalog} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
