// Package workspace loads the optional run configuration file.
package workspace

import (
	"iocccorg/internal/probe"
)

// Source names the winners repository to process.
type Source struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`       // remote git URL
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"` // checked out after clone or refresh
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`     // local clone; overrides URL
}

// Workspace is the run configuration. Zero values mean "use the default".
type Workspace struct {
	Source     Source           `json:"source" yaml:"source"`
	WorkDir    string           `json:"workdir,omitempty" yaml:"workdir,omitempty"`
	OutDir     string           `json:"outdir,omitempty" yaml:"outdir,omitempty"`
	Force      bool             `json:"force,omitempty" yaml:"force,omitempty"`
	Extensions []string         `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Catalog    string           `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Hints      probe.HintTables `json:"hints" yaml:"hints"`
}

// Defaults used when neither flags nor the config file set a value.
const (
	DefaultWorkDir = "./work"
	DefaultOutDir  = "./iocc_out"
)

// EnvRepoURL supplies the repo URL when nothing else does.
const EnvRepoURL = "IOCCCORG_REPO_URL"

// Default returns a workspace with every default filled in.
func Default() *Workspace {
	return &Workspace{
		WorkDir:    DefaultWorkDir,
		OutDir:     DefaultOutDir,
		Extensions: []string{".c"},
		Hints:      probe.DefaultHints(),
	}
}

// ApplyDefaults fills unset fields. getenv is consulted for EnvRepoURL
// before falling back to defaultURL.
func (w *Workspace) ApplyDefaults(defaultURL string, getenv func(string) string) {
	d := Default()
	if w.Source.Path == "" && w.Source.URL == "" {
		if getenv != nil {
			w.Source.URL = getenv(EnvRepoURL)
		}
		if w.Source.URL == "" {
			w.Source.URL = defaultURL
		}
	}
	if w.WorkDir == "" {
		w.WorkDir = d.WorkDir
	}
	if w.OutDir == "" {
		w.OutDir = d.OutDir
	}
	if len(w.Extensions) == 0 {
		w.Extensions = d.Extensions
	}
	w.Hints = w.Hints.Merge(d.Hints)
}
