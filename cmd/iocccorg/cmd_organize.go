package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"iocccorg/internal/format"
	"iocccorg/internal/organize"
	"iocccorg/internal/source"
	"iocccorg/internal/workspace"
)

type organizeFlags struct {
	config     string
	repoURL    string
	branch     string
	workDir    string
	localClone string
	outDir     string
	force      bool
	extensions []string
	catalog    string
	format     string
}

func newOrganizeCmd() *cobra.Command {
	var of organizeFlags
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Clone or reuse the winners repo and build the organized tree",
		Long: `Organize every qualifying source file of the winners repository.

Each file is classified by the first four-digit year in its path and the
directory after it. Award, authors and summary come from README-style files
next to it, then from its leading block comment, then from defaults.

  iocccorg organize --local-clone ./winner --outdir ./iocc_out
  iocccorg organize --repo-url https://github.com/ioccc-src/winner.git --force
  iocccorg organize --config iocccorg.yaml --catalog ./catalog.db

The repository URL defaults to $` + workspace.EnvRepoURL + ` or the public winners repo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrganize(cmd, &of)
		},
	}
	f := cmd.Flags()
	f.StringVar(&of.config, "config", "", "Config file (YAML or JSON)")
	f.StringVar(&of.repoURL, "repo-url", "", "Git repo URL to clone (default: $"+workspace.EnvRepoURL+" or "+source.DefaultRepoURL+")")
	f.StringVar(&of.branch, "branch", "", "Git branch to check out")
	f.StringVar(&of.workDir, "workdir", workspace.DefaultWorkDir, "Where to create or find the clone")
	f.StringVar(&of.localClone, "local-clone", "", "Existing clone path (skips cloning)")
	f.StringVar(&of.outDir, "outdir", workspace.DefaultOutDir, "Output directory")
	f.BoolVar(&of.force, "force", false, "Overwrite the output directory if it exists")
	f.StringSliceVar(&of.extensions, "ext", nil, "Qualifying file extensions (default .c)")
	f.StringVar(&of.catalog, "catalog", "", "Record the run in this SQLite catalog")
	f.StringVar(&of.format, "format", "ascii", "Summary table format: ascii or markdown")
	return cmd
}

// resolveWorkspace layers defaults, the config file and explicitly set flags.
func resolveWorkspace(cmd *cobra.Command, of *organizeFlags) (*workspace.Workspace, error) {
	ws := &workspace.Workspace{}
	if of.config != "" {
		loaded, err := workspace.LoadFromPath(of.config)
		if err != nil {
			return nil, err
		}
		ws = loaded
	}

	set := cmd.Flags().Changed
	if set("repo-url") {
		ws.Source.URL = of.repoURL
	}
	if set("branch") {
		ws.Source.Branch = of.branch
	}
	if set("local-clone") {
		ws.Source.Path = of.localClone
	}
	if set("workdir") {
		ws.WorkDir = of.workDir
	}
	if set("outdir") {
		ws.OutDir = of.outDir
	}
	if set("force") {
		ws.Force = of.force
	}
	if set("ext") {
		ws.Extensions = ws.Extensions[:0]
		for _, e := range of.extensions {
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			ws.Extensions = append(ws.Extensions, e)
		}
	}
	if set("catalog") {
		ws.Catalog = of.catalog
	}
	ws.ApplyDefaults(source.DefaultRepoURL, os.Getenv)
	return ws, nil
}

func runOrganize(cmd *cobra.Command, of *organizeFlags) error {
	mode, err := format.ParseMode(of.format)
	if err != nil {
		return err
	}
	ws, err := resolveWorkspace(cmd, of)
	if err != nil {
		return err
	}

	res, err := organize.Run(cmd.Context(), organize.Options{
		Source: source.Request{
			RepoURL:    ws.Source.URL,
			Branch:     ws.Source.Branch,
			WorkDir:    ws.WorkDir,
			LocalClone: ws.Source.Path,
		},
		OutDir:     ws.OutDir,
		Force:      ws.Force,
		Extensions: source.Extensions(ws.Extensions),
		Hints:      ws.Hints,
		Catalog:    ws.Catalog,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Done. Files organized under: %s\n", res.OutputDir)
	fmt.Fprintf(out, "Manifest: %s\n", res.ManifestPath)
	if res.CatalogRunID != 0 {
		fmt.Fprintf(out, "Catalog: %s (run %d)\n", ws.Catalog, res.CatalogRunID)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, summaryTable(res, mode).String())
	return nil
}
