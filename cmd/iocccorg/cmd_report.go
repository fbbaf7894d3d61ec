package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"iocccorg/internal/format"
	"iocccorg/internal/manifest"
	"iocccorg/internal/store"
)

type reportFlags struct {
	manifest string
	catalog  string
	runID    int64
	format   string
	byYear   bool
}

func newReportCmd() *cobra.Command {
	var rf reportFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the entries of a manifest or catalog as a table",
		Long: `Print a finished run as a table.

  iocccorg report --manifest ./iocc_out/manifest.csv
  iocccorg report --catalog ./catalog.db --format markdown
  iocccorg report --manifest ./iocc_out/manifest.csv --by-year`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, &rf)
		},
	}
	f := cmd.Flags()
	f.StringVar(&rf.manifest, "manifest", "", "Path to manifest.csv")
	f.StringVar(&rf.catalog, "catalog", "", "Path to a SQLite catalog")
	f.Int64Var(&rf.runID, "run", 0, "Catalog run ID (default: latest)")
	f.StringVar(&rf.format, "format", "ascii", "Table format: ascii or markdown")
	f.BoolVar(&rf.byYear, "by-year", false, "Print entry counts per year instead of rows")
	cmd.MarkFlagsMutuallyExclusive("manifest", "catalog")
	cmd.MarkFlagsOneRequired("manifest", "catalog")
	return cmd
}

func runReport(cmd *cobra.Command, rf *reportFlags) error {
	mode, err := format.ParseMode(rf.format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if rf.manifest != "" {
		rows, err := manifest.Read(rf.manifest)
		if err != nil {
			return err
		}
		if rf.byYear {
			printTable(out, yearTable(rows, mode))
			return nil
		}
		printTable(out, rowsTable(rows, mode))
		return nil
	}

	st, err := store.Open(rf.catalog)
	if err != nil {
		return err
	}
	defer st.Close()

	runID := rf.runID
	if runID == 0 {
		run, err := st.LatestRun()
		if err != nil {
			return err
		}
		if run == nil {
			return errors.New("report: catalog has no runs")
		}
		runID = run.ID
		fmt.Fprintf(out, "Run %d (%s): %s -> %s\n", run.ID, run.StartedAt, run.SourceRoot, run.OutputDir)
	}
	entries, err := st.ListEntries(runID)
	if err != nil {
		return err
	}
	if rf.byYear {
		rows := make([]manifest.Row, len(entries))
		for i, e := range entries {
			rows[i] = e.Row
		}
		printTable(out, yearTable(rows, mode))
		return nil
	}
	printTable(out, entriesTable(entries, mode))
	return nil
}
