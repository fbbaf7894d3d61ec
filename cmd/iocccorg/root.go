package main

import (
	"github.com/spf13/cobra"

	"iocccorg/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	var rf rootFlags
	root := &cobra.Command{
		Use:   "iocccorg",
		Short: "Organize IOCCC winning entries by year, award and entry",
		Long: "iocccorg clones (or reuses) the IOCCC winners repository, infers each entry's\n" +
			"award, authors and summary from its README-style files and source header\n" +
			"comments, and copies only the C sources into <outdir>/<year>/<award>/<entry>.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(rf.logLevel)
			if err != nil {
				return err
			}
			format, err := logging.ParseFormat(rf.logFormat)
			if err != nil {
				return err
			}
			logging.Init(level, format, cmd.ErrOrStderr())
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&rf.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rf.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newOrganizeCmd())
	root.AddCommand(newReportCmd())
	return root
}
