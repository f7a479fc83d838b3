package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for indexgen
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexgen",
		Short: "Static HTML directory index generator",
		Long: `Indexgen walks a directory tree and writes, for every directory, a set
of static HTML index pages listing that directory's entries under three
sort orders (name, last-modified time, size), each ascending or
descending.

The tree can be the real filesystem, or a tree described by delimited
metadata manifest files placed in each directory.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
