// Package root provides the root command for the cflprep CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-prep/internal/cmd/completion"
	"github.com/open-cli-collective/confluence-prep/internal/cmd/initcmd"
	"github.com/open-cli-collective/confluence-prep/internal/cmd/prepare"
	"github.com/open-cli-collective/confluence-prep/internal/cmd/watch"
	"github.com/open-cli-collective/confluence-prep/internal/config"
	"github.com/open-cli-collective/confluence-prep/internal/version"
)

// NewCmdRoot creates the root command for cflprep.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cflprep",
		Short: "Prepare AsciiDoc trees for Confluence publishing",
		Long: `cflprep resolves the include graph of an AsciiDoc source tree and
materializes rewritten copies of every involved file into a working
directory. Includes of non-prefixed documents are promoted to separate
pages; image, diagram, link and cross-reference paths are adjusted so the
rewritten copies stay consistent at their new location.

The resulting page structure and working directory are consumed by a
downstream renderer and publisher.

Get started by running: cflprep init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./"+config.DefaultFileName+")")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("cflprep version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(prepare.NewCmdPrepare())
	cmd.AddCommand(watch.NewCmdWatch())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
