// Package root provides the root command for the mlang CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/cmd/completion"
	"github.com/open-cli-collective/mlang-cli/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/mlang-cli/internal/cmd/init"
	"github.com/open-cli-collective/mlang-cli/internal/cmd/languages"
	"github.com/open-cli-collective/mlang-cli/internal/cmd/transform"
	"github.com/open-cli-collective/mlang-cli/internal/version"
)

// NewCmdRoot creates the root command for mlang.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mlang",
		Short: "A command-line tool for {mlang} multilingual markup",
		Long: `mlang converts between the {mlang xx}...{mlang} marker syntax used in
multilingual HTML content and the highlighted span form an editor shows.

It renders plain markers into spans, strips spans back to markers, wraps
selections in language blocks and previews a document for one language.

Get started by running: mlang init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mlang/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "print diagnostics to stderr")

	// Set version template
	cmd.SetVersionTemplate(version.Info() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(transform.NewCmdRender())
	cmd.AddCommand(transform.NewCmdStrip())
	cmd.AddCommand(transform.NewCmdTokens())
	cmd.AddCommand(transform.NewCmdApply())
	cmd.AddCommand(transform.NewCmdPreview())
	cmd.AddCommand(languages.NewCmdLanguages())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
