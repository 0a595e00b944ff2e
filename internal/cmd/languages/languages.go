// Package languages provides the command that lists the language menu.
package languages

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/config"
	"github.com/open-cli-collective/mlang-cli/internal/view"
)

type languagesOptions struct {
	output  string
	noColor bool

	stdout io.Writer      // For testing; defaults to os.Stdout
	stderr io.Writer      // For testing; defaults to os.Stderr
	cfg    *config.Config // For testing; loaded from the config file when nil
}

// NewCmdLanguages creates the languages command.
func NewCmdLanguages() *cobra.Command {
	opts := &languagesOptions{}

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the language menu",
		Long: `List the languages offered when marking content, sorted by label.

The "other" entry is added unless show_fallback_other is disabled. With
fewer than two entries the menu is disabled.`,
		Example: `  # List languages
  mlang languages

  # As JSON
  mlang languages -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			if opts.cfg == nil {
				path, _ := cmd.Flags().GetString("config")
				if path == "" {
					path = config.DefaultConfigPath()
				}
				cfg, err := config.LoadWithEnv(path)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				opts.cfg = cfg
			}
			return runLanguages(opts)
		},
	}

	return cmd
}

func runLanguages(opts *languagesOptions) error {
	if err := opts.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'mlang init' to configure)", err)
	}

	format := opts.output
	if format == "" {
		format = opts.cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(format), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	if opts.stderr != nil {
		renderer.SetErrWriter(opts.stderr)
	}

	list := opts.cfg.LanguageList()
	if list == nil {
		renderer.Warning("language menu disabled: configure at least two languages (run 'mlang init')")
		if renderer.Format() == view.FormatJSON {
			return renderer.RenderJSON([]config.Language{})
		}
		return nil
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(list)
	}

	rows := make([][]string, 0, len(list))
	for _, lang := range list {
		rows = append(rows, []string{lang.ISO, lang.Label})
	}
	renderer.RenderTable([]string{"ISO", "LABEL"}, rows)
	return nil
}
