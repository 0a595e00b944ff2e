package transform

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/view"
	"github.com/open-cli-collective/mlang-cli/pkg/mlang"
)

type stripOptions struct {
	commonOptions
	legacyDir bool
	markdown  bool
}

// NewCmdStrip creates the strip command.
func NewCmdStrip() *cobra.Command {
	opts := &stripOptions{}

	cmd := &cobra.Command{
		Use:   "strip [file]",
		Short: "Turn rendered markers back into {mlang} text",
		Long: `Replace rendered marker elements with their {mlang xx} and {mlang} labels,
producing the markup that is saved.

Fallback markers are turned back into <span class="multilang" lang="xx">
elements when a matching end marker is found on the same level.`,
		Example: `  # Strip a rendered file
  mlang strip edited.html

  # Add dir attributes to legacy spans
  mlang strip edited.html --legacy-dir

  # Save as markdown
  mlang strip edited.html --markdown > page.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd)
			return runStrip(fileArg(args, 0), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.legacyDir, "legacy-dir", false, "Add dir=\"ltr|rtl\" to reconstructed legacy spans")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Convert the result to markdown")

	return cmd
}

func runStrip(file string, opts *stripOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	renderer, err := opts.renderer(cfg)
	if err != nil {
		return err
	}

	input, err := opts.readInput(file)
	if err != nil {
		return err
	}

	stripOpts := cfg.StripOptions()
	if opts.legacyDir {
		stripOpts.LegacyDir = true
	}

	if !mlang.IsRendered(input) {
		renderer.Verbose("input holds no rendered markers")
	}
	output := mlang.Strip(input, stripOpts)

	if opts.markdown {
		output, err = mlang.ToMarkdown(output)
		if err != nil {
			return fmt.Errorf("failed to convert to markdown: %w", err)
		}
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(renderResult{Markup: output, Changed: output != input})
	}
	renderer.RenderMarkup(output)
	return nil
}
