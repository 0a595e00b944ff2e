package transform

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/view"
	"github.com/open-cli-collective/mlang-cli/pkg/mlang"
)

type previewOptions struct {
	commonOptions
	raw bool
}

type previewResult struct {
	Language string `json:"language"`
	Content  string `json:"content"`
}

// NewCmdPreview creates the preview command.
func NewCmdPreview() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <lang> [file]",
		Short: "Show content as a reader of one language sees it",
		Long: `Resolve {mlang} blocks for one language. Of each group of adjacent
blocks, the blocks for the language are kept, or the "other" blocks when
none matches. Text outside of blocks is always shown.

Rendered markers are stripped first, so editor content can be previewed
directly. The result is shown as markdown unless --raw is given.`,
		Example: `  # Preview the German version
  mlang preview de page.html

  # Keep the HTML
  mlang preview en page.html --raw`,
		Args: cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			opts.bind(cmd)
			return completeLanguages(&opts.commonOptions), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd)
			return runPreview(args[0], fileArg(args, 1), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Show HTML instead of markdown")

	return cmd
}

func runPreview(lang, file string, opts *previewOptions) error {
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

	if mlang.IsRendered(input) {
		renderer.Verbose("stripping rendered markers before preview")
		input = mlang.Strip(input, cfg.StripOptions())
	}

	content := mlang.Filter(input, lang)
	if !opts.raw {
		content, err = mlang.ToMarkdown(content)
		if err != nil {
			return fmt.Errorf("failed to convert to markdown: %w", err)
		}
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(previewResult{Language: lang, Content: content})
	}
	renderer.RenderMarkup(content)
	return nil
}
