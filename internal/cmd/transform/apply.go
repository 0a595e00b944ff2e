package transform

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/config"
	"github.com/open-cli-collective/mlang-cli/internal/view"
	"github.com/open-cli-collective/mlang-cli/pkg/mlang"
)

type applyOptions struct {
	commonOptions
	fallback bool
}

// NewCmdApply creates the apply command.
func NewCmdApply() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <iso> [file]",
		Short: "Wrap a selection in a language block",
		Long: `Wrap selected markup in rendered begin and end markers for a language.

The selection is read from the file argument or stdin. A selection that
starts with a begin marker gets that marker's language changed. Use the
language "remove" to remove all markers from the selection.

A selection must not cover more than one block element and must not
already contain markers.`,
		Example: `  # Mark a selection as German
  echo 'Hallo Welt' | mlang apply de

  # Change the language of a block
  mlang apply fr selection.html

  # Remove all markers
  mlang apply remove selection.html`,
		Args: cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}
			opts.bind(cmd)
			return completeLanguages(&opts.commonOptions, mlang.LangRemove), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.bind(cmd)
			return runApply(args[0], fileArg(args, 1), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.fallback, "fallback", false, "Insert fallback markers (for sites without the multilang2 filter)")

	return cmd
}

func runApply(iso, file string, opts *applyOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	renderer, err := opts.renderer(cfg)
	if err != nil {
		return err
	}

	iso = strings.TrimSpace(iso)
	if iso != "" {
		if err := config.ValidateISO(iso); err != nil {
			return err
		}
		if iso != mlang.LangRemove && !inMenu(cfg, iso) {
			renderer.Warning(fmt.Sprintf("language %q is not in the configured language menu", iso))
		}
	}

	input, err := opts.readInput(file)
	if err != nil {
		return err
	}
	selection := strings.TrimSuffix(input, "\n")

	applyOpts := cfg.ApplyOptions()
	if opts.fallback {
		applyOpts.Fallback = true
	}

	output, err := mlang.ApplyLanguage(selection, iso, applyOpts)
	if err != nil {
		return err
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(renderResult{Markup: output, Changed: output != selection})
	}
	renderer.RenderMarkup(output)
	return nil
}

// inMenu reports whether iso is offered by the language menu. A disabled
// menu offers every language.
func inMenu(cfg *config.Config, iso string) bool {
	list := cfg.LanguageList()
	if list == nil {
		return true
	}
	for _, lang := range list {
		if strings.EqualFold(lang.ISO, iso) {
			return true
		}
	}
	return false
}

// completeLanguages returns the configured language codes for shell
// completion, followed by extra codes.
func completeLanguages(opts *commonOptions, extra ...string) []string {
	cfg, err := opts.loadConfig()
	if err != nil {
		return extra
	}
	var codes []string
	for _, lang := range cfg.LanguageList() {
		codes = append(codes, lang.ISO+"\t"+lang.Label)
	}
	return append(codes, extra...)
}
