// Package init provides the init command for mlang.
package init

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/config"
)

type initOptions struct {
	languages      string
	nonInteractive bool
	configPath     string
	out            io.Writer // For testing; defaults to os.Stdout
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mlang configuration",
		Long: `Initialize mlang with the languages of your site and the marker options.

This command will guide you through setting up the language menu and how
markers are rendered and saved. The configuration will be saved to
~/.config/mlang/config.yml.

Languages are entered as a comma separated list of iso[:label] entries,
for example: de:Deutsch, en:English, fr`,
		Example: `  # Interactive setup
  mlang init

  # Pre-populate languages
  mlang init --languages "de:Deutsch,en:English"

  # Save without prompting
  mlang init --languages de,en --non-interactive`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.languages, "languages", "", "Languages as iso[:label] list (e.g., de:Deutsch,en:English)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Save the defaults and flag values without prompting")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	out := opts.out
	if out == nil {
		out = os.Stdout
	}

	cfg := config.Default()
	// Start from the existing file so that a rerun keeps its settings
	if existing, err := config.Load(configPath); err == nil {
		if !opts.nonInteractive {
			var overwrite bool
			err := huh.NewConfirm().
				Title("Configuration already exists").
				Description(fmt.Sprintf("Overwrite %s?", configPath)).
				Value(&overwrite).
				Run()
			if err != nil {
				return err
			}
			if !overwrite {
				fmt.Fprintln(out, "Initialization cancelled.")
				return nil
			}
		}
		cfg = existing
	}

	languages := opts.languages
	if languages == "" {
		languages = config.FormatLanguages(cfg.Languages)
	}

	if !opts.nonInteractive {
		if err := newForm(cfg, &languages).Run(); err != nil {
			return err
		}
	}

	if err := applyLanguages(cfg, languages); err != nil {
		return err
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	if cfg.LanguageList() == nil {
		fmt.Fprintln(out, "\nNote: the language menu needs at least two languages.")
	}
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  mlang languages")
	fmt.Fprintln(out, "  mlang render page.html")

	return nil
}

// newForm builds the interactive form that edits cfg and the language list.
func newForm(cfg *config.Config, languages *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Languages").
				Description("Comma separated iso[:label] list").
				Placeholder("de:Deutsch, en:English").
				Value(languages).
				Validate(validateLanguages),

			huh.NewConfirm().
				Title("Add an \"other\" language?").
				Description("Content shown when no block matches the reader's language").
				Value(&cfg.ShowFallbackOther),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Is the multilang2 filter installed?").
				Description("Without it, inserted markers are saved as legacy multilang spans").
				Value(&cfg.RequireMultilang2),

			huh.NewConfirm().
				Title("Migrate legacy multilang spans?").
				Description("Turn <span class=\"multilang\"> elements into fallback markers").
				Value(&cfg.FallbackSpan),

			huh.NewConfirm().
				Title("Add dir attributes to legacy spans?").
				Value(&cfg.LegacyDir),

			huh.NewConfirm().
				Title("Close language blocks at paragraph ends?").
				Value(&cfg.SplitBlocks),

			huh.NewConfirm().
				Title("Highlight markers?").
				Description("Adds the highlight CSS to rendered pages").
				Value(&cfg.Highlight),
		),
	)
}

// validateLanguages checks a language list entered in the form.
func validateLanguages(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("at least one language is required")
	}
	for _, lang := range config.ParseLanguages(s) {
		if err := config.ValidateISO(lang.ISO); err != nil {
			return err
		}
	}
	return nil
}

// applyLanguages sets the parsed language list on cfg.
func applyLanguages(cfg *config.Config, languages string) error {
	if strings.TrimSpace(languages) == "" {
		return nil
	}
	if err := validateLanguages(languages); err != nil {
		return err
	}
	cfg.Languages = config.ParseLanguages(languages)
	return nil
}
