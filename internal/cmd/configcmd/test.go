package configcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/config"
	"github.com/open-cli-collective/mlang-cli/pkg/mlang"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check the configuration with a sample document",
		Long: `Validate the mlang configuration and run a sample document through the
render and strip passes with the configured options.`,
		Example: `  # Test configuration
  mlang config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(noColor, os.Stdout)
		},
	}

	return cmd
}

func runTest(noColor bool, w io.Writer, cfgs ...*config.Config) error {
	if noColor {
		color.NoColor = true
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = config.LoadWithEnv(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'mlang init' to configure)", err)
		}
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	if err := cfg.Validate(); err != nil {
		_, _ = red.Fprintln(w, "✗ Invalid configuration:", err)
		fmt.Fprintln(w, "\nReconfigure with: mlang init")
		return fmt.Errorf("invalid config: %w", err)
	}
	_, _ = green.Fprintln(w, "✓ Configuration valid")

	list := cfg.LanguageList()
	if list == nil {
		_, _ = yellow.Fprintln(w, "! Language menu disabled (fewer than two languages)")
	} else {
		codes := make([]string, 0, len(list))
		for _, lang := range list {
			codes = append(codes, lang.ISO)
		}
		_, _ = green.Fprintf(w, "✓ Language menu: %s\n", strings.Join(codes, ", "))
	}

	if err := checkRoundTrip(cfg, list); err != nil {
		_, _ = red.Fprintln(w, "✗ Sample document:", err)
		return err
	}
	_, _ = green.Fprintln(w, "✓ Sample document rendered and stripped")

	if cfg.FallbackSpan {
		if err := checkLegacySpan(cfg); err != nil {
			_, _ = red.Fprintln(w, "✗ Legacy span:", err)
			return err
		}
		_, _ = green.Fprintln(w, "✓ Legacy spans migrated and restored")
	}

	return nil
}

// sampleDocument builds a document with one block per menu language.
func sampleDocument(list []config.Language) string {
	if len(list) == 0 {
		list = []config.Language{{ISO: "en"}, {ISO: mlang.LangOther}}
	}
	var sb strings.Builder
	sb.WriteString("<p>")
	for _, lang := range list {
		fmt.Fprintf(&sb, "{mlang %s}%s{mlang}", lang.ISO, lang.Label)
	}
	sb.WriteString("</p>")
	return sb.String()
}

func checkRoundTrip(cfg *config.Config, list []config.Language) error {
	sample := sampleDocument(list)

	rendered := mlang.Render(sample, cfg.RenderOptions())
	if !mlang.IsRendered(rendered) {
		return errors.New("no markers were rendered")
	}
	if stripped := mlang.Strip(rendered, cfg.StripOptions()); stripped != sample {
		return fmt.Errorf("round trip changed the content: %q", stripped)
	}
	return nil
}

func checkLegacySpan(cfg *config.Config) error {
	legacy := `<p><span class="multilang" lang="en">Hello</span></p>`

	rendered := mlang.Render(legacy, cfg.RenderOptions())
	if !strings.Contains(rendered, mlang.ClassFallback) {
		return errors.New("legacy span was not migrated")
	}
	if stripped := mlang.Strip(rendered, cfg.StripOptions()); !strings.Contains(stripped, `class="multilang" lang="en"`) {
		return fmt.Errorf("legacy span was not restored: %q", stripped)
	}
	return nil
}
