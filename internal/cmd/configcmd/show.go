package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current mlang configuration with source indicators.`,
		Example: `  # Show current config
  mlang config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(noColor, os.Stdout)
		},
	}

	return cmd
}

func runShow(noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	configPath := config.DefaultConfigPath()

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = config.Default()
	}

	// Load full config with env overrides
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVar string) {
		_, _ = bold.Fprintf(w, "%-20s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		// Determine source
		source := "config"
		if fileErr != nil {
			source = "default"
		}
		if envVar != "" && os.Getenv(envVar) != "" && value != fileValue {
			source = envVar
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Languages", config.FormatLanguages(cfg.Languages), config.FormatLanguages(fileCfg.Languages), "MLANG_LANGUAGES")
	printField("Require multilang2", strconv.FormatBool(cfg.RequireMultilang2), strconv.FormatBool(fileCfg.RequireMultilang2), "")
	printField("Fallback span", strconv.FormatBool(cfg.FallbackSpan), strconv.FormatBool(fileCfg.FallbackSpan), "MLANG_FALLBACK_SPAN")
	printField("Show other", strconv.FormatBool(cfg.ShowFallbackOther), strconv.FormatBool(fileCfg.ShowFallbackOther), "")
	printField("Highlight", strconv.FormatBool(cfg.Highlight), strconv.FormatBool(fileCfg.Highlight), "MLANG_HIGHLIGHT")
	printField("Split blocks", strconv.FormatBool(cfg.SplitBlocks), strconv.FormatBool(fileCfg.SplitBlocks), "MLANG_SPLIT_BLOCKS")
	printField("Legacy dir", strconv.FormatBool(cfg.LegacyDir), strconv.FormatBool(fileCfg.LegacyDir), "")
	printField("RTL languages", strings.Join(cfg.StripOptions().RTLLanguages, ", "), strings.Join(fileCfg.StripOptions().RTLLanguages, ", "), "")
	printField("Output format", cfg.OutputFormat, fileCfg.OutputFormat, "")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
