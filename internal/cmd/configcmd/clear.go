package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/config"
)

type clearOptions struct {
	configPath string
	noColor    bool
	out        io.Writer
}

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	opts := &clearOptions{out: os.Stdout}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long: `Delete the mlang configuration file and report what applies afterwards.

Without a file the built-in defaults are used: multilang2 markers, an
"other" menu entry and no legacy span migration. MLANG_* environment
variables still override them, and MLANG_LANGUAGES alone can re-enable
the language menu.`,
		Example: `  # Clear config
  mlang config clear

  # Clear a config file in another location
  mlang config clear --config ./mlang.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath, _ = cmd.Flags().GetString("config")
			return runClear(opts)
		},
	}

	return cmd
}

func runClear(opts *clearOptions) error {
	if opts.noColor {
		color.NoColor = true
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)
	w := opts.out

	var removed []config.Language
	if stored, err := config.Load(configPath); err == nil {
		removed = stored.Languages
	}

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	if os.IsNotExist(err) {
		_, _ = green.Fprintf(w, "✓ No config file to remove\n")
	} else {
		_, _ = green.Fprintf(w, "✓ Configuration cleared from %s\n", configPath)
		if len(removed) > 0 {
			_, _ = dim.Fprintf(w, "  Removed languages: %s\n", config.FormatLanguages(removed))
		}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	var active []string
	for _, v := range envVars {
		if value := os.Getenv(v); value != "" {
			active = append(active, v+"="+value)
		}
	}
	if len(active) > 0 {
		_, _ = dim.Fprintf(w, "\nEnvironment overrides still in effect:\n")
		for _, v := range active {
			_, _ = dim.Fprintf(w, "  %s\n", v)
		}
	}

	if list := cfg.LanguageList(); list == nil {
		_, _ = dim.Fprintf(w, "\nThe language menu is disabled until languages are configured.\n")
		_, _ = dim.Fprintf(w, "Run 'mlang init' or set MLANG_LANGUAGES.\n")
	} else {
		_, _ = dim.Fprintf(w, "\nLanguage menu from environment: %s\n", config.FormatLanguages(list))
	}

	return nil
}
