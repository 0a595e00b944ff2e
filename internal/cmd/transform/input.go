// Package transform provides the commands that read markup and transform
// its language markers.
package transform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mlang-cli/internal/config"
	"github.com/open-cli-collective/mlang-cli/internal/view"
)

// commonOptions holds the global flags and the injectable I/O shared by all
// transform commands.
type commonOptions struct {
	output     string
	noColor    bool
	verbose    bool
	configPath string

	stdin  io.Reader      // For testing; defaults to os.Stdin
	stdout io.Writer      // For testing; defaults to os.Stdout
	stderr io.Writer      // For testing; defaults to os.Stderr
	cfg    *config.Config // For testing; loaded from configPath when nil
}

// bind reads the global flags from cmd.
func (o *commonOptions) bind(cmd *cobra.Command) {
	o.output, _ = cmd.Flags().GetString("output")
	o.noColor, _ = cmd.Flags().GetBool("no-color")
	o.verbose, _ = cmd.Flags().GetBool("verbose")
	o.configPath, _ = cmd.Flags().GetString("config")
}

// loadConfig returns the injected configuration or loads it from disk with
// environment overrides.
func (o *commonOptions) loadConfig() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	path := o.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'mlang init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'mlang init' to configure)", err)
	}
	o.cfg = cfg
	return cfg, nil
}

// renderer creates the output renderer. An empty output flag falls back to
// the configured default format.
func (o *commonOptions) renderer(cfg *config.Config) (*view.Renderer, error) {
	format := o.output
	if format == "" && cfg != nil {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return nil, err
	}

	r := view.NewRenderer(view.Format(format), o.noColor)
	if o.stdout != nil {
		r.SetWriter(o.stdout)
	}
	if o.stderr != nil {
		r.SetErrWriter(o.stderr)
	}
	r.SetVerbose(o.verbose)
	return r, nil
}

// readInput reads markup from file, or from stdin when file is empty or "-".
func (o *commonOptions) readInput(file string) (string, error) {
	if file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	stdin := o.stdin
	if stdin == nil {
		if isTerminal() {
			return "", fmt.Errorf("no input: pass a file or pipe markup on stdin")
		}
		stdin = os.Stdin
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// isMarkdownFile reports whether the file extension names a markdown file.
func isMarkdownFile(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// fileArg returns the optional file argument at index i.
func fileArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}
