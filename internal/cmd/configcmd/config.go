// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// envVars are the environment variables that override the config file.
var envVars = []string{"MLANG_LANGUAGES", "MLANG_FALLBACK_SPAN", "MLANG_SPLIT_BLOCKS", "MLANG_HIGHLIGHT"}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mlang configuration",
		Long:  `Commands for viewing, testing, and clearing mlang configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}
