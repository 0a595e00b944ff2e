// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name    string
	title   string
	example string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:  "bash",
		title: "bash",
		example: `  # Load in current session
  source <(mlang completion bash)

  # Install permanently (Linux)
  mlang completion bash | sudo tee /etc/bash_completion.d/mlang > /dev/null

  # Install permanently (macOS with Homebrew)
  mlang completion bash > $(brew --prefix)/etc/bash_completion.d/mlang`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name:  "zsh",
		title: "zsh",
		example: `  # Enable completion once (add to ~/.zshrc)
  autoload -U compinit; compinit

  # Install permanently
  mlang completion zsh > "${fpath[1]}/_mlang"`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name:  "fish",
		title: "fish",
		example: `  # Load in current session
  mlang completion fish | source

  # Install permanently
  mlang completion fish > ~/.config/fish/completions/mlang.fish`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:  "powershell",
		title: "PowerShell",
		example: `  # Load in current session
  mlang completion powershell | Out-String | Invoke-Expression

  # Install permanently
  mlang completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mlang.

Language arguments of apply and preview complete from the configured
language menu. See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newCmdShell(sh))
	}

	return cmd
}

func newCmdShell(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 "Generate " + sh.title + " completion script",
		Example:               sh.example,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
