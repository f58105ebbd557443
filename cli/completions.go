package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const completionInstructions = `To load completions:

Bash:
  $ source <(allscreenshots completions bash)
  # or, once for every session (Linux):
  $ allscreenshots completions bash > /etc/bash_completion.d/allscreenshots

Zsh:
  $ allscreenshots completions zsh > "${fpath[1]}/_allscreenshots"
  # then start a new shell

Fish:
  $ allscreenshots completions fish > ~/.config/fish/completions/allscreenshots.fish

PowerShell:
  PS> allscreenshots completions powershell | Out-String | Invoke-Expression
`

var completionsCmd = &cobra.Command{
	Use:       "completions SHELL",
	Short:     "Generate shell completion scripts",
	Long:      "Generates a completion script for bash, zsh, fish or powershell.\n\n" + completionInstructions,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if showInstructions {
			fmt.Fprint(out, completionInstructions)
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("specify a shell: bash, zsh, fish or powershell")
		}

		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionsCmd)

	completionsCmd.Flags().BoolVar(&showInstructions, "instructions", false, "print how to install the script instead of the script")
}
