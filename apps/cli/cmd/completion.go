package cmd

import (
	"github.com/spf13/cobra"
)

var noDescriptionsFlag bool

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for xunit.

Bash:
  $ source <(xunit completion bash)

Zsh:
  $ xunit completion zsh > "${fpath[1]}/_xunit"

Fish:
  $ xunit completion fish | source

PowerShell:
  PS> xunit completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		withDesc := !noDescriptionsFlag
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, withDesc)
		case "zsh":
			if withDesc {
				return cmd.Root().GenZshCompletion(out)
			}
			return cmd.Root().GenZshCompletionNoDesc(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, withDesc)
		case "powershell":
			if withDesc {
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return cmd.Root().GenPowerShellCompletion(out)
		}
		return nil
	},
}

func init() {
	completionCmd.Flags().BoolVar(&noDescriptionsFlag, "no-descriptions", false, "Omit completion descriptions")
	rootCmd.AddCommand(completionCmd)
}
