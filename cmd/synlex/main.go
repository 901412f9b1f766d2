package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phillarmonic/synlex/cmd/synlex/app"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "synlex",
	Short: "A lexical scanner for indentation-aware, syntax-table-driven languages",
	Long: `synlex tokenizes source files against a configurable syntax table:
indentation tracked as INDENT/UNINDENT/NEWLINE, numeric and based-number
literals, doubled-quote text and character literals, binary blobs, and
syntax-table-driven operator and block detection.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `To load completions:

Bash:

  $ source <(synlex completion bash)

Zsh:

  $ synlex completion zsh > "${fpath[1]}/_synlex"

fish:

  $ synlex completion fish | source

PowerShell:

  PS> synlex completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ShowVersion(version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(app.NewTokensCmd())
	rootCmd.AddCommand(app.NewCheckCmd())
	rootCmd.AddCommand(app.NewArchiveCmd())
	rootCmd.AddCommand(app.NewTableCmd())
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
