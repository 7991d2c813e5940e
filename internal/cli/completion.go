package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabooprint/pkg/layout"
)

// completionTimeout bounds deck listing during completion, which may reach
// MongoDB.
const completionTimeout = 2 * time.Second

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tabooprint.

Deck arguments complete to the deck names of the configured source as well as
to files; --paper and --duplex complete to their accepted values.

  $ source <(tabooprint completion bash)
  $ tabooprint completion zsh > "${fpath[1]}/_tabooprint"
  $ tabooprint completion fish > ~/.config/fish/completions/tabooprint.fish
  PS> tabooprint completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeDecks completes deck names from the source selected by sf. File
// names still complete, since deck arguments may be paths. With single set,
// nothing is offered after the first argument.
func (c *CLI) completeDecks(sf *sourceFlags, single bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if single && len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		// Completion skips the root pre-run, so the config is loaded here.
		_ = c.loadConfig()

		ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
		defer cancel()
		src, closeSrc, err := c.openSource(ctx, *sf, nil)
		if err != nil {
			return nil, cobra.ShellCompDirectiveDefault
		}
		defer closeSrc()
		names, err := src.List(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveDefault
		}
		return filterPrefix(names, toComplete, args), cobra.ShellCompDirectiveDefault
	}
}

// registerLayoutCompletions completes the enumerated layout flags.
func registerLayoutCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("paper", fixedCompletions(layout.PaperNames()...))
	_ = cmd.RegisterFlagCompletionFunc("duplex", fixedCompletions(string(layout.DuplexLongEdge), string(layout.DuplexShortEdge)))
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterPrefix(values, toComplete, nil), cobra.ShellCompDirectiveNoFileComp
	}
}

// filterPrefix returns the candidates starting with prefix, minus those
// already given as arguments.
func filterPrefix(candidates []string, prefix string, given []string) []string {
	var out []string
	for _, s := range candidates {
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		dup := false
		for _, g := range given {
			if g == s {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}
