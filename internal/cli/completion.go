package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/pkg/render"
	"github.com/matzehuels/tooltipper/pkg/session"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

var fixtureExtensions = []string{"toml", "yaml", "yml", "json"}

// completionCommand generates shell completion scripts on the CLI output.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate shell completion scripts for %[1]s.

Completions know about fixture files, and after a fixture they offer
click:<id> for every trigger it declares.

  $ source <(%[1]s completion bash)
  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"
  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish
  PS> %[1]s completion powershell | Out-String | Invoke-Expression`, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(c.out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(c.out)
			}
		},
	}
}

// completeFixture completes the single fixture argument of demo.
func completeFixture(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return fixtureExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeSimulateArgs completes the fixture path, then steps against the
// triggers that fixture declares.
func completeSimulateArgs(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return fixtureExtensions, cobra.ShellCompDirectiveFilterFileExt
	}
	f, err := session.Load(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveError
	}
	return filterPrefix(stepCompletions(f), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// stepCompletions lists a click step per trigger, labelled with the tooltip
// it opens, plus the argument-free steps.
func stepCompletions(f *session.Fixture) []string {
	out := make([]string, 0, len(f.Triggers)+2)
	for _, t := range f.Triggers {
		step := session.Step{Kind: session.StepClick, Target: t.ID}
		out = append(out, fmt.Sprintf("%s\topens %s", step, t.Target))
	}
	out = append(out,
		string(session.StepOutside)+"\tclick empty page space",
		fmt.Sprintf("%s:%d\tresize the viewport", session.StepResize, f.Viewport.Width),
	)
	return out
}

func filterPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func registerProfileCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("profile", fixedCompletion(tooltip.Profiles()...))
}

func registerFormatCompletion(cmd *cobra.Command) {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(names...))
}

func registerCacheCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("cache", fixedCompletion(cacheNone, cacheMemory, cacheFile, cacheRedis))
}
