package cmd

import (
	"fmt"

	"github.com/cottand/mdispatch/dispatch"
	"github.com/spf13/cobra"
)

var ResolveCmd = &cobra.Command{
	Use:          "resolve manifest.(yaml|toml|hcl) NAME TYPE...",
	Short:        "Print the signature a dispatcher picks for the given argument types",
	RunE:         runResolve,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
}

var resolveFlags *commonFlags

func init() {
	resolveFlags = addCommonFlags(ResolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolveFlags.apply()

	p, err := loadProgram(args[0], dispatch.WithSink(quiet))
	if err != nil {
		return err
	}
	d, err := lookup(p, args[1])
	if err != nil {
		return err
	}
	argTypes, err := p.Signature(args[2:])
	if err != nil {
		return err
	}

	chosen, err := d.Match(argTypes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s(%s)\n", d.Name(), chosen)
	return err
}
