package cmd

import (
	"fmt"

	"github.com/cottand/mdispatch/dispatch"
	"github.com/spf13/cobra"
)

var CallCmd = &cobra.Command{
	Use:   "call manifest.(yaml|toml|hcl) NAME EXPR...",
	Short: "Call a dispatcher with Go values and print its result",
	Long: "Call a dispatcher of a manifest using the go oracle. Every EXPR is a Go expression,\n" +
		"such as 3, 3.0 or '\"s\"', and the implementation chosen for their types is run.",
	RunE:         runCall,
	Args:         cobra.MinimumNArgs(2),
	SilenceUsage: true,
}

var callFlags *commonFlags

func init() {
	callFlags = addCommonFlags(CallCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	callFlags.apply()

	p, err := loadProgram(args[0], dispatch.WithSink(dispatch.LogSink(logger)))
	if err != nil {
		return err
	}
	d, err := lookup(p, args[1])
	if err != nil {
		return err
	}

	values := make([]any, 0, len(args)-2)
	for _, expr := range args[2:] {
		v, err := p.Value(expr)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	result, err := d.Call(values...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%v\n", result)
	return err
}
