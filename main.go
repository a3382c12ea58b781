package main

import (
	"os"

	"github.com/cottand/mdispatch/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "mdispatch [subcommand]",
	Short:        "mdispatch inspects and runs multiple-dispatch manifests",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ResolveCmd)
	rootCmd.AddCommand(cmd.CallCmd)
}
