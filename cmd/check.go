package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/cottand/mdispatch/dispatch"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check manifest.(yaml|toml|hcl)",
	Short:        "Print the resolution order of every dispatcher in a manifest, and its ambiguities",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var ErrAmbiguous = errors.New("manifest has ambiguous signatures")

var (
	checkFlags  *commonFlags
	checkStrict *bool
)

func init() {
	checkFlags = addCommonFlags(CheckCmd)
	checkStrict = CheckCmd.Flags().Bool("strict", false, "fail when any dispatcher has ambiguities")
}

func runCheck(cmd *cobra.Command, args []string) error {
	checkFlags.apply()

	p, err := loadProgram(args[0], dispatch.WithSink(quiet))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := checkFlags.colored(out)
	ambiguous := 0
	for _, name := range p.Namespace.Names() {
		d, _ := p.Namespace.Lookup(name)
		ambiguous += printDispatcher(out, color, d)
	}

	if ambiguous > 0 && *checkStrict {
		return fmt.Errorf("%w: %d dispatchers", ErrAmbiguous, ambiguous)
	}
	return nil
}

// printDispatcher writes d's ordering and warning, and returns 1 if d is ambiguous
func printDispatcher(w io.Writer, color bool, d *dispatch.Dispatcher) int {
	_, _ = fmt.Fprintln(w, paint(color, ansiBold, d.Name()))
	for i, sig := range d.Ordering() {
		_, _ = fmt.Fprintf(w, "  %d. %s(%s)\n", i+1, d.Name(), sig)
	}
	ambiguities := d.Ambiguities()
	if len(ambiguities) == 0 {
		return 0
	}
	warning := &dispatch.AmbiguityWarning{Name: d.Name(), Ambiguities: ambiguities}
	_, _ = fmt.Fprintln(w, paint(color, ansiYellow, warning.Error()))
	return 1
}
