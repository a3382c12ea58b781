package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cottand/mdispatch/dispatch"
	"github.com/cottand/mdispatch/internal/log"
	"github.com/cottand/mdispatch/manifest"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var logger = log.DefaultLogger.With("section", "cli")

const (
	ansiYellow = "\033[33m"
	ansiBold   = "\033[1m"
	ansiReset  = "\033[0m"
)

// commonFlags are registered on every subcommand
type commonFlags struct {
	logLevel *int
	noColor  *bool
}

func addCommonFlags(c *cobra.Command) *commonFlags {
	return &commonFlags{
		logLevel: c.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level"),
		noColor:  c.Flags().Bool("no-color", false, "disable coloured output"),
	}
}

func (f *commonFlags) apply() {
	log.SetLevel(slog.Level(*f.logLevel))
}

// colored reports whether w is a terminal we can write ANSI escapes to
func (f *commonFlags) colored(w io.Writer) bool {
	if *f.noColor {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func paint(enabled bool, color, s string) string {
	if !enabled {
		return s
	}
	return color + s + ansiReset
}

func loadProgram(path string, opts ...dispatch.Option) (*manifest.Program, error) {
	f, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := manifest.Build(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not build manifest: %w", err)
	}
	logger.Debug("loaded manifest", "path", path, "dispatchers", len(p.Namespace.Names()))
	return p, nil
}

func lookup(p *manifest.Program, name string) (*dispatch.Dispatcher, error) {
	d, ok := p.Namespace.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no dispatcher called %s in manifest", name)
	}
	return d, nil
}

// quiet discards ambiguity warnings while a manifest is built, for commands
// that report them differently or not at all
func quiet(*dispatch.AmbiguityWarning) {}
