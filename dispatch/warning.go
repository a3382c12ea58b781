package dispatch

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cottand/mdispatch/specificity"
	"github.com/cottand/mdispatch/types"
)

// AmbiguityWarning reports the ambiguous signature pairs of a dispatcher
// right after a registration created them. It is advisory: the registration
// has already happened.
type AmbiguityWarning struct {
	// Name of the dispatcher
	Name        string
	Ambiguities []specificity.Ambiguity
}

// Sink receives ambiguity warnings. It must not block for long, as it runs on
// the registering goroutine.
type Sink func(*AmbiguityWarning)

// LogSink returns a Sink that logs each warning on logger
func LogSink(logger *slog.Logger) Sink {
	return func(w *AmbiguityWarning) {
		logger.Warn("ambiguous signatures", "dispatcher", w.Name, "ambiguities", w)
	}
}

func (w *AmbiguityWarning) Code() ErrCode { return CodeAmbiguous }

// Suggestions returns the super-signature of each ambiguous pair, in order
func (w *AmbiguityWarning) Suggestions() []types.Signature {
	out := make([]types.Signature, 0, len(w.Ambiguities))
	for _, amb := range w.Ambiguities {
		out = append(out, amb.Super)
	}
	return out
}

func (w *AmbiguityWarning) Error() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "(E%03d) ambiguities exist in dispatched function %s\n\n", w.Code(), w.Name)
	sb.WriteString("the following signatures may result in ambiguous behavior:\n")
	for _, amb := range w.Ambiguities {
		first, second := amb.Pair.Unpack()
		fmt.Fprintf(sb, "\t[%s], [%s]\n", first, second)
	}
	sb.WriteString("\nconsider making the following additions:\n")
	for _, super := range w.Suggestions() {
		fmt.Fprintf(sb, "\t%s(%s)\n", w.Name, super)
	}
	return sb.String()
}

func (w *AmbiguityWarning) LogValue() slog.Value {
	var vals []slog.Attr
	for i, amb := range w.Ambiguities {
		first, second := amb.Pair.Unpack()
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("a", i),
			Value: slog.GroupValue(
				slog.String("first", first.String()),
				slog.String("second", second.String()),
				slog.String("suggested", amb.Super.String()),
			),
		})
	}
	return slog.GroupValue(vals...)
}
