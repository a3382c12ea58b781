package dispatch

import (
	"errors"
	"fmt"

	"github.com/cottand/mdispatch/types"
)

type ErrCode int

const (
	CodeNone ErrCode = iota
	CodeNoMatch
	CodeAmbiguous
)

// ErrNoMatch is wrapped by every error reporting that no registered signature
// accepts the argument types of a call
var ErrNoMatch = errors.New("no matching implementation")

// NoMatchError is returned by resolution when no registered signature has the
// call's arity and dominates each of its argument types.
// There is no fallback implementation.
type NoMatchError struct {
	// Name of the dispatcher
	Name  string
	Types types.Signature
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("(E%03d) %s: %s has no signature accepting (%s)", e.Code(), ErrNoMatch, e.Name, e.Types)
}

func (e *NoMatchError) Code() ErrCode { return CodeNoMatch }

func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}
