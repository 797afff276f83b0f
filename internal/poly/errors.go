package poly

import (
	"errors"
	"fmt"
)

// Error kinds returned by the engine. Match them with errors.Is.
var (
	// ErrValue indicates an invalid numeric parameter: a negative order or
	// degree, too many integration constants, or a degenerate coefficient
	// sequence.
	ErrValue = errors.New("poly: invalid value")

	// ErrShape indicates inputs whose shapes cannot be broadcast together or
	// whose lengths disagree.
	ErrShape = errors.New("poly: incompatible shapes")

	// ErrType indicates an input of the wrong dimensionality.
	ErrType = errors.New("poly: wrong dimensionality")

	// ErrZeroDivision indicates division by the zero polynomial.
	ErrZeroDivision = errors.New("poly: division by zero polynomial")
)

// Error records the operation that failed along with the error kind.
type Error struct {
	Op     string
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
