package critical

import (
	"errors"
	"fmt"

	"github.com/san-kum/extrema/internal/symbolic"
)

var (
	// ErrIndeterminate indicates a second derivative that cannot be compared with zero.
	ErrIndeterminate = errors.New("critical: concavity cannot be ordered against zero")

	// ErrNonReal indicates a root of the first derivative that is not a real number.
	ErrNonReal = errors.New("critical: location is not real")

	// ErrUnknownPolicy indicates a policy name other than skip or strict.
	ErrUnknownPolicy = errors.New("critical: unknown policy")
)

// IndeterminateError carries the candidate and the concavity that could not
// be ordered.
type IndeterminateError struct {
	Location  symbolic.Expr
	Concavity symbolic.Value
}

func (e *IndeterminateError) Error() string {
	return fmt.Sprintf("critical: concavity %s at %s cannot be ordered against zero", e.Concavity, e.Location)
}

func (e *IndeterminateError) Unwrap() error {
	return ErrIndeterminate
}
