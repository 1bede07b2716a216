package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates function text that is not a valid expression.
	ErrParse = errors.New("symbolic: malformed expression")

	// ErrFormat indicates a numeric literal (such as an integration bound) that cannot be read.
	ErrFormat = errors.New("symbolic: malformed number")

	// ErrNotOrderable indicates a complex or undefined value compared against zero.
	ErrNotOrderable = errors.New("symbolic: value cannot be ordered against zero")

	// ErrDivergent indicates a singularity of the integrand on the interval that
	// is not integrable.
	ErrDivergent = errors.New("symbolic: integral diverges on the interval")

	// ErrNotIntegrable indicates an integrand that is not real and finite on the interval.
	ErrNotIntegrable = errors.New("symbolic: integrand is not real and finite on the interval")
)

// ParseError carries the input column where parsing stopped.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at column %d: %s", e.Pos+1, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// FormatError reports text that is not a real number.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid number %q", e.Input)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}
