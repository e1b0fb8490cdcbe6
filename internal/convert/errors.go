package convert

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrInvalidAxis  = errors.New("invalid axis")
)

// TypeMismatchError reports a host value that could not be converted to any
// candidate type.
type TypeMismatchError struct {
	Expected string // Name of the expected type
	Index    int    // Argument position, or -1 when not read from a call site
	Value    any    // Offending host value (nil when the argument is missing)
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	got := "nothing"
	if e.Value != nil {
		got = fmt.Sprintf("%T", e.Value)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("argument %d: expected %s, got %s", e.Index, e.Expected, got)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, got)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// AxisError reports an axis outside [-rank, rank).
type AxisError struct {
	Axis int // Axis as supplied by the caller
	Rank int // Rank of the array being indexed
}

// Error implements the error interface.
func (e *AxisError) Error() string {
	return fmt.Sprintf("axis %d is out of bounds for array of dimension %d", e.Axis, e.Rank)
}

// Is reports whether target is ErrInvalidAxis.
func (e *AxisError) Is(target error) bool {
	return target == ErrInvalidAxis
}

func mismatch(expected string, index int, value any) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected, Index: index, Value: value}
}
