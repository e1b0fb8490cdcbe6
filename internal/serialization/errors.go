package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrHeaderTooLarge   = errors.New("header exceeds maximum size")
	ErrOutOfBounds      = errors.New("tensor extends beyond data section")
	ErrUnsupportedDType = errors.New("unsupported dtype")
	ErrInvalidTensor    = errors.New("invalid tensor entry")
)

// ValidationError reports a malformed tensor entry.
type ValidationError struct {
	Tensor string
	Err    error
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("tensor %q: %v: %s", e.Tensor, e.Err, e.Detail)
}

// Unwrap returns the error class.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
