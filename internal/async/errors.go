package async

import (
	"errors"
	"fmt"
)

// ErrDoubleCompletion is the panic value raised when a native computation
// completes the same pending computation twice. It is a programming error
// and is never delivered to the host.
var ErrDoubleCompletion = errors.New("async: computation completed twice")

// NativeError is the rejection reason of a future whose native computation
// failed.
type NativeError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *NativeError) Error() string {
	return e.Message
}

// Unwrap returns the underlying native error.
func (e *NativeError) Unwrap() error {
	return e.Cause
}

func nativeError(err error) *NativeError {
	var ne *NativeError
	if errors.As(err, &ne) {
		return ne
	}
	return &NativeError{Message: err.Error(), Cause: err}
}

func panicError(r any) *NativeError {
	if err, ok := r.(error); ok {
		return &NativeError{Message: err.Error(), Cause: err}
	}
	return &NativeError{Message: fmt.Sprint(r)}
}
