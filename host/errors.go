// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"

	"github.com/born-ml/born-host/internal/async"
	"github.com/born-ml/born-host/internal/convert"
)

// Errors reported by the call boundary.
var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrTypeMismatch    = convert.ErrTypeMismatch
	ErrInvalidAxis     = convert.ErrInvalidAxis
)

// NativeError carries a failure raised by the native library.
type NativeError = async.NativeError

// CallError reports a failed call to a named function.
type CallError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}
