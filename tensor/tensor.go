// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/born-host/internal/tensor"

// RawTensor is a native array: data type, shape and a reference-counted
// buffer. Release is idempotent and Released reports liveness.
type RawTensor = tensor.RawTensor

// Shape is an ordered list of non-negative dimension sizes.
type Shape = tensor.Shape

// DataType is the element type of an array.
type DataType = tensor.DataType

// Device identifies where an array's buffer lives.
type Device = tensor.Device

// Backend performs array operations. See internal/backend/cpu for the
// reference implementation.
type Backend = tensor.Backend

// Evaluator is implemented by backends with an asynchronous device queue.
type Evaluator = tensor.Evaluator

// DType constrains Go element types that can back an array.
type DType = tensor.DType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Uint8   = tensor.Uint8
	Bool    = tensor.Bool
)

// DefaultFloat is the data type given to floating scalars.
const DefaultFloat = tensor.DefaultFloat

// Devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// FromSlice creates an array from a Go slice. The data is copied.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Scalar creates a zero-rank array holding value.
func Scalar(value float64, dtype DataType) *RawTensor {
	return tensor.Scalar(value, dtype)
}

// ParseDataType resolves a data type from its name, e.g. "float32".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}
