package tensor

import "fmt"

// FromSlice creates a CPU tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), CPU)
	if err != nil {
		return nil, err
	}
	copy(view[T](raw), data)
	return raw, nil
}

// FromFloat64s creates a CPU tensor of the given dtype from float64 values,
// narrowing each element with SetFloat64At.
func FromFloat64s(data []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	for i, v := range data {
		raw.SetFloat64At(i, v)
	}
	return raw, nil
}

// Full creates a tensor of the given shape and dtype filled with value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	if value != 0 {
		for i := range raw.NumElements() {
			raw.SetFloat64At(i, value)
		}
	}
	return raw, nil
}

// Scalar creates a zero-rank tensor holding value in the given dtype.
func Scalar(value float64, dtype DataType) *RawTensor {
	raw, err := Full(nil, value, dtype)
	if err != nil {
		panic(err) // dtype is validated by callers
	}
	return raw
}

// ScalarBool creates a zero-rank tensor holding b in the given dtype.
func ScalarBool(b bool, dtype DataType) *RawTensor {
	if b {
		return Scalar(1, dtype)
	}
	return Scalar(0, dtype)
}
