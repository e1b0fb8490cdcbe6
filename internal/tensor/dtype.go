// Package tensor provides the native array model used by the host boundary layer.
package tensor

import "fmt"

// DType is a constraint for Go element types backing a tensor.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// DefaultFloat is the data type given to floating scalars when no target
// data type is requested.
const DefaultFloat = Float32

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloating reports whether the data type holds floating point values.
func (dt DataType) IsFloating() bool {
	return dt == Float32 || dt == Float64
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt >= Float32 && dt <= Bool
}

// ParseDataType resolves a data type from its String() name.
func ParseDataType(name string) (DataType, error) {
	for dt := Float32; dt <= Bool; dt++ {
		if dt.String() == name {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unknown data type %q", name)
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
