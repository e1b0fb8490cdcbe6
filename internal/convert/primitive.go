package convert

import (
	"math"

	"github.com/born-ml/born-host/internal/tensor"
)

// Bool accepts only host booleans; numbers are not truthy here.
var Bool = Type[bool]{
	Name: "Boolean",
	From: func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	},
	To: func(b bool) any { return b },
}

// Float accepts any host number. Booleans are rejected so that variants
// listing bool before float keep their meaning.
var Float = Type[float64]{
	Name: "Number",
	From: coerceToFloat64,
	To:   func(f float64) any { return f },
}

// Int accepts host numbers that are integral and fit in 32 bits.
var Int = Type[int]{
	Name: "Integer",
	From: func(v any) (int, bool) {
		i, ok := coerceToInt32(v)
		return int(i), ok
	},
	To: func(i int) any { return float64(i) },
}

// String accepts host strings.
var String = Type[string]{
	Name: "String",
	From: func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	},
	To: func(s string) any { return s },
}

// DataType accepts a tensor.DataType or its name ("float32", "int32", ...).
// Data types travel to the host by name.
var DataType = Type[tensor.DataType]{
	Name: "Dtype",
	From: func(v any) (tensor.DataType, bool) {
		switch d := v.(type) {
		case tensor.DataType:
			return d, d.Valid()
		case string:
			dt, err := tensor.ParseDataType(d)
			return dt, err == nil
		}
		return 0, false
	},
	To: func(dt tensor.DataType) any { return dt.String() },
}

func coerceToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func coerceToInt32(value any) (int32, bool) {
	switch v := value.(type) {
	case int32:
		return v, true
	case int8:
		return int32(v), true
	case int16:
		return int32(v), true
	case uint8:
		return int32(v), true
	case uint16:
		return int32(v), true
	case float64:
		if v >= math.MinInt32 && v <= math.MaxInt32 && v == float64(int32(v)) {
			return int32(v), true
		}
	case float32:
		if v >= math.MinInt32 && v <= math.MaxInt32 && v == float32(int32(v)) {
			return int32(v), true
		}
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v), true
		}
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v), true
		}
	case uint:
		if v <= math.MaxInt32 {
			return int32(v), true
		}
	case uint32:
		if v <= math.MaxInt32 {
			return int32(v), true
		}
	case uint64:
		if v <= math.MaxInt32 {
			return int32(v), true
		}
	}
	return 0, false
}

// Value passes any host value through unchanged, including nil.
var Value = Type[any]{
	Name: "Value",
	From: func(v any) (any, bool) { return v, true },
}
