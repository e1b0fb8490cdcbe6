package convert

import "github.com/born-ml/born-host/internal/tensor"

// ToArray promotes an operand to a native array. Scalars become zero-rank
// arrays (bool for booleans, tensor.DefaultFloat for numbers); arrays are
// returned unchanged.
func ToArray(v ScalarOrArray) *tensor.RawTensor {
	switch v.kind {
	case KindBool:
		return tensor.ScalarBool(v.b, tensor.Bool)
	case KindFloat:
		return tensor.Scalar(v.f, tensor.DefaultFloat)
	default:
		return v.array
	}
}

// ToArrayAs promotes an operand to a native array of dtype. Scalars are
// built directly in dtype. An array already of dtype is returned unchanged;
// otherwise c produces a new cast array and the input is left untouched.
func ToArrayAs(v ScalarOrArray, dtype tensor.DataType, c tensor.Caster) *tensor.RawTensor {
	switch v.kind {
	case KindBool:
		return tensor.ScalarBool(v.b, dtype)
	case KindFloat:
		return tensor.Scalar(v.f, dtype)
	default:
		if v.array.DType() == dtype {
			return v.array
		}
		return c.Cast(v.array, dtype)
	}
}
