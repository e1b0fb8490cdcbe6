package convert

import "github.com/born-ml/born-host/internal/tensor"

// Native is implemented by host objects that wrap a native value, such as
// handle references. Native returns false once the wrapped value is gone.
type Native interface {
	Native() (any, bool)
}

// ArrayName is the host-facing name of the native array type.
const ArrayName = "Tensor"

// Array converts native arrays. On the way in it accepts a live
// *tensor.RawTensor or a Native wrapping one; on the way out it hands the
// array to wrap, which typically registers it in a handle table. A nil wrap
// returns the bare array.
func Array(wrap func(*tensor.RawTensor) any) Type[*tensor.RawTensor] {
	return Type[*tensor.RawTensor]{
		Name: ArrayName,
		From: unwrapArray,
		To: func(t *tensor.RawTensor) any {
			if wrap == nil {
				return t
			}
			return wrap(t)
		},
	}
}

func unwrapArray(v any) (*tensor.RawTensor, bool) {
	if n, ok := v.(Native); ok {
		obj, ok := n.Native()
		if !ok {
			return nil, false
		}
		v = obj
	}
	t, ok := v.(*tensor.RawTensor)
	if !ok || t == nil || t.Released() {
		return nil, false
	}
	return t, true
}
