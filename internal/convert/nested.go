package convert

import (
	"errors"
	"fmt"

	"github.com/born-ml/born-host/internal/tensor"
)

// ErrRagged is returned when nested host lists do not form a rectangle.
var ErrRagged = errors.New("nested lists have inconsistent lengths")

type flattener struct {
	shape   tensor.Shape
	values  []float64
	allBool bool
}

// FromNested builds an array from a scalar or nested host lists. Leaves may
// be booleans or numbers. Without an explicit dtype the result is bool when
// every leaf is a boolean and tensor.DefaultFloat otherwise.
func FromNested(v any) (*tensor.RawTensor, error) {
	f, err := flatten(v)
	if err != nil {
		return nil, err
	}
	dtype := tensor.DefaultFloat
	if f.allBool && len(f.values) > 0 {
		dtype = tensor.Bool
	}
	return tensor.FromFloat64s(f.values, f.shape, dtype)
}

// FromNestedAs is FromNested with an explicit element dtype.
func FromNestedAs(v any, dtype tensor.DataType) (*tensor.RawTensor, error) {
	f, err := flatten(v)
	if err != nil {
		return nil, err
	}
	return tensor.FromFloat64s(f.values, f.shape, dtype)
}

func flatten(v any) (*flattener, error) {
	f := &flattener{shape: inferShape(v), allBool: true}
	if err := f.walk(v, 0); err != nil {
		return nil, err
	}
	return f, nil
}

// inferShape follows the first element of each level.
func inferShape(v any) tensor.Shape {
	var shape tensor.Shape
	for {
		items, ok := hostList(v)
		if !ok {
			return shape
		}
		shape = append(shape, len(items))
		if len(items) == 0 {
			return shape
		}
		v = items[0]
	}
}

func (f *flattener) walk(v any, depth int) error {
	if depth == len(f.shape) {
		if _, isList := hostList(v); isList {
			return fmt.Errorf("%w: unexpected list at depth %d", ErrRagged, depth)
		}
		return f.leaf(v)
	}
	items, ok := hostList(v)
	if !ok || len(items) != f.shape[depth] {
		return fmt.Errorf("%w: at depth %d", ErrRagged, depth)
	}
	for _, item := range items {
		if err := f.walk(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) leaf(v any) error {
	if b, ok := v.(bool); ok {
		if b {
			f.values = append(f.values, 1)
		} else {
			f.values = append(f.values, 0)
		}
		return nil
	}
	x, ok := Float.From(v)
	if !ok {
		return mismatch(Bool.Name+" | "+Float.Name, -1, v)
	}
	f.allBool = false
	f.values = append(f.values, x)
	return nil
}

// ToNested renders an array as host values: a scalar for rank 0, nested
// lists otherwise. Bool arrays yield booleans, every other dtype float64.
func ToNested(t *tensor.RawTensor) any {
	if t.Rank() == 0 {
		return t.Item()
	}
	return nest(t, 0, 0)
}

func nest(t *tensor.RawTensor, dim, offset int) []any {
	n := t.Shape()[dim]
	stride := t.Strides()[dim]
	out := make([]any, n)
	for i := range out {
		at := offset + i*stride
		switch {
		case dim < t.Rank()-1:
			out[i] = nest(t, dim+1, at)
		case t.DType() == tensor.Bool:
			out[i] = t.AsBool()[at]
		default:
			out[i] = t.Float64At(at)
		}
	}
	return out
}
