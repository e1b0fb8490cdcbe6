// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package host

import (
	"go.uber.org/zap"

	"github.com/born-ml/born-host/internal/async"
	"github.com/born-ml/born-host/internal/convert"
	"github.com/born-ml/born-host/internal/handle"
	"github.com/born-ml/born-host/internal/inspect"
	"github.com/born-ml/born-host/internal/tensor"
)

func (r *Runtime) registerArrayOps() {
	r.funcs["array"] = r.newArray
	r.funcs["reshape"] = r.reshape
	r.funcs["astype"] = r.astype
	r.funcs["add"] = r.binary(r.backend.Add)
	r.funcs["subtract"] = r.binary(r.backend.Sub)
	r.funcs["multiply"] = r.binary(r.backend.Mul)
	r.funcs["divide"] = r.binary(r.backend.Div)
	r.funcs["sum"] = r.reduction(r.backend.Sum)
	r.funcs["mean"] = r.reduction(r.backend.Mean)
	r.funcs["max"] = r.reduction(r.backend.Max)
	r.funcs["stack"] = r.stack
	r.funcs["shape"] = r.shape
	r.funcs["dtype"] = r.dtype
	r.funcs["tolist"] = r.tolist
	r.funcs["evalAsync"] = r.evalAsync
	r.funcs["dispose"] = r.dispose
	r.funcs["toString"] = r.toString
}

// array(list, dtype?) builds an array from a scalar or nested lists.
func (r *Runtime) newArray(args *convert.Arguments) (any, error) {
	value, err := convert.Next(args, convert.Value)
	if err != nil {
		return nil, err
	}
	dtype, ok, err := convert.Optional(args, convert.DataType)
	if err != nil {
		return nil, err
	}

	var t *tensor.RawTensor
	if ok {
		t, err = convert.FromNestedAs(value, dtype)
	} else {
		t, err = convert.FromNested(value)
	}
	if err != nil {
		return nil, err
	}
	return r.array.ToHost(t), nil
}

// reshape(a, shape) or reshape(a, d0, d1, ...).
func (r *Runtime) reshape(args *convert.Arguments) (any, error) {
	a, err := convert.Next(args, r.array)
	if err != nil {
		return nil, err
	}

	var shape tensor.Shape
	if args.Remaining() == 1 {
		s, err := convert.Next(args, convert.Shape)
		if err != nil {
			return nil, err
		}
		shape = convert.NormalizeShapeArg(s)
	} else {
		dims, err := convert.Collect(args, convert.Int)
		if err != nil {
			return nil, err
		}
		shape = dims
	}
	return r.array.ToHost(r.backend.Reshape(a, shape)), nil
}

// astype(a, dtype) returns a unchanged when it already has dtype.
func (r *Runtime) astype(args *convert.Arguments) (any, error) {
	first := args.Index()
	a, err := convert.Next(args, r.array)
	if err != nil {
		return nil, err
	}
	dtype, err := convert.Next(args, convert.DataType)
	if err != nil {
		return nil, err
	}
	out := convert.ToArrayAs(convert.ArrayOperand(a), dtype, r.backend)
	if out == a {
		return args.At(first), nil
	}
	return r.array.ToHost(out), nil
}

func (r *Runtime) binary(op func(a, b *tensor.RawTensor) *tensor.RawTensor) Func {
	return func(args *convert.Arguments) (any, error) {
		a, err := convert.Next(args, r.operand)
		if err != nil {
			return nil, err
		}
		b, err := convert.Next(args, r.operand)
		if err != nil {
			return nil, err
		}
		x, y := r.operands(a, b)
		return r.array.ToHost(op(x, y)), nil
	}
}

// operands promotes a pair of operands to arrays. A scalar paired with an
// array takes the array's dtype.
func (r *Runtime) operands(a, b convert.ScalarOrArray) (*tensor.RawTensor, *tensor.RawTensor) {
	switch {
	case a.Kind() == convert.KindArray && b.Kind() != convert.KindArray:
		return a.Array(), convert.ToArrayAs(b, a.Array().DType(), r.backend)
	case b.Kind() == convert.KindArray && a.Kind() != convert.KindArray:
		return convert.ToArrayAs(a, b.Array().DType(), r.backend), b.Array()
	default:
		return convert.ToArray(a), convert.ToArray(b)
	}
}

func (r *Runtime) reduction(op func(*tensor.RawTensor, []int, bool) *tensor.RawTensor) Func {
	return func(args *convert.Arguments) (any, error) {
		a, err := convert.Next(args, r.array)
		if err != nil {
			return nil, err
		}
		axesArg, err := convert.Next(args, convert.Axes)
		if err != nil {
			return nil, err
		}
		keepDims, _, err := convert.Optional(args, convert.Bool)
		if err != nil {
			return nil, err
		}
		axes, err := convert.ResolveReduceAxes(axesArg, a.Rank())
		if err != nil {
			return nil, err
		}
		return r.array.ToHost(op(a, axes, keepDims)), nil
	}
}

// stack(...arrays) joins arrays along a new leading axis.
func (r *Runtime) stack(args *convert.Arguments) (any, error) {
	arrays, err := convert.Collect(args, r.array)
	if err != nil {
		return nil, err
	}
	if len(arrays) == 0 {
		return nil, &convert.TypeMismatchError{Expected: convert.ArrayName, Index: 0}
	}
	return r.array.ToHost(r.backend.Stack(arrays, 0)), nil
}

func (r *Runtime) shape(args *convert.Arguments) (any, error) {
	a, err := convert.Next(args, r.array)
	if err != nil {
		return nil, err
	}
	return convert.Sequence[tensor.Shape](convert.Int, convert.Inline{N: 4}).ToHost(a.Shape()), nil
}

func (r *Runtime) dtype(args *convert.Arguments) (any, error) {
	a, err := convert.Next(args, r.array)
	if err != nil {
		return nil, err
	}
	return convert.DataType.ToHost(a.DType()), nil
}

func (r *Runtime) tolist(args *convert.Arguments) (any, error) {
	a, err := convert.Next(args, r.array)
	if err != nil {
		return nil, err
	}
	return convert.ToNested(a), nil
}

// evalAsync(...arrays) schedules evaluation on the device queue and returns
// a future that resolves to nil once every array is computed.
func (r *Runtime) evalAsync(args *convert.Arguments) (any, error) {
	arrays, err := convert.Collect(args, r.array)
	if err != nil {
		return nil, err
	}

	logger := r.logger
	f := async.Run(r.loop, func(c async.Completer[[]*tensor.RawTensor]) error {
		ev, ok := r.backend.(tensor.Evaluator)
		if !ok {
			c.Resolve(arrays)
			return nil
		}
		ev.Eval(arrays, c.Done(arrays))
		return nil
	}, func([]*tensor.RawTensor) any {
		return nil
	}, func() {
		logger.Debug("eval settled", zap.Int("arrays", len(arrays)))
	})
	return f, nil
}

// dispose(a) destroys the handle. It returns false if a was already gone.
func (r *Runtime) dispose(args *convert.Arguments) (any, error) {
	ref, err := convert.Next(args, refType)
	if err != nil {
		return nil, err
	}
	return ref.Destroy(), nil
}

// toString(a) renders a handle, including one that was disposed.
func (r *Runtime) toString(args *convert.Arguments) (any, error) {
	v, err := convert.Next(args, convert.Type[inspect.Resolver]{
		Name: convert.ArrayName,
		From: func(v any) (inspect.Resolver, bool) {
			if t, ok := v.(*tensor.RawTensor); ok {
				return bareArray{t}, true
			}
			res, ok := v.(inspect.Resolver)
			return res, ok
		},
	})
	if err != nil {
		return nil, err
	}
	return inspect.Describe(v), nil
}

var refType = convert.Type[*handle.Ref]{
	Name: convert.ArrayName,
	From: func(v any) (*handle.Ref, bool) {
		ref, ok := v.(*handle.Ref)
		return ref, ok && ref != nil
	},
}

// bareArray lets Go callers inspect an unwrapped array.
type bareArray struct{ t *tensor.RawTensor }

func (b bareArray) Native() (any, bool) { return b.t, b.t != nil }
