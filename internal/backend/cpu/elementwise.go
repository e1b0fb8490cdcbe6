package cpu

import (
	"fmt"

	"github.com/born-ml/born-host/internal/parallel"
	"github.com/born-ml/born-host/internal/tensor"
)

// promotion ranks data types from narrowest to widest.
var promotion = map[tensor.DataType]int{
	tensor.Bool:    0,
	tensor.Uint8:   1,
	tensor.Int32:   2,
	tensor.Int64:   3,
	tensor.Float32: 4,
	tensor.Float64: 5,
}

// PromoteTypes returns the data type both operands are computed in.
func PromoteTypes(a, b tensor.DataType) tensor.DataType {
	if promotion[a] >= promotion[b] {
		return a
	}
	return b
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, PromoteTypes(a.DType(), b.DType()), func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with NumPy-style broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, PromoteTypes(a.DType(), b.DType()), func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with NumPy-style broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, PromoteTypes(a.DType(), b.DType()), func(x, y float64) float64 { return x * y })
}

// Div performs true division with NumPy-style broadcasting. Integer and
// boolean operands produce the default floating type.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	out := PromoteTypes(a.DType(), b.DType())
	if !out.IsFloating() {
		out = tensor.DefaultFloat
	}
	return cpu.binary("div", a, b, out, func(x, y float64) float64 { return x / y })
}

// binary evaluates op over the broadcast of a and b into a new tensor of
// dtype out.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, out tensor.DataType, op func(x, y float64) float64) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, out, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	if !needsBroadcast {
		// Fast path: identical shapes share flat indices.
		parallel.Chunks(outShape.NumElements(), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				result.SetFloat64At(i, op(a.Float64At(i), b.Float64At(i)))
			}
		}, cpu.parallel)
		return result
	}

	aShape, bShape := a.Shape(), b.Shape()
	parallel.Chunks(outShape.NumElements(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			x := a.Float64At(tensor.BroadcastIndex(i, outShape, aShape))
			y := b.Float64At(tensor.BroadcastIndex(i, outShape, bShape))
			result.SetFloat64At(i, op(x, y))
		}
	}, cpu.parallel)
	return result
}
