package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/born-host/internal/tensor"
)

// Sum reduces x by addition over axes.
//
// Parameters:
//   - axes: normalized dimensions to reduce, each in [0, rank); duplicates are rejected
//   - keepDims: if true, keep reduced dimensions with size 1; if false, remove them
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	y := backend.Sum(x, []int{1}, true)     // shape: [2, 1]
//	z := backend.Sum(x, []int{0, 1}, false) // shape: []
func (cpu *CPUBackend) Sum(x *tensor.RawTensor, axes []int, keepDims bool) *tensor.RawTensor {
	return cpu.reduce("sum", x, axes, keepDims, 0, func(acc, v float64) float64 { return acc + v }, nil)
}

// Mean reduces x by arithmetic mean over axes. Integer inputs produce the
// default floating type.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor, axes []int, keepDims bool) *tensor.RawTensor {
	count := 1
	for _, ax := range axes {
		if ax >= 0 && ax < x.Rank() {
			count *= x.Shape()[ax]
		}
	}
	return cpu.reduce("mean", x, axes, keepDims, 0,
		func(acc, v float64) float64 { return acc + v },
		func(acc float64) float64 { return acc / float64(count) })
}

// Max reduces x to its largest element over axes.
func (cpu *CPUBackend) Max(x *tensor.RawTensor, axes []int, keepDims bool) *tensor.RawTensor {
	for _, ax := range axes {
		if ax >= 0 && ax < x.Rank() && x.Shape()[ax] == 0 {
			panic("max: cannot reduce over an empty dimension")
		}
	}
	return cpu.reduce("max", x, axes, keepDims, math.Inf(-1), math.Max, nil)
}

// reduce folds every element of x into the output cell selected by the
// non-reduced coordinates. finish, if set, post-processes each cell.
func (cpu *CPUBackend) reduce(name string, x *tensor.RawTensor, axes []int, keepDims bool,
	init float64, fold func(acc, v float64) float64, finish func(float64) float64,
) *tensor.RawTensor {
	shape := x.Shape()
	reduced := make([]bool, len(shape))
	for _, ax := range axes {
		if ax < 0 || ax >= len(shape) {
			panic(fmt.Sprintf("%s: axis %d out of range for %dD tensor", name, ax, len(shape)))
		}
		if reduced[ax] {
			panic(fmt.Sprintf("%s: received duplicate axis %d", name, ax))
		}
		reduced[ax] = true
	}

	// keptShape keeps reduced dims as 1; it indexes the accumulator.
	keptShape := shape.Clone()
	outShape := make(tensor.Shape, 0, len(shape))
	for d, size := range shape {
		if reduced[d] {
			keptShape[d] = 1
			if keepDims {
				outShape = append(outShape, 1)
			}
			continue
		}
		outShape = append(outShape, size)
	}

	outType := x.DType()
	if name == "mean" && !outType.IsFloating() {
		outType = tensor.DefaultFloat
	}
	if name == "sum" && outType == tensor.Bool {
		outType = tensor.Int32
	}

	acc := make([]float64, keptShape.NumElements())
	for i := range acc {
		acc[i] = init
	}

	inStrides := shape.ComputeStrides()
	keptStrides := keptShape.ComputeStrides()
	for i := range x.NumElements() {
		out := 0
		for d := range shape {
			if reduced[d] {
				continue
			}
			out += (i / inStrides[d]) % shape[d] * keptStrides[d]
		}
		acc[out] = fold(acc[out], x.Float64At(i))
	}

	result, err := tensor.NewRaw(outShape, outType, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	for i, v := range acc {
		if finish != nil {
			v = finish(v)
		}
		result.SetFloat64At(i, v)
	}
	return result
}
