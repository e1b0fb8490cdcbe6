package cpu

import (
	"fmt"

	"github.com/born-ml/born-host/internal/tensor"
)

// Reshape returns a tensor with the same data and a new shape.
// At most one dimension may be -1; it is inferred from the element count.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	shape := newShape.Clone()
	infer := -1
	known := 1
	for i, dim := range shape {
		switch {
		case dim == -1 && infer == -1:
			infer = i
		case dim == -1:
			panic(fmt.Sprintf("reshape: can only infer one dimension, got %v", newShape))
		case dim < 0:
			panic(fmt.Sprintf("reshape: invalid dimension %d in %v", dim, newShape))
		default:
			known *= dim
		}
	}
	if infer >= 0 {
		if known == 0 || t.NumElements()%known != 0 {
			panic(fmt.Sprintf("reshape: cannot infer dimension of %v for %d elements", newShape, t.NumElements()))
		}
		shape[infer] = t.NumElements() / known
	}

	if shape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape array of shape %v into %v", t.Shape(), newShape))
	}

	result, err := tensor.NewRaw(shape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(result.Data(), t.Data())
	return result
}

// Stack joins tensors of identical shape along a new axis in [0, rank].
// The result takes the promoted dtype of all inputs.
func (cpu *CPUBackend) Stack(tensors []*tensor.RawTensor, axis int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("stack: no arrays provided")
	}
	base := tensors[0].Shape()
	dtype := tensors[0].DType()
	for i, t := range tensors[1:] {
		if !t.Shape().Equal(base) {
			panic(fmt.Sprintf("stack: array %d has shape %v, want %v", i+1, t.Shape(), base))
		}
		dtype = PromoteTypes(dtype, t.DType())
	}
	if axis < 0 || axis > len(base) {
		panic(fmt.Sprintf("stack: axis %d out of range for %dD result", axis, len(base)+1))
	}

	outShape := make(tensor.Shape, 0, len(base)+1)
	outShape = append(outShape, base[:axis]...)
	outShape = append(outShape, len(tensors))
	outShape = append(outShape, base[axis:]...)

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("stack: %v", err))
	}

	// inner is the number of contiguous elements below axis in each input.
	inner := base[axis:].NumElements()
	outer := base[:axis].NumElements()
	n := len(tensors)
	for o := range outer {
		for k, t := range tensors {
			for j := range inner {
				result.SetFloat64At((o*n+k)*inner+j, t.Float64At(o*inner+j))
			}
		}
	}
	return result
}
