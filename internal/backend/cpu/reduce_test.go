package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/born-host/internal/tensor"
)

func TestSum(t *testing.T) {
	backend := newTestBackend(t)
	// [[1, 2, 3],
	//  [4, 5, 6]]
	x := mustFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	tests := []struct {
		name     string
		axes     []int
		keepDims bool
		shape    tensor.Shape
		want     []float32
	}{
		{"All", []int{0, 1}, false, tensor.Shape{}, []float32{21}},
		{"AllKeepDims", []int{0, 1}, true, tensor.Shape{1, 1}, []float32{21}},
		{"Rows", []int{1}, false, tensor.Shape{2}, []float32{6, 15}},
		{"Cols", []int{0}, true, tensor.Shape{1, 3}, []float32{5, 7, 9}},
		{"ReversedOrder", []int{1, 0}, false, tensor.Shape{}, []float32{21}},
		{"NoAxes", nil, false, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := backend.Sum(x, tt.axes, tt.keepDims)
			assert.Equal(t, tt.shape, result.Shape())
			assert.Equal(t, tt.want, result.AsFloat32())
		})
	}
}

func TestSumRejectsDuplicateAxes(t *testing.T) {
	backend := newTestBackend(t)
	x := mustFromSlice(t, []float32{1, 2}, tensor.Shape{2})
	assert.PanicsWithValue(t, "sum: received duplicate axis 0", func() {
		backend.Sum(x, []int{0, 0}, false)
	})
	assert.Panics(t, func() { backend.Sum(x, []int{1}, false) })
}

func TestSumBool(t *testing.T) {
	backend := newTestBackend(t)
	x := mustFromSlice(t, []bool{true, true, false}, tensor.Shape{3})
	result := backend.Sum(x, []int{0}, false)
	assert.Equal(t, tensor.Int32, result.DType())
	assert.Equal(t, []int32{2}, result.AsInt32())
}

func TestMean(t *testing.T) {
	backend := newTestBackend(t)
	x := mustFromSlice(t, []int32{1, 2, 3, 4}, tensor.Shape{2, 2})
	result := backend.Mean(x, []int{1}, false)
	assert.Equal(t, tensor.DefaultFloat, result.DType())
	assert.Equal(t, []float32{1.5, 3.5}, result.AsFloat32())
}

func TestMax(t *testing.T) {
	backend := newTestBackend(t)
	x := mustFromSlice(t, []float64{3, -1, 7, 2}, tensor.Shape{2, 2})
	assert.Equal(t, []float64{3, 7}, backend.Max(x, []int{1}, false).AsFloat64())
	assert.Equal(t, []float64{7}, backend.Max(x, []int{0, 1}, false).AsFloat64())

	empty, err := tensor.NewRaw(tensor.Shape{0}, tensor.Float32, tensor.CPU)
	assert.NoError(t, err)
	assert.Panics(t, func() { backend.Max(empty, []int{0}, false) })
}
