package cpu

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-host/internal/parallel"
	"github.com/born-ml/born-host/internal/tensor"
)

// Helper to create test backend.
func newTestBackend(t *testing.T) *CPUBackend {
	t.Helper()
	backend := NewWithConfig(parallel.Sequential())
	t.Cleanup(backend.Release)
	return backend
}

func mustFromSlice[T tensor.DType](t *testing.T, data []T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return raw
}

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := newTestBackend(t)
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}

func TestCPUBackend_Add(t *testing.T) {
	backend := newTestBackend(t)

	t.Run("SameShape", func(t *testing.T) {
		a := mustFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})
		b := mustFromSlice(t, []float32{10, 20, 30}, tensor.Shape{3})
		assert.Equal(t, []float32{11, 22, 33}, backend.Add(a, b).AsFloat32())
	})

	t.Run("BroadcastScalar", func(t *testing.T) {
		a := mustFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
		result := backend.Add(a, tensor.Scalar(1, tensor.Float32))
		assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
		assert.Equal(t, []float32{2, 3, 4, 5}, result.AsFloat32())
	})

	t.Run("Promotion", func(t *testing.T) {
		a := mustFromSlice(t, []int32{1, 2}, tensor.Shape{2})
		b := mustFromSlice(t, []float64{0.5, 0.5}, tensor.Shape{2})
		result := backend.Add(a, b)
		assert.Equal(t, tensor.Float64, result.DType())
		assert.Equal(t, []float64{1.5, 2.5}, result.AsFloat64())
	})

	t.Run("Incompatible", func(t *testing.T) {
		a := mustFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})
		b := mustFromSlice(t, []float32{1, 2}, tensor.Shape{2})
		assert.Panics(t, func() { backend.Add(a, b) })
	})
}

func TestCPUBackend_DivIntegers(t *testing.T) {
	backend := newTestBackend(t)
	a := mustFromSlice(t, []int32{1, 3}, tensor.Shape{2})
	b := mustFromSlice(t, []int32{2, 2}, tensor.Shape{2})
	result := backend.Div(a, b)
	assert.Equal(t, tensor.DefaultFloat, result.DType())
	assert.Equal(t, []float32{0.5, 1.5}, result.AsFloat32())
}

func TestCPUBackend_Cast(t *testing.T) {
	backend := newTestBackend(t)
	x := mustFromSlice(t, []float32{1.7, -2, 0}, tensor.Shape{3})

	assert.Same(t, x, backend.Cast(x, tensor.Float32))
	assert.Equal(t, []int32{1, -2, 0}, backend.Cast(x, tensor.Int32).AsInt32())
	assert.Equal(t, []bool{true, true, false}, backend.Cast(x, tensor.Bool).AsBool())

	b := mustFromSlice(t, []bool{true, false}, tensor.Shape{2})
	assert.Equal(t, []float64{1, 0}, backend.Cast(b, tensor.Float64).AsFloat64())

	// The source is never modified.
	assert.Equal(t, []float32{1.7, -2, 0}, x.AsFloat32())
}

func TestCPUBackend_Reshape(t *testing.T) {
	backend := newTestBackend(t)
	x := mustFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{6})

	assert.Equal(t, tensor.Shape{2, 3}, backend.Reshape(x, tensor.Shape{2, 3}).Shape())
	assert.Equal(t, tensor.Shape{3, 2}, backend.Reshape(x, tensor.Shape{-1, 2}).Shape())
	assert.Panics(t, func() { backend.Reshape(x, tensor.Shape{4}) })
	assert.Panics(t, func() { backend.Reshape(x, tensor.Shape{-1, -1}) })
}

func TestCPUBackend_Stack(t *testing.T) {
	backend := newTestBackend(t)
	a := mustFromSlice(t, []float32{1, 2}, tensor.Shape{2})
	b := mustFromSlice(t, []float32{3, 4}, tensor.Shape{2})

	rows := backend.Stack([]*tensor.RawTensor{a, b}, 0)
	assert.Equal(t, tensor.Shape{2, 2}, rows.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, rows.AsFloat32())

	cols := backend.Stack([]*tensor.RawTensor{a, b}, 1)
	assert.Equal(t, tensor.Shape{2, 2}, cols.Shape())
	assert.Equal(t, []float32{1, 3, 2, 4}, cols.AsFloat32())
}

func TestCPUBackend_Eval(t *testing.T) {
	backend := newTestBackend(t)
	x := mustFromSlice(t, []float32{1}, tensor.Shape{1})

	errc := make(chan error, 1)
	backend.Eval([]*tensor.RawTensor{x}, func(err error) { errc <- err })
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("eval did not complete")
	}

	x.Release()
	backend.Eval([]*tensor.RawTensor{x}, func(err error) { errc <- err })
	assert.Error(t, <-errc)
}

func TestCPUBackend_SubmitOrderAndPanics(t *testing.T) {
	backend := newTestBackend(t)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		backend.Submit(func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}, func(error) { wg.Done() })
	}
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)

	errc := make(chan error, 1)
	backend.Submit(func() error { panic("kernel fault") }, func(err error) { errc <- err })
	assert.EqualError(t, <-errc, "kernel fault")
	require.NoError(t, backend.Synchronize())
}

func TestCPUBackend_SubmitAfterRelease(t *testing.T) {
	backend := NewWithConfig(parallel.Sequential())
	backend.Release()

	errc := make(chan error, 1)
	backend.Submit(func() error { return nil }, func(err error) { errc <- err })
	assert.True(t, errors.Is(<-errc, ErrQueueClosed))
}
