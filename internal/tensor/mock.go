package tensor

import (
	"fmt"
	"sync"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements element-wise ops, Reshape and Cast naively and records how
// often each operation was called.
type MockBackend struct {
	mu    sync.Mutex
	calls map[string]int
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{calls: make(map[string]int)}
}

// Calls returns how many times the named operation has been invoked.
func (m *MockBackend) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockBackend) record(op string) {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	m.record("Add")
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	m.record("Sub")
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	m.record("Mul")
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	m.record("Div")
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// elementWise performs element-wise operations with broadcasting.
// The result takes a's dtype.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	for i := range outShape.NumElements() {
		x := a.Float64At(BroadcastIndex(i, outShape, a.Shape()))
		y := b.Float64At(BroadcastIndex(i, outShape, b.Shape()))
		result.SetFloat64At(i, op(x, y))
	}
	return result
}

// Reshape returns a copy of t with a new shape of the same element count.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	m.record("Reshape")
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("cannot reshape %v to %v", t.Shape(), newShape))
	}
	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(result.Data(), t.Data())
	return result
}

// Cast converts t to dtype. A tensor already of that dtype is returned as is.
func (m *MockBackend) Cast(t *RawTensor, dtype DataType) *RawTensor {
	m.record("Cast")
	if t.DType() == dtype {
		return t
	}
	result, err := NewRaw(t.Shape(), dtype, m.Device())
	if err != nil {
		panic(err)
	}
	for i := range t.NumElements() {
		result.SetFloat64At(i, t.Float64At(i))
	}
	return result
}

// Stack is not supported by the mock backend.
func (m *MockBackend) Stack(_ []*RawTensor, _ int) *RawTensor {
	panic("mock: Stack not supported")
}

// Sum is not supported by the mock backend.
func (m *MockBackend) Sum(_ *RawTensor, _ []int, _ bool) *RawTensor {
	panic("mock: Sum not supported")
}

// Mean is not supported by the mock backend.
func (m *MockBackend) Mean(_ *RawTensor, _ []int, _ bool) *RawTensor {
	panic("mock: Mean not supported")
}

// Max is not supported by the mock backend.
func (m *MockBackend) Max(_ *RawTensor, _ []int, _ bool) *RawTensor {
	panic("mock: Max not supported")
}
