package tensor

// Backend defines the native array library operations reachable from the
// host boundary. Backends handle the actual computation; the boundary layer
// only normalizes arguments and decides which call to make.
//
// Implementations:
//   - CPU: Pure Go reference implementation (internal/backend/cpu)
//   - Mock: naive implementation for tests (MockBackend)
//
// Operations panic on invalid native input, the same way a native library
// throws; the host call boundary recovers those panics into errors.
type Backend interface {
	// Element-wise binary operations with broadcasting
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Stack(tensors []*RawTensor, axis int) *RawTensor

	// Reduction operations over an already-normalized axis set
	Sum(x *RawTensor, axes []int, keepDims bool) *RawTensor
	Mean(x *RawTensor, axes []int, keepDims bool) *RawTensor
	Max(x *RawTensor, axes []int, keepDims bool) *RawTensor

	// Type conversion
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}

// Caster is the subset of Backend needed to change an array's data type.
type Caster interface {
	Cast(x *RawTensor, dtype DataType) *RawTensor
}

// Evaluator is implemented by backends with a device queue. Eval schedules
// the computation of the given tensors and calls done exactly once, from
// any goroutine, when the device has finished.
type Evaluator interface {
	Eval(tensors []*RawTensor, done func(error))
}
