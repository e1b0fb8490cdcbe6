package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// tensorBuffer is a reference-counted shared buffer.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for Clone operations).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// RawTensor is the low-level tensor representation handed across the host
// boundary. The boundary layer never mutates a RawTensor it did not create.
type RawTensor struct {
	buffer   *tensorBuffer // Shared reference-counted buffer
	shape    Shape         // Tensor dimensions
	stride   []int         // Memory strides (row-major)
	dtype    DataType      // Runtime type information
	device   Device        // Compute device
	released atomic.Bool
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zeroed.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid data type %d", int(dtype))
	}

	byteSize := shape.NumElements() * dtype.Size()

	return &RawTensor{
		buffer: newTensorBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data
}

// view reinterprets the buffer as n elements of E.
func view[E any](r *RawTensor) []E {
	if r.NumElements() == 0 || len(r.buffer.data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*E)(unsafe.Pointer(&r.buffer.data[0])), r.NumElements())
}

func (r *RawTensor) mustBe(dt DataType) {
	if r.dtype != dt {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, dt))
	}
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	r.mustBe(Float32)
	return view[float32](r)
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	r.mustBe(Float64)
	return view[float64](r)
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	r.mustBe(Int32)
	return view[int32](r)
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	r.mustBe(Int64)
	return view[int64](r)
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	r.mustBe(Uint8)
	return r.buffer.data
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	r.mustBe(Bool)
	return view[bool](r)
}

// Float64At returns element i (flat, row-major) widened to float64.
// Booleans read as 0 or 1.
func (r *RawTensor) Float64At(i int) float64 {
	switch r.dtype {
	case Float32:
		return float64(r.AsFloat32()[i])
	case Float64:
		return r.AsFloat64()[i]
	case Int32:
		return float64(r.AsInt32()[i])
	case Int64:
		return float64(r.AsInt64()[i])
	case Uint8:
		return float64(r.AsUint8()[i])
	case Bool:
		if r.AsBool()[i] {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.dtype))
	}
}

// SetFloat64At stores v at flat index i, narrowing to the tensor's dtype.
// Non-zero values store as true in a Bool tensor.
func (r *RawTensor) SetFloat64At(i int, v float64) {
	switch r.dtype {
	case Float32:
		r.AsFloat32()[i] = float32(v)
	case Float64:
		r.AsFloat64()[i] = v
	case Int32:
		r.AsInt32()[i] = int32(v)
	case Int64:
		r.AsInt64()[i] = int64(v)
	case Uint8:
		r.AsUint8()[i] = uint8(v)
	case Bool:
		r.AsBool()[i] = v != 0
	default:
		panic(fmt.Sprintf("unsupported dtype %s", r.dtype))
	}
}

// Item returns the single element of a one-element tensor as a host scalar:
// bool for Bool tensors, float64 otherwise.
func (r *RawTensor) Item() any {
	if r.NumElements() != 1 {
		panic(fmt.Sprintf("item: tensor has %d elements, want 1", r.NumElements()))
	}
	if r.dtype == Bool {
		return r.AsBool()[0]
	}
	return r.Float64At(0)
}

// Clone creates a shallow copy of the RawTensor (shares buffer with reference counting).
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// Release drops this tensor's reference to its buffer. It is idempotent;
// the buffer is freed once every clone has been released.
func (r *RawTensor) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.buffer.release()
	}
}

// Released reports whether Release has been called on this tensor.
func (r *RawTensor) Released() bool {
	return r.released.Load()
}
