// Package cpu implements the native array library on the CPU. It stands in
// for the device library behind the host boundary: kernels run eagerly, and
// Eval work is scheduled on a device queue serviced by a worker goroutine.
package cpu

import (
	"sync"

	"github.com/born-ml/born-host/internal/parallel"
	"github.com/born-ml/born-host/internal/tensor"
)

// Verify that CPUBackend implements the native library interfaces.
var (
	_ tensor.Backend   = (*CPUBackend)(nil)
	_ tensor.Evaluator = (*CPUBackend)(nil)
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config

	queueOnce sync.Once
	queue     *deviceQueue
}

// New creates a new CPU backend using parallel.DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit kernel parallelism.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

func (cpu *CPUBackend) deviceQueue() *deviceQueue {
	cpu.queueOnce.Do(func() {
		cpu.queue = newDeviceQueue()
	})
	return cpu.queue
}

// Release stops the device queue after draining pending commands.
// Must be called when the backend is no longer needed.
func (cpu *CPUBackend) Release() {
	cpu.deviceQueue().close()
}
