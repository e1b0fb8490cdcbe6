// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package host

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/born-ml/born-host/internal/async"
	"github.com/born-ml/born-host/internal/backend/cpu"
	"github.com/born-ml/born-host/internal/convert"
	"github.com/born-ml/born-host/internal/device"
	"github.com/born-ml/born-host/internal/handle"
	"github.com/born-ml/born-host/internal/tensor"
)

// Ref is a host handle to a native array.
type Ref = handle.Ref

// Future is the host-side result of an asynchronous computation.
type Future = async.Future

// Func is a host-callable function. It reads its arguments from args and
// returns a host value.
type Func func(args *convert.Arguments) (any, error)

// Option configures a Runtime.
type Option func(*Runtime)

// WithBackend sets the native backend. The caller keeps ownership of b.
func WithBackend(b tensor.Backend) Option {
	return func(r *Runtime) {
		r.backend = b
		r.ownsBackend = false
	}
}

// WithLogger sets the runtime logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithLoop sets the loop configuration used for asynchronous calls.
func WithLoop(cfg async.Config) Option {
	return func(r *Runtime) {
		r.loopConfig = cfg
	}
}

// WithDevice sets the GPU device behind the metal namespace.
func WithDevice(d *device.Device) Option {
	return func(r *Runtime) {
		r.device = d
	}
}

// Runtime is the call boundary between a host runtime and born arrays.
// Like the host it serves, a Runtime runs on one goroutine; only the
// backend's device queue works concurrently.
type Runtime struct {
	backend     tensor.Backend
	ownsBackend bool
	logger      *zap.Logger
	loopConfig  async.Config
	device      *device.Device

	loop    *async.Loop
	table   *handle.Table
	funcs   map[string]Func
	array   convert.Type[*tensor.RawTensor]
	operand convert.Type[convert.ScalarOrArray]
}

// New creates a runtime. Without options it computes on a private CPU
// backend and reports the system GPU through the metal namespace.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		loopConfig: async.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.backend == nil {
		r.backend = cpu.New()
		r.ownsBackend = true
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.device == nil {
		r.device = device.System()
	}

	r.loop = async.NewLoop(r.loopConfig)
	r.table = handle.NewTable(r.logger.Named("handle"))
	r.array = convert.Array(func(t *tensor.RawTensor) any { return r.table.Wrap(t) })
	r.operand = convert.ScalarOrArrayOf(r.array)
	r.funcs = make(map[string]Func)
	r.registerArrayOps()
	r.registerIO()
	r.registerMetal()
	return r
}

// Register adds or replaces a named function.
func (r *Runtime) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Functions returns the registered function names in sorted order.
func (r *Runtime) Functions() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call invokes the named function with host arguments. A panic raised by
// the native library is returned as a *NativeError wrapped in a
// *CallError. async.ErrDoubleCompletion is fatal and is re-raised.
func (r *Runtime) Call(name string, args ...any) (result any, err error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, &CallError{Name: name, Err: ErrUnknownFunction}
	}

	defer func() {
		if p := recover(); p != nil {
			if p == async.ErrDoubleCompletion {
				r.logger.Error("native computation completed twice", zap.String("func", name))
				panic(p)
			}
			r.logger.Error("native call panicked", zap.String("func", name), zap.Any("panic", p))
			result = nil
			err = &CallError{Name: name, Err: &NativeError{Message: fmt.Sprint(p)}}
		}
	}()

	result, err = fn(convert.NewArguments(args...))
	if err != nil {
		r.logger.Debug("call failed", zap.String("func", name), zap.Error(err))
		return nil, &CallError{Name: name, Err: err}
	}
	return result, nil
}

// Poll settles every asynchronous computation that has completed. It
// returns iox.ErrWouldBlock while others are still running.
func (r *Runtime) Poll() error {
	return r.loop.Poll()
}

// Await drives the loop until f settles or ctx is done.
func (r *Runtime) Await(ctx context.Context, f *Future) (any, error) {
	return r.loop.Await(ctx, f)
}

// Live returns the number of array handles that have not been disposed.
func (r *Runtime) Live() int {
	return r.table.Len()
}

// Wrap hands a native array to the host.
func (r *Runtime) Wrap(t *tensor.RawTensor) *Ref {
	return r.table.Wrap(t)
}

// Close waits for outstanding asynchronous computations, disposes every
// live handle and releases the backend if the runtime created it.
func (r *Runtime) Close() error {
	err := r.loop.Drain(context.Background())
	r.table.Close()
	if rel, ok := r.backend.(interface{ Release() }); ok && r.ownsBackend {
		rel.Release()
	}
	return err
}
