package cpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/born-ml/born-host/internal/tensor"
)

// ErrQueueClosed is reported to commands submitted after Release.
var ErrQueueClosed = errors.New("cpu: device queue closed")

// command is one unit of device work and its completion callback.
type command struct {
	run  func() error
	done func(error)
}

// deviceQueue accumulates commands and executes them in submission order on
// a single worker goroutine. Submitting never blocks on execution.
type deviceQueue struct {
	mu      sync.Mutex
	pending []command
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

func newDeviceQueue() *deviceQueue {
	q := &deviceQueue{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go q.worker()
	return q
}

// submit appends a command to the pending batch and wakes the worker.
func (q *deviceQueue) submit(cmd command) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		cmd.done(ErrQueueClosed)
		return
	}
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *deviceQueue) worker() {
	defer close(q.stopped)
	for range q.wake {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		for _, cmd := range batch {
			cmd.done(execute(cmd.run))
		}
		if closed {
			return
		}
	}
}

// execute runs fn, converting a panic inside the kernel into an error.
func execute(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}

// close marks the queue closed, lets the worker drain the last batch and
// waits for it to exit.
func (q *deviceQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.stopped
		return
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.stopped
}

// Submit schedules fn on the device queue; done receives its result from
// the worker goroutine.
func (cpu *CPUBackend) Submit(fn func() error, done func(error)) {
	cpu.deviceQueue().submit(command{run: fn, done: done})
}

// Eval schedules evaluation of tensors on the device queue. CPU kernels are
// eager, so evaluation only verifies that every tensor is still backed by
// live memory.
func (cpu *CPUBackend) Eval(tensors []*tensor.RawTensor, done func(error)) {
	cpu.Submit(func() error {
		for i, t := range tensors {
			if t == nil || t.Released() {
				return fmt.Errorf("eval: tensor %d has been released", i)
			}
		}
		return nil
	}, done)
}

// Synchronize blocks until every command submitted before the call has run.
func (cpu *CPUBackend) Synchronize() error {
	errc := make(chan error, 1)
	cpu.Submit(func() error { return nil }, func(err error) { errc <- err })
	return <-errc
}
