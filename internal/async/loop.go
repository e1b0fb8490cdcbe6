// Package async bridges native computations that finish on another
// goroutine (a device queue, a worker) back into the host's single
// cooperative goroutine.
//
// Each computation owns a bounded single-producer single-consumer slot:
// the native side is the only producer, the host loop the only consumer.
// The loop never blocks; Poll reports iox.ErrWouldBlock while work is
// still outstanding and Await turns that into a backoff wait.
package async

import (
	"context"
	"fmt"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"go.uber.org/zap"
)

// Config tunes a Loop.
type Config struct {
	// CompletionCapacity is the size of each computation's completion slot.
	// Only one completion is ever enqueued; the extra room keeps the
	// producer from waiting on a consumer that has not polled yet.
	CompletionCapacity int
}

// DefaultConfig returns the default loop configuration.
func DefaultConfig() Config {
	return Config{CompletionCapacity: 2}
}

// completion is what the native side hands to the host loop.
type completion[R any] struct {
	result R
	err    error
}

// Completer is given to a native computation to report its outcome. It is
// safe to use from any goroutine, but exactly one of Resolve or Reject may
// be called, once. A second call panics with ErrDoubleCompletion.
type Completer[R any] struct {
	p *pending[R]
}

// Resolve reports success with result.
func (c Completer[R]) Resolve(result R) {
	c.p.complete(completion[R]{result: result})
}

// Reject reports a native failure.
func (c Completer[R]) Reject(err error) {
	if err == nil {
		err = fmt.Errorf("async: rejected with nil error")
	}
	c.p.complete(completion[R]{err: err})
}

// Done adapts the Completer to an error-only callback: nil resolves with
// result, anything else rejects.
func (c Completer[R]) Done(result R) func(error) {
	return func(err error) {
		if err != nil {
			c.Reject(err)
			return
		}
		c.Resolve(result)
	}
}

type pending[R any] struct {
	id        uint32
	slot      lfq.SPSC[completion[R]]
	completed atomix.Uint32
	future    *Future
	onSuccess func(R) any
	onFinally func()
}

func (p *pending[R]) complete(c completion[R]) {
	if p.completed.Add(1) != 1 {
		Logger().Error("double completion", zap.Uint32("id", p.id))
		panic(ErrDoubleCompletion)
	}
	var bo iox.Backoff
	for {
		err := p.slot.Enqueue(&c)
		if err == nil {
			return
		}
		if !iox.IsWouldBlock(err) {
			panic(err)
		}
		bo.Wait()
	}
}

// poll settles p if its completion has arrived. It reports whether p is
// finished.
func (p *pending[R]) poll() bool {
	c, err := p.slot.Dequeue()
	if err != nil {
		return false
	}
	if c.err != nil {
		p.finish(nil, nativeError(c.err))
		return true
	}
	value, err := p.succeed(c.result)
	p.finish(value, err)
	return true
}

// succeed runs onSuccess, turning a panic into a rejection.
func (p *pending[R]) succeed(result R) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	if p.onSuccess == nil {
		return result, nil
	}
	return p.onSuccess(result), nil
}

// finish runs onFinally and then settles the future. A panicking onFinally
// still settles the future, as a rejection.
func (p *pending[R]) finish(value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("onFinally panicked", zap.Uint32("id", p.id), zap.Any("panic", r))
			p.future.settle(nil, panicError(r))
			return
		}
		p.future.settle(value, err)
	}()
	if p.onFinally != nil {
		p.onFinally()
	}
}

type poller interface {
	poll() bool
}

// Loop is the host's cooperative scheduler for native completions. A Loop
// is not safe for concurrent use; only Completers cross goroutines.
type Loop struct {
	cfg     Config
	next    atomix.Uint32
	pending []poller
}

// NewLoop creates a loop.
func NewLoop(cfg Config) *Loop {
	if cfg.CompletionCapacity < 1 {
		cfg.CompletionCapacity = DefaultConfig().CompletionCapacity
	}
	return &Loop{cfg: cfg}
}

// Run starts a native computation and returns its future.
//
// invoke is called exactly once, synchronously, and must arrange for the
// Completer to be resolved or rejected once the native work ends. If invoke
// returns an error or panics, the future is returned already rejected.
// On success onSuccess maps the native result to the host value. onFinally
// runs exactly once, after the success or failure branch and before the
// future settles. Either callback may be nil.
func Run[R any](l *Loop, invoke func(Completer[R]) error, onSuccess func(R) any, onFinally func()) *Future {
	p := &pending[R]{
		id:        l.next.Add(1),
		future:    &Future{},
		onSuccess: onSuccess,
		onFinally: onFinally,
	}
	p.slot.Init(l.cfg.CompletionCapacity)

	if err := start(invoke, Completer[R]{p: p}); err != nil {
		Logger().Debug("native invoke failed", zap.Uint32("id", p.id), zap.Error(err))
		p.finish(nil, nativeError(err))
		return p.future
	}
	l.pending = append(l.pending, p)
	return p.future
}

func start[R any](invoke func(Completer[R]) error, c Completer[R]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if r == ErrDoubleCompletion {
				panic(r)
			}
			err = panicError(r)
		}
	}()
	return invoke(c)
}

// Pending returns the number of computations that have not settled.
func (l *Loop) Pending() int { return len(l.pending) }

// Poll settles every computation whose native side has completed, in
// whatever order they finished. It returns iox.ErrWouldBlock when
// computations are still outstanding and nil when none remain.
func (l *Loop) Poll() error {
	// Settling runs host callbacks, which may start new computations.
	ready := l.pending
	l.pending = nil
	for _, p := range ready {
		if !p.poll() {
			l.pending = append(l.pending, p)
		}
	}
	if len(l.pending) > 0 {
		return iox.ErrWouldBlock
	}
	return nil
}

// Await polls the loop until f settles or ctx is done. Other computations
// that complete meanwhile are settled as well.
func (l *Loop) Await(ctx context.Context, f *Future) (any, error) {
	var bo iox.Backoff
	for !f.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_ = l.Poll()
		if f.Done() {
			break
		}
		bo.Wait()
	}
	return f.Result()
}

// Drain polls until every outstanding computation has settled or ctx is
// done.
func (l *Loop) Drain(ctx context.Context) error {
	var bo iox.Backoff
	for {
		err := l.Poll()
		if err == nil {
			return nil
		}
		if !iox.IsWouldBlock(err) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		bo.Wait()
	}
}
