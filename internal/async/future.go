package async

import "code.hybscloud.com/iox"

// State is the observable state of a Future.
type State int

// Future states. A future leaves Pending exactly once.
const (
	Pending State = iota
	Resolved
	Rejected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Future is the host-side result of an asynchronous native computation.
// It is owned by the Loop that created it and must only be used from the
// host goroutine.
type Future struct {
	state     State
	value     any
	err       error
	listeners []func(any, error)
}

// State returns the current state.
func (f *Future) State() State { return f.state }

// Done reports whether the future has settled.
func (f *Future) Done() bool { return f.state != Pending }

// Result returns the settled value or rejection reason. While pending it
// returns iox.ErrWouldBlock.
func (f *Future) Result() (any, error) {
	if f.state == Pending {
		return nil, iox.ErrWouldBlock
	}
	return f.value, f.err
}

// OnSettled registers fn to run when the future settles. If it already has,
// fn runs immediately.
func (f *Future) OnSettled(fn func(value any, err error)) {
	if f.state != Pending {
		fn(f.value, f.err)
		return
	}
	f.listeners = append(f.listeners, fn)
}

func (f *Future) settle(value any, err error) {
	if f.state != Pending {
		panic("async: future settled twice")
	}
	if err != nil {
		f.state, f.err = Rejected, err
	} else {
		f.state, f.value = Resolved, value
	}
	listeners := f.listeners
	f.listeners = nil
	for _, fn := range listeners {
		fn(f.value, f.err)
	}
}
