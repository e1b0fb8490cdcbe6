package convert

// Arguments is a cursor over the host values passed at a call site.
type Arguments struct {
	values []any
	next   int
}

// NewArguments wraps the host values of one call.
func NewArguments(values ...any) *Arguments {
	return &Arguments{values: values}
}

// Len returns the total number of arguments.
func (a *Arguments) Len() int { return len(a.values) }

// Remaining returns how many arguments have not been consumed.
func (a *Arguments) Remaining() int { return len(a.values) - a.next }

// Index returns the position of the next argument.
func (a *Arguments) Index() int { return a.next }

func (a *Arguments) take() (any, int) {
	i := a.next
	if i >= len(a.values) {
		return nil, i
	}
	a.next++
	return a.values[i], i
}

// Next converts the next argument. A missing argument is reported as a
// mismatch against nil, so types that accept nil (OptionalAxes) still
// succeed when the caller omits them.
func Next[T any](a *Arguments, t Type[T]) (T, error) {
	v, i := a.take()
	out, ok := t.From(v)
	if !ok {
		var zero T
		return zero, mismatch(t.Name, i, v)
	}
	return out, nil
}

// Optional converts the next argument when it is present and not nil.
// The second result reports whether a value was read.
func Optional[T any](a *Arguments, t Type[T]) (T, bool, error) {
	var zero T
	if a.Remaining() == 0 {
		return zero, false, nil
	}
	if a.values[a.next] == nil {
		a.next++
		return zero, false, nil
	}
	out, err := Next(a, t)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

// Collect converts every remaining argument as T. It stops at the first
// argument that does not convert and reports it; the partially collected
// values are discarded.
func Collect[T any](a *Arguments, t Type[T]) ([]T, error) {
	out := make([]T, 0, a.Remaining())
	for a.Remaining() > 0 {
		v, i := a.take()
		e, ok := t.From(v)
		if !ok {
			return nil, mismatch(t.Name, i, v)
		}
		out = append(out, e)
	}
	return out, nil
}

// At returns the raw host value at position i, or nil.
func (a *Arguments) At(i int) any {
	if i < 0 || i >= len(a.values) {
		return nil
	}
	return a.values[i]
}
