package convert

import "reflect"

// Capacity decides how the container behind a Sequence is allocated.
type Capacity interface {
	// Reserve returns the capacity to allocate for n elements, or false
	// when the container cannot hold n elements.
	Reserve(n int) (int, bool)
}

// Growable allocates exactly what the list needs and never refuses.
type Growable struct{}

// Reserve implements Capacity.
func (Growable) Reserve(n int) (int, bool) { return n, true }

// Inline preallocates room for N elements and grows past it when a longer
// list arrives. Small shapes and axis lists use it.
type Inline struct{ N int }

// Reserve implements Capacity.
func (c Inline) Reserve(n int) (int, bool) { return max(n, c.N), true }

// Fixed holds at most N elements; longer lists fail to convert.
type Fixed struct{ N int }

// Reserve implements Capacity.
func (c Fixed) Reserve(n int) (int, bool) {
	if n > c.N {
		return 0, false
	}
	return c.N, true
}

// Sequence converts host lists into S element by element. Any Go slice is
// accepted as a host list. The whole conversion fails if one element does;
// no partial result is returned.
func Sequence[S ~[]E, E any](elem Type[E], capacity Capacity) Type[S] {
	return Type[S]{
		Name: "Array<" + elem.Name + ">",
		From: func(v any) (S, bool) {
			items, ok := hostList(v)
			if !ok {
				return nil, false
			}
			n, ok := capacity.Reserve(len(items))
			if !ok {
				return nil, false
			}
			out := make(S, 0, n)
			for _, item := range items {
				e, ok := elem.From(item)
				if !ok {
					return nil, false
				}
				out = append(out, e)
			}
			return out, true
		},
		To: func(s S) any {
			out := make([]any, len(s))
			for i, e := range s {
				out[i] = elem.ToHost(e)
			}
			return out
		},
	}
}

// hostList views v as a list of host values.
func hostList(v any) ([]any, bool) {
	switch l := v.(type) {
	case nil:
		return nil, false
	case []any:
		return l, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
