package convert

// Type converts values of T to and from host values.
//
// From must not panic; it returns false when v cannot be read as T.
// To produces the host representation of a T and may be nil for types that
// only flow into native calls.
type Type[T any] struct {
	Name string
	From func(v any) (T, bool)
	To   func(t T) any
}

// FromHost converts v, reporting a TypeMismatchError naming t on failure.
func (t Type[T]) FromHost(v any) (T, error) {
	out, ok := t.From(v)
	if !ok {
		var zero T
		return zero, mismatch(t.Name, -1, v)
	}
	return out, nil
}

// ToHost converts a native value to its host representation.
func (t Type[T]) ToHost(v T) any {
	if t.To == nil {
		return v
	}
	return t.To(v)
}
