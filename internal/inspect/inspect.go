// Package inspect renders native-owned objects as text for the host's
// generic object inspection.
package inspect

import "fmt"

// Destroyed is returned for handles whose native object is gone.
const Destroyed = "The object has been destroyed."

// Resolver looks up the native object behind a handle. It must not change
// the handle's liveness.
type Resolver interface {
	Native() (any, bool)
}

// Describe returns the canonical text of the object behind h, or Destroyed
// when it can no longer be resolved. Describe never panics.
func Describe(h Resolver) (s string) {
	if h == nil {
		return Destroyed
	}
	obj, ok := h.Native()
	if !ok || obj == nil {
		return Destroyed
	}
	defer func() {
		if r := recover(); r != nil {
			s = Destroyed
		}
	}()
	if st, ok := obj.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprint(obj)
}
