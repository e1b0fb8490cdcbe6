package convert

// Map converts host objects (map[string]any) into maps of V. Like
// Sequence, a single failing value fails the whole conversion.
func Map[V any](elem Type[V]) Type[map[string]V] {
	return Type[map[string]V]{
		Name: "Object<" + elem.Name + ">",
		From: func(v any) (map[string]V, bool) {
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			out := make(map[string]V, len(obj))
			for k, item := range obj {
				e, ok := elem.From(item)
				if !ok {
					return nil, false
				}
				out[k] = e
			}
			return out, true
		},
		To: func(m map[string]V) any {
			out := make(map[string]any, len(m))
			for k, e := range m {
				out[k] = elem.ToHost(e)
			}
			return out
		},
	}
}
