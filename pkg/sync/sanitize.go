package sync

// Sanitize strips JSON nulls from a decoded document before it goes over
// the wire: map entries whose value is nil are dropped, nil slice
// elements are dropped, and the walk recurses through objects and
// arrays. Empty strings and zero numbers pass through untouched.
func Sanitize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			if val == nil {
				continue
			}
			out[k] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, el := range v {
			if el == nil {
				continue
			}
			out = append(out, Sanitize(el))
		}
		return out
	default:
		return v
	}
}
