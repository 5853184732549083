// Package clone provides a deep-copy primitive for the structured values
// (maps, sequences, scalars) that flow through document payloads.
package clone

// Copy returns a deep copy of v. Maps and slices are copied recursively;
// everything else (strings, numbers, bools, nil, and any other scalar or
// opaque value) is returned as-is, since such values are never mutated
// in place by the layering engine.
func Copy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = Copy(e)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Copy(e)
		}

		return out
	default:
		return val
	}
}
