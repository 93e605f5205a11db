// Package payload builds the job submission document sent to the job
// distribution API and strips empty values out of it before transmission.
package payload

// Document is a JSON object as decoded by encoding/json: nested values are
// map[string]any, []any, or scalars.
type Document = map[string]any

// Normalize recursively removes empty values from v.
//
// Maps and slices are normalized element by element; entries that end up
// absent are dropped, and a container left with nothing in it is itself
// absent. The empty string and nil are absent. Every other scalar, including
// false and 0, passes through unchanged. The second return value reports
// whether anything is left.
func Normalize(v any) (any, bool) {
	switch value := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out := normalizeMap(value)
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(value))
		for key, item := range value {
			if item == "" {
				continue
			}
			out[key] = item
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []any:
		out := make([]any, 0, len(value))
		for _, item := range value {
			normalized, ok := Normalize(item)
			if !ok {
				continue
			}
			out = append(out, normalized)
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []string:
		out := make([]any, 0, len(value))
		for _, item := range value {
			if item == "" {
				continue
			}
			out = append(out, item)
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case string:
		if value == "" {
			return nil, false
		}
		return value, true
	default:
		return value, true
	}
}

// NormalizeDocument applies Normalize at the root of doc. Unlike Normalize it
// never reports absence: a document with nothing left is an empty Document.
func NormalizeDocument(doc Document) Document {
	return normalizeMap(doc)
}

func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, item := range in {
		normalized, ok := Normalize(item)
		if !ok {
			continue
		}
		out[key] = normalized
	}
	return out
}
