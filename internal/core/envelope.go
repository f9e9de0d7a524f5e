package core

import "encoding/json"

// UnwrapEnvelope strips the optional {"data": ...} wrapper some API
// deployments put around payloads. Any other value, including objects
// without a "data" key, passes through unchanged. It knows nothing about
// which endpoint produced the value.
func UnwrapEnvelope(v any) any {
	if obj, ok := v.(map[string]any); ok {
		if inner, exists := obj["data"]; exists {
			return inner
		}
	}
	return v
}

// CollectionOf unwraps v's envelope and decodes the payload into a slice of
// T. The second return value reports whether the payload had the expected
// collection shape; callers map an unrecognized shape to an empty
// collection rather than an error.
func CollectionOf[T any](v any) ([]T, bool) {
	payload := UnwrapEnvelope(v)
	if _, ok := payload.([]any); !ok {
		return nil, false
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, false
	}
	var out []T
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, false
	}
	return out, true
}
