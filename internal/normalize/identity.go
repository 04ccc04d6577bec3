package normalize

import (
	"encoding/json"
	"fmt"
)

// ModelID reduces a model identifier to a plain string. It accepts a bare
// string or a single-field positional wrapper (["id"] or {"0": "id"}).
// Any other shape becomes its JSON text. Absent values become "".
func ModelID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case []any:
		if len(id) == 1 {
			if s, ok := id[0].(string); ok {
				return s
			}
		}
	case map[string]any:
		if len(id) == 1 {
			if s, ok := id["0"].(string); ok {
				return s
			}
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// identifier is ModelID for nullable neuron identifiers.
func identifier(v any) *string {
	if v == nil {
		return nil
	}
	id := ModelID(v)
	return &id
}
