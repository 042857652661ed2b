// Package translate converts configuration values between the JSON and
// TOML representations used by different agents.
package translate

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// TOMLToJSONValue decodes a TOML document into the generic value tree
// the JSON documents use.
func TOMLToJSONValue(tomlData []byte) (map[string]any, error) {
	var data map[string]any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, fmt.Errorf("unmarshaling toml: %w", err)
	}
	return data, nil
}

// Value converts a decoded JSON value into a TOML-compatible value.
// Nulls have no TOML representation and are dropped; the second return
// is false when the input vanishes entirely.
func Value(v any) (any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			converted, ok := Value(item)
			if !ok {
				continue
			}
			out[k] = converted
		}
		return out, true
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			converted, ok := Value(item)
			if !ok {
				continue
			}
			out = append(out, converted)
		}
		return out, true
	default:
		return val, true
	}
}

// DeepMergeMaps merges overlay into target recursively. Nested maps are
// merged key by key; any other collision is won by the overlay.
func DeepMergeMaps(target, overlay map[string]any) {
	for key, value := range overlay {
		existing, ok := target[key]
		if !ok {
			target[key] = value
			continue
		}

		existingMap, eok := existing.(map[string]any)
		overlayMap, ook := value.(map[string]any)
		if eok && ook {
			DeepMergeMaps(existingMap, overlayMap)
			continue
		}

		target[key] = value
	}
}
