package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnwrapResults returns the JSON array held by a document that is either a
// bare array or an object with the array under "results".
func UnwrapResults(data []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	switch trimmed[0] {
	case '[':
		return json.RawMessage(trimmed), nil
	case '{':
		var wrapper struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("decode wrapper object: %w", err)
		}
		results := bytes.TrimSpace(wrapper.Results)
		if len(results) == 0 || results[0] != '[' {
			return nil, fmt.Errorf("object has no results array")
		}
		return json.RawMessage(results), nil
	default:
		return nil, fmt.Errorf("document is neither an array nor an object")
	}
}

// DecodeList decodes a bare or results-wrapped array into a slice of T.
func DecodeList[T any](data []byte) ([]T, error) {
	raw, err := UnwrapResults(data)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}
