package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "studyhub/internal/platform/errors"
)

// pageKeys are the envelope fields that may wrap a collection.
var pageKeys = []string{"content", "items", "data", "results"}

// CountItems counts the items in a collection response. A bare array is
// counted directly; an envelope uses totalElements when present, otherwise
// the length of its first list field.
func CountItems(raw []byte) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, nil
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return 0, fmt.Errorf("%w: decode collection: %v", apperrors.ErrServer, err)
		}
		return len(items), nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return 0, fmt.Errorf("%w: decode collection: %v", apperrors.ErrServer, err)
		}
		if total, ok := envelope["totalElements"]; ok {
			var n int
			if err := json.Unmarshal(total, &n); err == nil && n >= 0 {
				return n, nil
			}
		}
		for _, key := range pageKeys {
			field, ok := envelope[key]
			if !ok {
				continue
			}
			var items []json.RawMessage
			if err := json.Unmarshal(field, &items); err == nil {
				return len(items), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: response is not a collection", apperrors.ErrServer)
}
