package transport

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// DecodeList accepts either a bare JSON array or a paginated
// {"results": [...]} envelope.
func DecodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty list payload", ErrNetwork)
	}

	if trimmed[0] == '{' {
		var envelope struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: decode list envelope: %w", ErrNetwork, err)
		}
		if envelope.Results == nil {
			envelope.Results = []T{}
		}
		return envelope.Results, nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: decode list: %w", ErrNetwork, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
