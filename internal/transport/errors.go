package transport

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNetwork            = errors.New("network error")
	ErrNotFound           = errors.New("not found")
)

// ValidationError carries field-level messages from a 400 response.
// Messages not tied to a field are stored under "non_field_errors".
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StatusError is any non-2xx response without a dedicated sentinel.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, strings.TrimSpace(string(e.Body)))
}

const nonFieldKey = "non_field_errors"

// parseValidationError understands the error shapes a DRF backend emits:
// {"field": ["msg"]}, {"field": "msg"}, {"detail": "msg"}, ["msg"] or plain text.
func parseValidationError(body []byte) *ValidationError {
	ve := &ValidationError{Fields: make(map[string][]string)}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for field, raw := range obj {
			if field == "detail" {
				field = nonFieldKey
			}
			ve.Fields[field] = append(ve.Fields[field], flattenMessages(raw)...)
		}
		return ve
	}

	var list []string
	if err := json.Unmarshal(body, &list); err == nil {
		ve.Fields[nonFieldKey] = list
		return ve
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		ve.Fields[nonFieldKey] = []string{msg}
	}
	return ve
}

func flattenMessages(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		var out []string
		for k, v := range nested {
			for _, m := range flattenMessages(v) {
				out = append(out, k+": "+m)
			}
		}
		sort.Strings(out)
		return out
	}
	return []string{string(raw)}
}
