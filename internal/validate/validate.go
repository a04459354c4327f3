// ABOUTME: Input validation and normalization for all external input.
// ABOUTME: Pure functions; failures carry field-specific messages.
package validate

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

// MaxListEntries caps tag and muscle-group lists. Exceeding the cap is
// an error, never silent truncation.
const MaxListEntries = 32

// Error is a field-level validation failure. The message is safe to
// show verbatim.
type Error struct {
	Field  string
	Detail string
}

func (e *Error) Error() string {
	return e.Field + " " + e.Detail
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// RequiredText trims value and fails when nothing remains.
func RequiredText(field, value string) (string, error) {
	parsed := strings.TrimSpace(value)
	if parsed == "" {
		return "", &Error{Field: field, Detail: "is required"}
	}
	return parsed, nil
}

// OptionalText trims value and returns nil for blank input.
func OptionalText(value string) *string {
	parsed := strings.TrimSpace(value)
	if parsed == "" {
		return nil
	}
	return &parsed
}

// TextArray filters values to non-empty trimmed strings, deduplicates
// case-insensitively preserving first-seen order, and enforces the
// entry cap.
func TextArray(field string, values []string) ([]string, error) {
	unique := []string{}
	seen := make(map[string]struct{})
	for _, item := range values {
		parsed := strings.TrimSpace(item)
		if parsed == "" {
			continue
		}
		key := strings.ToLower(parsed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, parsed)
	}

	if len(unique) > MaxListEntries {
		return nil, &Error{Field: field, Detail: "has too many entries"}
	}
	return unique, nil
}

// PositiveInt rejects values that are not strictly positive.
func PositiveInt(field string, value int64) (int64, error) {
	if value <= 0 {
		return 0, &Error{Field: field, Detail: "must be a positive integer"}
	}
	return value, nil
}

// NonNegativeNumber rejects non-finite or negative values.
func NonNegativeNumber(field string, value float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, &Error{Field: field, Detail: "must be a non-negative number"}
	}
	return value, nil
}

// OptionalPositiveInt returns nil instead of erroring on missing or
// out-of-range input. Used where "not yet entered" is a valid state.
func OptionalPositiveInt(value *int) *int {
	if value == nil || *value <= 0 {
		return nil
	}
	v := *value
	return &v
}

// OptionalNonNegativeNumber returns nil instead of erroring on missing
// or invalid input.
func OptionalNonNegativeNumber(value *float64) *float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) || *value < 0 {
		return nil
	}
	v := *value
	return &v
}

// ParseJSONArray decodes a JSON-encoded string list. Malformed or
// missing JSON degrades to an empty list, never an error.
func ParseJSONArray(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{}
	}
	var raw []any
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return []string{}
	}
	out := []string{}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MarshalJSONArray encodes a string list for storage in a text column.
func MarshalJSONArray(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}
