package domain

import (
	"strconv"
	"strings"
)

// ParseTruthy normalizes the duck-typed boolean encodings the upstream
// master-data store emits (true, 1, 1.0, "1", "true", "yes") into a single
// *bool. It returns nil when the value is absent or unrecognizable, so
// callers can distinguish "backend said false" from "backend said nothing".
//
// This runs once at the ingestion boundary; everything past it works with a
// typed field.
func ParseTruthy(value interface{}) *bool {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return boolPtr(v)
	case int:
		return boolPtr(v != 0)
	case int64:
		return boolPtr(v != 0)
	case float64:
		return boolPtr(v != 0)
	case string:
		return parseTruthyString(v)
	}
	return nil
}

func parseTruthyString(value string) *bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return nil
	}

	switch normalized {
	case "true", "yes", "y", "t":
		return boolPtr(true)
	case "false", "no", "n", "f":
		return boolPtr(false)
	}

	if f, err := strconv.ParseFloat(normalized, 64); err == nil {
		return boolPtr(f != 0)
	}

	return nil
}

func boolPtr(v bool) *bool {
	return &v
}
