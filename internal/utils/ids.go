package utils

import (
	"strconv"
)

// NormalizeID converts an identifier that may arrive from different
// serialization paths (JWT claims decode numbers as float64, path
// params are strings, context values may already be uint) into a
// canonical uint. Comparisons elsewhere are then plain typed equality,
// so "12" and 12 can never be confused after this boundary.
func NormalizeID(value interface{}) (uint, bool) {
	switch v := value.(type) {
	case uint:
		return v, true
	case uint64:
		return uint(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 || v != float64(uint(v)) {
			return 0, false
		}
		return uint(v), true
	case string:
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

// ParseID parses a path parameter into a uint id.
func ParseID(param string) (uint, bool) {
	id, err := strconv.ParseUint(param, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
