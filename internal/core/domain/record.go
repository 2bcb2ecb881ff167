package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MissingFieldValue is displayed when a record has no value for a field.
// The report schema is not fixed at the client; fields are looked up by
// name and fall back to this placeholder.
const MissingFieldValue = "-"

// Record is one flat row of an analysis collection. Values arrive as
// decoded JSON, so they may be strings, numbers, bools or nil.
type Record map[string]any

// Field returns the display value for a named field, or
// MissingFieldValue when the field is absent, nil or empty.
func (r Record) Field(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return MissingFieldValue
	}

	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return MissingFieldValue
		}
		return val
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a fractional part.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Int returns a numeric field as an int, or 0 when absent or not numeric.
func (r Record) Int(name string) int {
	v, ok := r[name]
	if !ok {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Columns returns the sorted union of field names across the given
// records. Used by views when the schema is not known up front.
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for name := range rec {
			seen[name] = true
		}
	}

	cols := make([]string, 0, len(seen))
	for name := range seen {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}
