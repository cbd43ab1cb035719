// Package format renders upstream API records as LLM-friendly text.
package format

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RecordSeparator separates records in multi-record text output.
const RecordSeparator = "\n---\n"

// Flatten projects a record onto an ordered allow-list of keys and renders
// it as "key: value" lines. Keys that are missing or nil are dropped, so the
// output contains exactly the present fields in allow-list order.
func Flatten(record map[string]any, keys []string) string {
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := record[key]
		if !ok || value == nil {
			continue
		}
		lines = append(lines, key+": "+Value(value))
	}
	return strings.Join(lines, "\n")
}

// Pick copies the allow-listed keys of a record into a new map, skipping
// missing and nil values. Used to build the nested mappings that are
// rendered as indented JSON.
func Pick(record map[string]any, keys []string) map[string]any {
	picked := make(map[string]any, len(keys))
	for _, key := range keys {
		if value, ok := record[key]; ok && value != nil {
			picked[key] = value
		}
	}
	return picked
}

// JoinRecords joins rendered record blocks with the record separator.
func JoinRecords(blocks []string) string {
	return strings.Join(blocks, RecordSeparator)
}

// Indent renders a value as two-space indented JSON.
func Indent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Value renders a decoded JSON value as text. Scalars are rendered naturally
// (no trailing zeros on numbers); composite values fall back to compact JSON.
func Value(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
