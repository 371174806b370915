package plan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StripFences removes a Markdown code fence wrapping a service response.
// Models wrap structured output in ```json fences despite instructions not
// to; parsing must tolerate both fenced and bare responses.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag ("json", "csv", ...) on the opening fence line.
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		first := strings.TrimSpace(s[:nl])
		if first != "" && !strings.ContainsAny(first, "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decodePlan(raw string) (TestPlan, error) {
	var p TestPlan
	if err := json.Unmarshal([]byte(StripFences(raw)), &p); err != nil {
		return TestPlan{}, fmt.Errorf("parse plan JSON: %w", err)
	}
	return p, nil
}

// DecodeRows parses a service response expected to be a JSON array of flat
// objects. Values of any JSON type are flattened to strings for export.
func DecodeRows(raw string) ([]map[string]string, error) {
	var parsed []map[string]any
	if err := json.Unmarshal([]byte(StripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("parse rows JSON: %w", err)
	}

	rows := make([]map[string]string, 0, len(parsed))
	for _, obj := range parsed {
		row := make(map[string]string, len(obj))
		for k, v := range obj {
			row[k] = formatValue(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// formatValue converts an arbitrary decoded JSON value to its cell string.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		// Nested arrays/objects: keep them as compact JSON.
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
