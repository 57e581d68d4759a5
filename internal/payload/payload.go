// Package payload converts dialog payload values to and from the text shown
// and typed in the TUI.
package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated summaries.
const Ellipsis = "…"

// Parse turns user input into a payload value.
// Valid JSON decodes to its value (objects, lists, numbers, bools, strings);
// anything else is kept as the trimmed raw string.
func Parse(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// Format renders a payload value on a single line.
// Whole floats print without a fraction; maps and slices print as compact JSON.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case int, int64, float32:
		return fmt.Sprintf("%v", val)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// Summary formats v and truncates it to maxWidth terminal columns.
func Summary(v any, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s := Format(v)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}
