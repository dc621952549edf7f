package valc

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// FormatValue renders an arbitrary runtime value for diagnostics. It is
// used only on error paths, never during validation itself. Scalars are
// rendered directly; composite values fall back to compact JSON.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case error:
		return t.Error()
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func formatValueList(vs []any) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, FormatValue(v))
	}
	return strings.Join(parts, ", ")
}
