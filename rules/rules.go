// Package rules provides ready-made predicate steps for the bounds and
// pattern constraints most schemas need. Each helper is an ordinary
// predicate and therefore chains after any base-kind step.
package rules

import (
	"fmt"
	"regexp"

	json "github.com/goccy/go-json"
	valc "github.com/karitora/valc"
	"github.com/karitora/valc/dsl"
)

// Min requires a numeric value of at least limit.
func Min(limit float64) dsl.Schema {
	return dsl.Predicate(func(v any) bool {
		f, ok := numValue(v)
		return ok && f >= limit
	}, fmt.Sprintf("Less than minimum %s", valc.FormatValue(limit)))
}

// Max requires a numeric value of at most limit.
func Max(limit float64) dsl.Schema {
	return dsl.Predicate(func(v any) bool {
		f, ok := numValue(v)
		return ok && f <= limit
	}, fmt.Sprintf("Greater than maximum %s", valc.FormatValue(limit)))
}

// MinLen requires a string or sequence with at least n elements.
func MinLen(n int) dsl.Schema {
	return dsl.Predicate(func(v any) bool {
		l, ok := lengthOf(v)
		return ok && l >= n
	}, fmt.Sprintf("Too short (minimum length %d)", n))
}

// MaxLen requires a string or sequence with at most n elements.
func MaxLen(n int) dsl.Schema {
	return dsl.Predicate(func(v any) bool {
		l, ok := lengthOf(v)
		return ok && l <= n
	}, fmt.Sprintf("Too long (maximum length %d)", n))
}

// Match requires a string matched by re.
func Match(re *regexp.Regexp) dsl.Schema {
	return dsl.Predicate(func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}, fmt.Sprintf("Does not match pattern %s", re.String()))
}

func numValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func lengthOf(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return len(t), true
	case []any:
		return len(t), true
	}
	return 0, false
}
