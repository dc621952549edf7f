package dsl

import (
	"fmt"
	"math"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	valc "github.com/karitora/valc"
)

// maxSafeInteger bounds the fraction-free range exactly representable in
// a float64.
const maxSafeInteger = 1<<53 - 1

// compileStep maps one step to its check function, installed at path at.
// Kinds that carry nested schemas compile them recursively; every
// authoring error aborts compilation.
func compileStep(s Schema, at valc.Path) (valc.Check, error) {
	switch t := s.(type) {
	case basicStep:
		k, ok := basicKinds[t.tag]
		if !ok {
			return nil, schemaErrf(at, "Unknown basic kind %q", t.tag)
		}
		return compileBasic(k, at), nil
	case *predicateStep:
		return compilePredicate(t, at)
	case *funcStep:
		return compileFunc(t, at)
	case *optionalStep:
		return compileOptional(t, at)
	case *enumStep:
		return compileEnum(t, at)
	case *objectStep:
		return compileObject(t, at)
	case *indexedStep:
		return compileIndexed(t, at)
	case *oneOfStep:
		return compileOneOf(t, at)
	}
	return nil, schemaErrf(at, "Unrecognized schema step")
}

func compileBasic(k stepKind, at valc.Path) valc.Check {
	switch k {
	case kindArray:
		return func(v any) valc.Result {
			if _, ok := v.([]any); !ok {
				return valc.Fail(at, "Not an array", nil)
			}
			return valc.Ok(v)
		}
	case kindBoolean:
		return func(v any) valc.Result {
			if _, ok := v.(bool); !ok {
				return valc.Fail(at, "Not a boolean", nil)
			}
			return valc.Ok(v)
		}
	case kindNumber:
		return func(v any) valc.Result {
			if f, ok := numValue(v); !ok || math.IsNaN(f) {
				return valc.Fail(at, "Not a number", nil)
			}
			return valc.Ok(v)
		}
	case kindInteger:
		return func(v any) valc.Result {
			f, ok := numValue(v)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
				return valc.Fail(at, "Not an integer", nil)
			}
			return valc.Ok(v)
		}
	case kindString:
		return func(v any) valc.Result {
			if _, ok := v.(string); !ok {
				return valc.Fail(at, "Not a string", nil)
			}
			return valc.Ok(v)
		}
	default: // kindNonEmpty
		return func(v any) valc.Result {
			switch t := v.(type) {
			case string:
				if len(t) > 0 {
					return valc.Ok(v)
				}
			case []any:
				if len(t) > 0 {
					return valc.Ok(v)
				}
			}
			return valc.Fail(at, "Is empty", nil)
		}
	}
}

func compilePredicate(t *predicateStep, at valc.Path) (valc.Check, error) {
	if t.fn == nil {
		return nil, schemaErrf(at, "Predicate step has no function")
	}
	if t.msg == "" {
		return nil, schemaErrf(at, "Predicate step has no error message")
	}
	fn, msg, detail := t.fn, t.msg, t.detail
	return func(v any) valc.Result {
		var pass bool
		if err := capture(func() { pass = fn(v) }); err != nil {
			return valc.Fail(at, "Predicate function threw an error", valc.Caught(err))
		}
		if !pass {
			return valc.Fail(at, msg, detail)
		}
		return valc.Ok(v)
	}, nil
}

func compileFunc(t *funcStep, at valc.Path) (valc.Check, error) {
	if t.fn == nil {
		return nil, schemaErrf(at, "Function step has no function")
	}
	fn := t.fn
	return func(v any) valc.Result {
		var r valc.Result
		if err := capture(func() { r = fn(v) }); err != nil {
			return valc.Fail(at, "Validation function threw an error", valc.Caught(err))
		}
		if !r.Valid() {
			return valc.Fail(at, "Validation function did not return a Result", nil)
		}
		return r.At(at)
	}, nil
}

// compileOptional compiles the inner schema at the root path and rebases
// at evaluation time, so the fallback can be pre-validated with clean
// relative diagnostics.
func compileOptional(t *optionalStep, at valc.Path) (valc.Check, error) {
	inner, err := compileSchema(t.inner, nil)
	if err != nil {
		return nil, err
	}
	fb := inner(t.fallback)
	if !fb.OK() {
		b := &strings.Builder{}
		b.WriteString("Invalid optional fallback:")
		for _, it := range fb.Issues() {
			b.WriteString("\n  ")
			b.WriteString(it.String())
		}
		return nil, &SchemaError{Path: at, Message: b.String()}
	}
	validated := fb.Value()
	return func(v any) valc.Result {
		if v == nil {
			return valc.Ok(validated)
		}
		return inner(v).At(at)
	}, nil
}

func compileEnum(t *enumStep, at valc.Path) (valc.Check, error) {
	if len(t.options) == 0 {
		return nil, schemaErrf(at, "Enum requires at least one option")
	}
	options := append([]any(nil), t.options...)
	for _, o := range options {
		if !isLiteral(o) {
			return nil, schemaErrf(at, "Enum option is not a literal value (found %s)", valc.FormatValue(o))
		}
	}
	return func(v any) valc.Result {
		for _, o := range options {
			if literalEqual(v, o) {
				return valc.Ok(v)
			}
		}
		return valc.Fail(at, "Unexpected value", valc.Expected(options...))
	}, nil
}

type compiledField struct {
	name     string
	check    valc.Check
	required bool
}

func compileObject(t *objectStep, at valc.Path) (valc.Check, error) {
	fields := make([]compiledField, 0, len(t.fields))
	declared := make(map[string]struct{}, len(t.fields))
	for _, f := range t.fields {
		c, err := compileSchema(f.Schema, at.Extend(valc.Key(f.Name)))
		if err != nil {
			return nil, err
		}
		fields = append(fields, compiledField{name: f.Name, check: c, required: !isOptionalSchema(f.Schema)})
		declared[f.Name] = struct{}{}
	}
	return func(v any) valc.Result {
		m, ok := v.(map[string]any)
		if !ok {
			return valc.Fail(at, "Not an object", nil)
		}
		// Missing required fields abort before any field-level check runs.
		var missing []any
		for _, f := range fields {
			if !f.required {
				continue
			}
			if _, present := m[f.name]; !present {
				missing = append(missing, f.name)
			}
		}
		if len(missing) > 0 {
			return valc.Fail(at, "Missing expected properties", valc.Expected(missing...))
		}
		var extra []string
		for k := range m {
			if _, known := declared[k]; !known {
				extra = append(extra, k)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			unexpected := make([]any, 0, len(extra))
			for _, k := range extra {
				unexpected = append(unexpected, k)
			}
			return valc.Fail(at, "Found unexpected properties", valc.Unexpected(unexpected...))
		}
		results := make([]valc.Result, len(fields))
		for i, f := range fields {
			// Absent optional fields see nil and produce their fallback.
			results[i] = f.check(m[f.name])
		}
		g := valc.Gather(results)
		if !g.OK() {
			return g
		}
		vals := g.Value().([]any)
		out := make(map[string]any, len(fields))
		for i, f := range fields {
			// Duplicated fields from chain merging: last entry wins in the
			// output map, every entry still validated.
			out[f.name] = vals[i]
		}
		return valc.Ok(out)
	}, nil
}

func compileIndexed(t *indexedStep, at valc.Path) (valc.Check, error) {
	checks := make([]valc.Check, len(t.entries))
	for i, e := range t.entries {
		c, err := compileSchema(e, at.Extend(valc.Index(i)))
		if err != nil {
			return nil, err
		}
		checks[i] = c
	}
	n := len(t.entries)
	msg := fmt.Sprintf("Expected array with %d entries", n)
	if n == 1 {
		msg = "Expected array with 1 entry"
	}
	return func(v any) valc.Result {
		arr, ok := v.([]any)
		if !ok {
			return valc.Fail(at, "Not an array", nil)
		}
		if len(arr) != n {
			return valc.Fail(at, msg, valc.Found(len(arr)))
		}
		results := make([]valc.Result, n)
		for i, c := range checks {
			results[i] = c(arr[i])
		}
		g := valc.Gather(results)
		if !g.OK() {
			return g
		}
		return valc.Ok(g.Value())
	}, nil
}

func compileOneOf(t *oneOfStep, at valc.Path) (valc.Check, error) {
	if len(t.branches) == 0 {
		return nil, schemaErrf(at, "OneOf requires at least one branch")
	}
	checks := make([]valc.Check, len(t.branches))
	for i, b := range t.branches {
		c, err := compileSchema(b, at.Extend(valc.Key(fmt.Sprintf("Branch %d", i))))
		if err != nil {
			return nil, err
		}
		checks[i] = c
	}
	return func(v any) valc.Result {
		var iss valc.Issues
		for _, c := range checks {
			r := c(v)
			if r.OK() {
				return r
			}
			iss = append(iss, r.Issues()...)
		}
		return valc.FailWith(iss)
	}, nil
}

// isOptionalSchema reports whether a field schema's outermost step is
// Optional, which is what decides required-ness in objects.
func isOptionalSchema(s Schema) bool {
	switch t := s.(type) {
	case *optionalStep:
		return true
	case *chainStep:
		if len(t.steps) > 0 {
			return isOptionalSchema(t.steps[0])
		}
	}
	return false
}

// capture invokes f, converting a panic into an error. Caller-supplied
// predicates and transforms must never unwind through the engine.
func capture(f func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if e, ok := p.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", p)
		}
	}()
	f()
	return nil
}

// numValue extracts a float64 from the numeric representations produced
// by the supported decoders.
func numValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
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

func isLiteral(v any) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	_, ok := numValue(v)
	return ok
}

// literalEqual compares a runtime value against an enum option. Numbers
// compare numerically regardless of representation; strings and bools
// compare directly. Composite values never match a literal.
func literalEqual(v, option any) bool {
	if fo, ok := numValue(option); ok {
		fv, ok := numValue(v)
		return ok && fv == fo
	}
	switch t := v.(type) {
	case string:
		return t == option
	case bool:
		return t == option
	}
	return false
}
