package valc

// Result is the outcome of applying a compiled check to a value: either
// a success carrying the validated (possibly transformed) value, or a
// failure carrying one or more path-addressed issues. The zero Result is
// neither; use Ok, Fail or FailWith.
type Result struct {
	value  any
	issues Issues
	ok     bool
}

// Ok wraps a validated value.
func Ok(v any) Result { return Result{value: v, ok: true} }

// Fail builds a failed Result with a single issue at the given path.
func Fail(p Path, msg string, d *Detail) Result {
	return Result{issues: Issues{{Path: p, Message: msg, Detail: d}}}
}

// FailAll builds a failed Result with one issue per message, all at the
// same path and sharing the same detail payload.
func FailAll(p Path, msgs []string, d *Detail) Result {
	iss := make(Issues, 0, len(msgs))
	for _, m := range msgs {
		iss = append(iss, Issue{Path: p, Message: m, Detail: d})
	}
	return Result{issues: iss}
}

// FailWith wraps already-built issues as a failed Result.
func FailWith(iss Issues) Result { return Result{issues: iss} }

// OK reports whether the result is a success.
func (r Result) OK() bool { return r.ok }

// Value returns the validated value; nil on failure.
func (r Result) Value() any { return r.value }

// Issues returns the collected failures; nil on success.
func (r Result) Issues() Issues { return r.issues }

// Valid reports whether the result was properly constructed (a success
// or a failure with at least one issue). The zero Result is invalid.
func (r Result) Valid() bool { return r.ok || len(r.issues) > 0 }

// Map replaces the value on success; failures pass through untouched.
func (r Result) Map(f func(any) any) Result {
	if !r.ok {
		return r
	}
	return Ok(f(r.value))
}

// At rebases every contained issue by prepending p. It is a no-op on
// success and when p is empty.
func (r Result) At(p Path) Result {
	if r.ok || len(p) == 0 {
		return r
	}
	return Result{issues: r.issues.Under(p)}
}

// Err returns the issues as an error, or nil on success.
func (r Result) Err() error {
	if r.ok {
		return nil
	}
	return r.issues
}

// Gather combines results in order: all successes yield a success whose
// value is the ordered slice of values; any failure yields a failure
// whose issues are the concatenation of every failing entry's issues.
// Every entry contributes; Gather never short-circuits.
func Gather(rs []Result) Result {
	var iss Issues
	vals := make([]any, 0, len(rs))
	for _, r := range rs {
		if r.ok {
			vals = append(vals, r.value)
			continue
		}
		iss = append(iss, r.issues...)
	}
	if len(iss) > 0 {
		return Result{issues: iss}
	}
	return Ok(vals)
}
