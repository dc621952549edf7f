package valc

import (
	"errors"
	"fmt"
	"strings"
)

// Detail is the optional machine-readable payload attached to an Issue.
// Exactly one of the constructors below should produce it.
type Detail struct {
	// Found is the offending value (valid only when HasFound is set; the
	// flag disambiguates an explicit nil from no payload).
	Found    any
	HasFound bool
	// Expected lists the values that would have been accepted.
	Expected []any
	// Unexpected lists the values that were not allowed to appear.
	Unexpected []any
	// Caught carries an error recovered from caller-supplied code.
	Caught error
}

// Found records the value that was actually seen.
func Found(v any) *Detail { return &Detail{Found: v, HasFound: true} }

// Expected records the values that would have been accepted.
func Expected(vs ...any) *Detail { return &Detail{Expected: vs} }

// Unexpected records values that were not allowed to appear.
func Unexpected(vs ...any) *Detail { return &Detail{Unexpected: vs} }

// Caught wraps an error recovered from a predicate or transform.
func Caught(err error) *Detail { return &Detail{Caught: err} }

// Issue is a single validation failure, addressed by the path at which
// it occurred. Issues are immutable once constructed.
type Issue struct {
	Path    Path
	Message string
	Detail  *Detail
}

// Under returns a copy of the issue with prefix prepended to its path.
// It is used to rebase issues produced under a different (typically
// root) path context into the caller's location.
func (i Issue) Under(prefix Path) Issue {
	if len(prefix) == 0 {
		return i
	}
	return Issue{Path: prefix.Join(i.Path), Message: i.Message, Detail: i.Detail}
}

// String renders the issue as a full diagnostic line.
func (i Issue) String() string {
	return FormatMessage(i.Path, i.Message, i.Detail)
}

// Issues is an ordered collection of validation failures. It implements
// error so a failed Result can flow through regular error returns.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Under rebases every contained issue by prepending prefix.
func (iss Issues) Under(prefix Path) Issues {
	if len(prefix) == 0 || len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		out[i] = it.Under(prefix)
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// FormatMessage is the single formatting routine shared by validation
// issues and compile-time schema errors: path prefix, message text, then
// the detail payload when present.
func FormatMessage(p Path, msg string, d *Detail) string {
	b := &strings.Builder{}
	b.WriteString(p.String())
	b.WriteString(msg)
	if d == nil {
		return b.String()
	}
	switch {
	case d.HasFound:
		b.WriteString(" (found ")
		b.WriteString(FormatValue(d.Found))
		b.WriteString(")")
	case len(d.Expected) > 0:
		b.WriteString(" (expected one of ")
		b.WriteString(formatValueList(d.Expected))
		b.WriteString(")")
	case len(d.Unexpected) > 0:
		b.WriteString(" (unexpected ")
		b.WriteString(formatValueList(d.Unexpected))
		b.WriteString(")")
	case d.Caught != nil:
		b.WriteString(": ")
		b.WriteString(d.Caught.Error())
	}
	return b.String()
}
