package valc

import (
	"strconv"
	"strings"
)

// Seg is a single step within a Path: either a property name or an
// array index.
type Seg struct {
	key     string
	index   int
	isIndex bool
}

// Key builds a property-name segment.
func Key(name string) Seg { return Seg{key: name} }

// Index builds an array-index segment.
func Index(i int) Seg { return Seg{index: i, isIndex: true} }

// IsIndex reports whether the segment addresses an array position.
func (s Seg) IsIndex() bool { return s.isIndex }

// String renders the segment label without decoration.
func (s Seg) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path addresses a location inside a nested value, root first. The empty
// path is the root. Paths are immutable; Extend and Join return copies.
type Path []Seg

// Extend appends one segment, never mutating the receiver.
func (p Path) Extend(s Seg) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, s)
}

// Join concatenates two paths, never mutating either input.
func (p Path) Join(q Path) Path {
	if len(q) == 0 {
		return p
	}
	out := make(Path, 0, len(p)+len(q))
	out = append(out, p...)
	return append(out, q...)
}

// String renders the path as the diagnostic prefix used in front of
// messages, one "At `seg`: " per segment from root to leaf.
func (p Path) String() string {
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteString("At `")
		b.WriteString(s.String())
		b.WriteString("`: ")
	}
	return b.String()
}

// PathOf normalizes the shorthand forms accepted wherever a path is
// expected: nil (root), a dot-delimited string ("a.b.c"), an integer
// index, a Seg, or an already-built Path.
func PathOf(v any) Path {
	switch t := v.(type) {
	case nil:
		return nil
	case Path:
		return t
	case Seg:
		return Path{t}
	case string:
		if t == "" {
			return nil
		}
		parts := strings.Split(t, ".")
		out := make(Path, 0, len(parts))
		for _, p := range parts {
			out = append(out, Key(p))
		}
		return out
	case int:
		return Path{Index(t)}
	case []any:
		out := make(Path, 0, len(t))
		for _, e := range t {
			switch s := e.(type) {
			case string:
				out = append(out, Key(s))
			case int:
				out = append(out, Index(s))
			case Seg:
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
