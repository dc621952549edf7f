package dsl

import (
	valc "github.com/karitora/valc"
)

// Compile turns a schema (single step or chain) into one executable
// check, starting path tracking at the root. Authoring errors (a
// malformed schema, never bad data) are returned as *SchemaError.
func Compile(s Schema) (valc.Check, error) {
	if s == nil {
		return nil, schemaErrf(nil, "Nil schema")
	}
	return compileSchema(s, nil)
}

// MustCompile is Compile panicking on authoring errors, for package-level
// schema variables.
func MustCompile(s Schema) valc.Check {
	c, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return c
}

// compileSchema normalizes a schema into a step list and compiles it as
// a chain; a single step is the chain of one.
func compileSchema(s Schema, at valc.Path) (valc.Check, error) {
	return compileChain(flatten(s), at)
}

// flatten expands nested chains in place so grouping and adjacency
// checks see one flat step list.
func flatten(s Schema) []Schema {
	if c, ok := s.(*chainStep); ok {
		out := make([]Schema, 0, len(c.steps))
		for _, st := range c.steps {
			out = append(out, flatten(st)...)
		}
		return out
	}
	return []Schema{s}
}

func compileChain(steps []Schema, at valc.Path) (valc.Check, error) {
	if len(steps) == 0 {
		return nil, schemaErrf(at, "Empty validator chain")
	}
	kinds := make([]stepKind, len(steps))
	for i, s := range steps {
		k, err := kindOf(s, at)
		if err != nil {
			return nil, err
		}
		kinds[i] = k
	}
	// Refinements narrow an already-established base kind; they cannot
	// lead a chain.
	if kinds[0] == kindNonEmpty || kinds[0] == kindInteger {
		return nil, schemaErrf(at, "Chain cannot start with refinement %q", kinds[0])
	}
	steps, kinds = mergeRuns(steps, kinds)
	for i := 0; i+1 < len(kinds); i++ {
		if !canFollow(kinds[i], kinds[i+1]) {
			return nil, schemaErrf(at, "Step %q cannot be followed by %q", kinds[i], kinds[i+1])
		}
	}
	checks := make([]valc.Check, len(steps))
	for i, s := range steps {
		c, err := compileStep(s, at)
		if err != nil {
			return nil, err
		}
		checks[i] = c
	}
	if len(checks) == 1 {
		return checks[0], nil
	}
	return func(v any) valc.Result {
		r := valc.Ok(v)
		for _, c := range checks {
			if !r.OK() {
				break
			}
			r = c(r.Value())
		}
		return r
	}, nil
}

// kindOf resolves the step kind, surfacing unknown basic-kind tags and
// foreign step shapes as authoring errors.
func kindOf(s Schema, at valc.Path) (stepKind, error) {
	switch t := s.(type) {
	case basicStep:
		k, ok := basicKinds[t.tag]
		if !ok {
			return 0, schemaErrf(at, "Unknown basic kind %q", t.tag)
		}
		return k, nil
	case *predicateStep:
		return kindPredicate, nil
	case *funcStep:
		return kindFunc, nil
	case *optionalStep:
		return kindOptional, nil
	case *enumStep:
		return kindEnum, nil
	case *objectStep:
		return kindObject, nil
	case *indexedStep:
		return kindIndexed, nil
	case *oneOfStep:
		return kindOneOf, nil
	}
	return 0, schemaErrf(at, "Unrecognized schema step")
}

// mergeRuns groups maximal runs of adjacent same-kind steps and replaces
// mergeable runs (object field sets, enum option sets) with one merged
// step. Duplicate field names and options are retained as-is.
func mergeRuns(steps []Schema, kinds []stepKind) ([]Schema, []stepKind) {
	outS := make([]Schema, 0, len(steps))
	outK := make([]stepKind, 0, len(kinds))
	for i := 0; i < len(steps); {
		j := i + 1
		for j < len(steps) && kinds[j] == kinds[i] {
			j++
		}
		run := steps[i:j]
		if len(run) > 1 && kinds[i] == kindObject {
			var fields []ObjectField
			for _, s := range run {
				fields = append(fields, s.(*objectStep).fields...)
			}
			outS = append(outS, &objectStep{fields: fields})
			outK = append(outK, kindObject)
			i = j
			continue
		}
		if len(run) > 1 && kinds[i] == kindEnum {
			var opts []any
			for _, s := range run {
				opts = append(opts, s.(*enumStep).options...)
			}
			outS = append(outS, &enumStep{options: opts})
			outK = append(outK, kindEnum)
			i = j
			continue
		}
		for _, s := range run {
			outS = append(outS, s)
			outK = append(outK, kinds[i])
		}
		i = j
	}
	return outS, outK
}

// canFollow is the adjacency lattice: predicate and function steps carry
// no shape constraint and are compatible everywhere; every other pair
// must be listed to be legal.
func canFollow(prev, next stepKind) bool {
	if prev == kindPredicate || prev == kindFunc || next == kindPredicate || next == kindFunc {
		return true
	}
	switch prev {
	case kindEnum:
		return next == kindEnum
	case kindObject:
		return next == kindObject
	case kindArray:
		return next == kindIndexed || next == kindNonEmpty
	case kindString:
		return next == kindNonEmpty
	case kindNumber:
		return next == kindInteger
	}
	return false
}
