package dsl

import (
	valc "github.com/karitora/valc"
)

// Schema is a declarative validator description: a single step or a
// chain of steps. Schemas are pure data; Compile consumes them once and
// produces the reusable check function.
type Schema interface {
	isSchema()
}

// stepKind tags every step variant. Kinds drive chain compilation only;
// they are never consulted at evaluation time.
type stepKind int

const (
	kindArray stepKind = iota
	kindBoolean
	kindNumber
	kindInteger
	kindString
	kindNonEmpty
	kindOptional
	kindEnum
	kindPredicate
	kindFunc
	kindObject
	kindIndexed
	kindOneOf
)

var kindNames = map[stepKind]string{
	kindArray:     "array",
	kindBoolean:   "boolean",
	kindNumber:    "number",
	kindInteger:   "integer",
	kindString:    "string",
	kindNonEmpty:  "non-empty",
	kindOptional:  "optional",
	kindEnum:      "enum",
	kindPredicate: "predicate",
	kindFunc:      "function",
	kindObject:    "object",
	kindIndexed:   "indexed",
	kindOneOf:     "oneOf",
}

func (k stepKind) String() string { return kindNames[k] }

// basicKinds maps the string tags accepted by Kind to their step kinds.
var basicKinds = map[string]stepKind{
	"array":     kindArray,
	"boolean":   kindBoolean,
	"number":    kindNumber,
	"integer":   kindInteger,
	"string":    kindString,
	"non-empty": kindNonEmpty,
}

type basicStep struct{ tag string }

type predicateStep struct {
	fn     func(any) bool
	msg    string
	detail *valc.Detail
}

type funcStep struct {
	fn func(any) valc.Result
}

type optionalStep struct {
	inner    Schema
	fallback any
}

type enumStep struct{ options []any }

// ObjectField pairs a property name with its sub-schema. Declaration
// order is preserved through merging and evaluation.
type ObjectField struct {
	Name   string
	Schema Schema
}

type objectStep struct{ fields []ObjectField }

type indexedStep struct{ entries []Schema }

type oneOfStep struct{ branches []Schema }

type chainStep struct{ steps []Schema }

func (basicStep) isSchema()      {}
func (*predicateStep) isSchema() {}
func (*funcStep) isSchema()      {}
func (*optionalStep) isSchema()  {}
func (*enumStep) isSchema()      {}
func (*objectStep) isSchema()    {}
func (*indexedStep) isSchema()   {}
func (*oneOfStep) isSchema()     {}
func (*chainStep) isSchema()     {}

// Kind builds a basic-kind step from its string tag ("array", "boolean",
// "number", "integer", "string", "non-empty"). An unrecognized tag is an
// authoring error reported at compile time.
func Kind(tag string) Schema { return basicStep{tag: tag} }

// Array accepts any sequence value.
func Array() Schema { return basicStep{tag: "array"} }

// Boolean accepts booleans.
func Boolean() Schema { return basicStep{tag: "boolean"} }

// Number accepts numeric values other than NaN.
func Number() Schema { return basicStep{tag: "number"} }

// Integer refines number: finite, fraction-free, within the safe range.
func Integer() Schema { return basicStep{tag: "integer"} }

// String accepts strings.
func String() Schema { return basicStep{tag: "string"} }

// NonEmpty refines strings and sequences to those with at least one
// element.
func NonEmpty() Schema { return basicStep{tag: "non-empty"} }

// Predicate wraps a caller-supplied test. A false return fails with msg;
// a panic is recovered and reported with a caught detail. msg must be
// non-empty.
func Predicate(fn func(any) bool, msg string) Schema {
	return &predicateStep{fn: fn, msg: msg}
}

// PredicateWith is Predicate with an attached detail payload emitted on
// plain non-match.
func PredicateWith(fn func(any) bool, msg string, detail *valc.Detail) Schema {
	return &predicateStep{fn: fn, msg: msg, detail: detail}
}

// Func embeds a raw transform: the returned Result's issues are rebased
// to the step's installation path, and its value (possibly transformed)
// flows on. This is how a nested, independently compiled check composes
// into a larger schema.
func Func(fn func(any) valc.Result) Schema { return &funcStep{fn: fn} }

// Optional wraps inner so that a nil input yields fallback instead. The
// fallback is validated against inner at compile time; a fallback that
// fails its own rule is an authoring error.
func Optional(inner Schema, fallback any) Schema {
	return &optionalStep{inner: inner, fallback: fallback}
}

// Enum accepts exactly the listed literal options (strings, numbers,
// booleans). Non-literal options are authoring errors.
func Enum(options ...any) Schema { return &enumStep{options: options} }

// Field declares one object property.
func Field(name string, s Schema) ObjectField { return ObjectField{Name: name, Schema: s} }

// Object accepts string-keyed mappings with exactly the declared
// properties. A field is required unless its schema's outermost step is
// Optional.
func Object(fields ...ObjectField) Schema { return &objectStep{fields: fields} }

// Indexed accepts sequences of exactly len(entries) elements, validating
// each position against its own schema.
func Indexed(entries ...Schema) Schema { return &indexedStep{entries: entries} }

// OneOf tries each branch in order and keeps the first success. When all
// branches fail, every branch's issues are reported.
func OneOf(branches ...Schema) Schema { return &oneOfStep{branches: branches} }

// Chain applies steps in order with short-circuit on the first failure.
// Chain well-formedness (head refinements, adjacent-kind compatibility,
// mergeable runs) is verified at compile time.
func Chain(steps ...Schema) Schema { return &chainStep{steps: steps} }
