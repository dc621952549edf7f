package dsl_test

import (
	"math"
	"strings"
	"testing"

	valc "github.com/karitora/valc"
	"github.com/karitora/valc/dsl"
)

func TestChain_StringNonEmpty(t *testing.T) {
	check := mustCompile(t, dsl.Chain(dsl.String(), dsl.NonEmpty()))
	if r := check("x"); !r.OK() {
		t.Fatalf("expected success: %v", r.Issues())
	}
	if it := firstIssue(t, check("")); it.Message != "Is empty" {
		t.Fatalf("got %q", it.Message)
	}
	// first failure short-circuits the refinement
	if it := firstIssue(t, check(0)); it.Message != "Not a string" {
		t.Fatalf("short-circuit: %q", it.Message)
	}
}

func TestChain_NumberInteger(t *testing.T) {
	check := mustCompile(t, dsl.Chain(dsl.Number(), dsl.Integer()))
	if r := check(5.0); !r.OK() {
		t.Fatalf("5.0 is an integer: %v", r.Issues())
	}
	if it := firstIssue(t, check(5.6)); it.Message != "Not an integer" {
		t.Fatalf("fractional: %q", it.Message)
	}
	if it := firstIssue(t, check(math.Inf(1))); it.Message != "Not an integer" {
		t.Fatalf("infinity: %q", it.Message)
	}
	if it := firstIssue(t, check(int64(1)<<54)); it.Message != "Not an integer" {
		t.Fatalf("beyond safe range: %q", it.Message)
	}
}

func TestChain_ArrayNonEmpty(t *testing.T) {
	check := mustCompile(t, dsl.Chain(dsl.Array(), dsl.NonEmpty()))
	if r := check([]any{1}); !r.OK() {
		t.Fatalf("expected success: %v", r.Issues())
	}
	if it := firstIssue(t, check([]any{})); it.Message != "Is empty" {
		t.Fatalf("got %q", it.Message)
	}
}

func TestChain_ArrayIndexed(t *testing.T) {
	check := mustCompile(t, dsl.Chain(dsl.Array(), dsl.Indexed(dsl.Number(), dsl.Boolean())))
	if r := check([]any{1, true}); !r.OK() {
		t.Fatalf("arity refinement: %v", r.Issues())
	}
}

func TestChain_EmptyRejected(t *testing.T) {
	if _, err := dsl.Compile(dsl.Chain()); err == nil {
		t.Fatalf("empty chain must fail compilation")
	}
}

func TestChain_RefinementAtHeadRejected(t *testing.T) {
	for _, s := range []dsl.Schema{dsl.NonEmpty(), dsl.Integer(), dsl.Chain(dsl.NonEmpty())} {
		_, err := dsl.Compile(s)
		if err == nil {
			t.Fatalf("refinement at chain head must fail compilation")
		}
		if !strings.Contains(err.Error(), "refinement") {
			t.Fatalf("diagnostic must name the refinement rule: %v", err)
		}
	}
}

func TestChain_IncompatibleAdjacency(t *testing.T) {
	cases := []dsl.Schema{
		dsl.Chain(dsl.Array(), dsl.String()),
		dsl.Chain(dsl.Number(), dsl.NonEmpty()),
		dsl.Chain(dsl.String(), dsl.Integer()),
		dsl.Chain(dsl.String(), dsl.String()),
		dsl.Chain(dsl.Enum("a"), dsl.String()),
	}
	for i, s := range cases {
		if _, err := dsl.Compile(s); err == nil {
			t.Fatalf("case %d: incompatible adjacency must fail compilation", i)
		}
	}
	// the diagnostic names both kinds in order
	_, err := dsl.Compile(dsl.Chain(dsl.Array(), dsl.String()))
	if err == nil || !strings.Contains(err.Error(), `"array"`) || !strings.Contains(err.Error(), `"string"`) {
		t.Fatalf("diagnostic must name both kinds: %v", err)
	}
}

func TestChain_PredicateIsUniversallyCompatible(t *testing.T) {
	pred := dsl.Predicate(func(any) bool { return true }, "never")
	cases := []dsl.Schema{
		dsl.Chain(dsl.Number(), pred, dsl.Integer()),
		dsl.Chain(pred, dsl.String()),
		dsl.Chain(dsl.Object(), pred),
	}
	for i, s := range cases {
		if _, err := dsl.Compile(s); err != nil {
			t.Fatalf("case %d: predicate adjacency must compile: %v", i, err)
		}
	}
}

func TestChain_EnumMerging(t *testing.T) {
	check := mustCompile(t, dsl.Chain(dsl.Enum(1, 2), dsl.Enum(3, 4)))
	for _, v := range []any{1, 2, 3, 4} {
		if r := check(v); !r.OK() {
			t.Fatalf("merged enum must accept %v: %v", v, r.Issues())
		}
	}
	it := firstIssue(t, check(5))
	if it.Message != "Unexpected value" {
		t.Fatalf("got %q", it.Message)
	}
	exp := it.Detail.Expected
	if len(exp) != 4 || exp[0] != 1 || exp[1] != 2 || exp[2] != 3 || exp[3] != 4 {
		t.Fatalf("merged options must concatenate in order: %v", exp)
	}
}

func TestChain_ObjectMerging(t *testing.T) {
	check := mustCompile(t, dsl.Chain(
		dsl.Object(dsl.Field("a", dsl.Number())),
		dsl.Object(dsl.Field("b", dsl.String())),
	))
	r := check(map[string]any{"a": 1, "b": "x"})
	if !r.OK() {
		t.Fatalf("merged object: %v", r.Issues())
	}
	m := r.Value().(map[string]any)
	if m["a"] != 1 || m["b"] != "x" {
		t.Fatalf("merged result: %v", m)
	}
	// fields from both steps participate in required/unknown handling
	iss := check(map[string]any{"a": 1}).Issues()
	if len(iss) != 1 || iss[0].Message != "Missing expected properties" {
		t.Fatalf("merged required set: %v", iss)
	}
}

func TestChain_ObjectMergingKeepsDuplicates(t *testing.T) {
	// Duplicate field names survive merging; every entry validates and
	// the last one wins in the output map.
	check := mustCompile(t, dsl.Chain(
		dsl.Object(dsl.Field("a", dsl.Number())),
		dsl.Object(dsl.Field("a", dsl.Number())),
	))
	r := check(map[string]any{"a": 1})
	if !r.OK() || r.Value().(map[string]any)["a"] != 1 {
		t.Fatalf("duplicate field: %+v", r)
	}
	iss := check(map[string]any{"a": "x"}).Issues()
	if len(iss) != 2 {
		t.Fatalf("every duplicate entry must validate: %v", iss)
	}
}

func TestChain_NonAdjacentSameKindNotMerged(t *testing.T) {
	pred := dsl.Predicate(func(any) bool { return true }, "never")
	check := mustCompile(t, dsl.Chain(dsl.Enum(1), pred, dsl.Enum(2)))
	// separated enums stay separate: 1 passes the first but not the second
	if r := check(1); r.OK() {
		t.Fatalf("non-adjacent enums must not merge")
	}
	if r := check(2); r.OK() {
		t.Fatalf("2 must fail the first enum before reaching the second")
	}
}

func TestChain_NestedChainsFlatten(t *testing.T) {
	check := mustCompile(t, dsl.Chain(dsl.String(), dsl.Chain(dsl.NonEmpty())))
	if r := check("x"); !r.OK() {
		t.Fatalf("nested chain must flatten: %v", r.Issues())
	}
	if it := firstIssue(t, check("")); it.Message != "Is empty" {
		t.Fatalf("got %q", it.Message)
	}
}

func TestChain_TransformThreadsValue(t *testing.T) {
	trim := dsl.Func(func(v any) valc.Result {
		return valc.Ok(strings.TrimSpace(v.(string)))
	})
	check := mustCompile(t, dsl.Chain(dsl.String(), trim, dsl.NonEmpty()))
	if r := check("  x  "); !r.OK() || r.Value() != "x" {
		t.Fatalf("transformed value must thread through the chain: %+v", r)
	}
	if it := firstIssue(t, check("   ")); it.Message != "Is empty" {
		t.Fatalf("refinement must see the transformed value: %q", it.Message)
	}
}
