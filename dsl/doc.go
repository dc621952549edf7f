// Package dsl is the declarative authoring surface of valc: data-only
// schema constructors and the compiler that turns them into executable
// checks.
//
// A schema is a single step or a Chain of steps. Compile validates the
// schema itself (unknown kinds, refinement-led chains, incompatible
// adjacent steps, self-invalidating optional fallbacks) and returns a
// valc.Check; MustCompile panics instead, for package-level schemas.
//
//	var userCheck = dsl.MustCompile(dsl.Object(
//		dsl.Field("id", dsl.Chain(dsl.Number(), dsl.Integer())),
//		dsl.Field("name", dsl.Chain(dsl.String(), dsl.NonEmpty())),
//		dsl.Field("role", dsl.Optional(dsl.Enum("admin", "user"), "user")),
//	))
package dsl
