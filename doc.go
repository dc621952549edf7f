package valc

// Package valc compiles declarative validator descriptions into single
// executable checks over dynamically-typed values.
//
// It provides:
//
// - A Result sum carrying either a validated value or path-addressed Issues
// - A Path model for locating failures inside nested values
// - Compiled Check functions with JSON/YAML input helpers
//
// Design policy:
// - Keep the result/error/path model in the root package; schema
//   constructors and the compiler live under dsl/, reusable predicate
//   helpers under rules/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	check := dsl.MustCompile(dsl.Object(
//		dsl.Field("name", dsl.Chain(dsl.String(), dsl.NonEmpty())),
//		dsl.Field("age", dsl.Chain(dsl.Number(), dsl.Integer())),
//	))
//	r := check.JSON(data)
//	if !r.OK() {
//		for _, it := range r.Issues() { log(it.String()) }
//	}
