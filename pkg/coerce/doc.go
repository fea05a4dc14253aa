// Package coerce converts raw request parameters into typed values before
// validation.
//
// Values arriving from query strings or form bodies are strings; a Plan
// names, per field, the parsers that turn them into numbers, flags, lists or
// normalized text. The validator package never depends on this package: run
// Coerce first and validate its output.
//
//	plan := coerce.Plan{}.
//		Add("subscribe", "binary").
//		Add("tags", "array").
//		Add("login", "email")
//
//	record, err := coerce.Coerce(raw, plan)
//	if err != nil {
//		// the plan names an unknown parser
//	}
//	res, err := engine.Validate(record, rs)
//
// Built-in parsers: binary, lowercase, uppercase, title, integer, array, trim
// and email. Register adds custom ones.
//
// Coerce never modifies its input; it returns a shallow copy.
package coerce
