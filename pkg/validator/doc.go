// Package validator implements a declarative, composable validation engine
// for keyed records.
//
// Rules are registered by name in a Registry. A simple rule is a predicate
// with a message template and default parameters; a recurrent rule carries a
// nested Ruleset and validates the field value as a record of its own. A
// Ruleset maps field names to rule references, which are either a rule name,
// a rule name with parameter overrides (and optionally a message override),
// or an ordered sequence of those.
//
// The Engine evaluates every reference of every field in declaration order
// and returns a Result: an ordered list of violations. An empty Result means
// the record is valid. Rules other than "required" are skipped for absent
// fields, so optional fields are expressed by leaving "required" out.
//
// # Usage
//
//	engine := validator.New()
//
//	rs := validator.Ruleset{}.
//		Add("email", validator.Named("required"), validator.Named("email")).
//		Add("name", validator.Override("maxLength", validator.Params{"maxLength": 32}))
//
//	res, err := engine.Validate(map[string]any{"email": "bad"}, rs)
//	if err != nil {
//		// unknown rule, malformed reference or nesting too deep
//	}
//	for _, msg := range res.Messages() {
//		fmt.Println(msg) // email must be a valid e-mail address
//	}
//
// Recurrent rules validate nested records:
//
//	engine.Register("book", validator.Definition{
//		Message:   "invalid %s",
//		Recurrent: true,
//		Ruleset: validator.Ruleset{}.
//			Add("title", validator.Named("required")).
//			Add("pages", validator.Named("positive")),
//	})
//
// # Messages
//
// Message templates replace %s with the field name and %param tokens with
// the per-field override, the rule default, or leave the token as is, in
// that order. See Format and ResolveParam.
//
// # Custom rules
//
// A predicate receives a *Context that lets it read its parameters, call
// other registered rules under their own defaults and run nested validation:
//
//	engine.Register("adult", validator.Definition{
//		Message: "%s must be at least %age",
//		Params:  validator.Params{"age": 18},
//		Test: func(ctx *validator.Context, v any, ref validator.Ref) (bool, error) {
//			age := ctx.Param(ref, "age")
//			return ctx.Call("between", v, validator.Override("between", validator.Params{"low": age, "high": 200}))
//		},
//	})
//
// # Error Handling
//
// Field violations are never errors. Structural problems abort validation and
// are reported with sentinel errors that can be matched with errors.Is:
// ErrUnknownRule, ErrIncompleteRule, ErrMissingRuleset, ErrInvalidRef,
// ErrInvalidRuleset and ErrMaxDepthExceeded. Result implements error, so a
// non-empty result can be returned up the stack via Result.Err and recovered
// with ExtractResult.
package validator
