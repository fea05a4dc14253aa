package validator

import "github.com/dmitrymomot/rulekit/internal/value"

func comparableRules() map[string]Definition {
	return map[string]Definition{
		// required is the only rule that runs on absent fields. Empty strings,
		// lists and maps are present.
		RequiredRule: {
			Message: "%s is required",
			Test: Check(func(v any) bool {
				return !value.IsNil(v)
			}),
		},
		"equals": {
			Message: "%s isn't '%to'",
			Params:  Params{"to": ""},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				return value.StrictEqual(v, ctx.Param(ref, "to")), nil
			},
		},
		"deny": {
			Message: "%s is forbidden",
			Test: Check(func(any) bool {
				return false
			}),
		},
	}
}
