package validator

import "github.com/dmitrymomot/rulekit/internal/value"

func choiceRules() map[string]Definition {
	return map[string]Definition{
		"order": {
			Message: "%s must be either 'asc' or 'desc'",
			Params:  Params{"order": []any{"asc", "desc"}},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				return value.Contains(ctx.Param(ref, "order"), v), nil
			},
		},
	}
}
