package validator

import (
	"math"

	"github.com/dmitrymomot/rulekit/internal/value"
)

func stringRules() map[string]Definition {
	return map[string]Definition{
		"lengthBetween": {
			Message: "%s must be between %low and %high characters long",
			Params:  Params{"low": 0, "high": 5},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				n, ok := value.Len(v)
				if !ok {
					return false, nil
				}
				low := value.ToNumber(ctx.Param(ref, "low"))
				high := value.ToNumber(ctx.Param(ref, "high"))
				return low <= float64(n) && float64(n) <= high, nil
			},
		},
		"minLength": {
			MessageFor: lengthMessage("%s must be at least %minLength elements long", "%s must be at least %minLength characters long"),
			Params:     Params{"minLength": 1},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				return ctx.Call("lengthBetween", v, Override("lengthBetween", Params{
					"low":  ctx.Param(ref, "minLength"),
					"high": math.Inf(1),
				}))
			},
		},
		"maxLength": {
			MessageFor: lengthMessage("%s must be at most %maxLength elements long", "%s must be at most %maxLength characters long"),
			Params:     Params{"maxLength": 1},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				return ctx.Call("lengthBetween", v, Override("lengthBetween", Params{
					"low":  0,
					"high": ctx.Param(ref, "maxLength"),
				}))
			},
		},
	}
}

// lengthMessage counts lists in elements and everything else in characters.
func lengthMessage(list, other string) func(any) string {
	return func(v any) string {
		if value.IsList(v) {
			return list
		}
		return other
	}
}
