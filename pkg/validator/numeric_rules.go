package validator

import (
	"math"
	"regexp"

	"github.com/dmitrymomot/rulekit/internal/value"
)

var integerRegex = regexp.MustCompile(`^-?[0-9]+$`)

func numericRules() map[string]Definition {
	return map[string]Definition{
		// between reads the leading integer of the value, so "12abc" is 12
		// and 3.7 is 3.
		"between": {
			Message: "%s must be between %low and %high",
			Params:  Params{"low": 0, "high": 0},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				n := value.ParseInt(v)
				low := value.ToNumber(ctx.Param(ref, "low"))
				high := value.ToNumber(ctx.Param(ref, "high"))
				return low <= n && n <= high, nil
			},
		},
		"greaterThan": {
			Message: "%s must be greater than %than",
			Params:  Params{"than": 0},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				than := value.ToNumber(ctx.Param(ref, "than"))
				return ctx.Call("between", v, bounds(than+1, math.Inf(1)))
			},
		},
		"lowerThan": {
			Message: "%s must be lower than %than",
			Params:  Params{"than": 0},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				than := value.ToNumber(ctx.Param(ref, "than"))
				return ctx.Call("between", v, bounds(math.Inf(-1), than-1))
			},
		},
		"nonNegative": {
			Message: "%s must be non-negative",
			Test: func(ctx *Context, v any, _ Ref) (bool, error) {
				return ctx.Call("between", v, bounds(0, math.Inf(1)))
			},
		},
		"positive": {
			Message: "%s must be positive",
			Test: func(ctx *Context, v any, _ Ref) (bool, error) {
				return ctx.Call("between", v, bounds(1, math.Inf(1)))
			},
		},
		"negative": {
			Message: "%s must be negative",
			Test: func(ctx *Context, v any, _ Ref) (bool, error) {
				return ctx.Call("between", v, bounds(math.Inf(-1), -1))
			},
		},
		// integer checks the written form: 5.2, NaN and Infinity all fail.
		"integer": {
			Message: "%s must be an integer",
			Test: Check(func(v any) bool {
				return integerRegex.MatchString(value.String(v))
			}),
		},
		"binary": {
			Message: "%s must be either '0' or '1'",
			Test: Check(func(v any) bool {
				if value.IsNil(v) {
					return false
				}
				s := value.String(v)
				return s == "0" || s == "1"
			}),
		},
	}
}

func bounds(low, high float64) Ref {
	return Override("between", Params{"low": low, "high": high})
}
