package validator

import (
	"fmt"

	"github.com/dmitrymomot/rulekit/internal/value"
)

const listElementKey = "element"

func collectionRules() map[string]Definition {
	return map[string]Definition{
		// list validates every element against the ruleset parameter (a rule
		// reference). By default any failing element collapses into one
		// violation; in detail mode the failing elements are reported as
		// nested entries keyed field[index].
		"list": {
			Message: "invalid %s list",
			Params:  Params{"ruleset": RequiredRule},
			Test:    testList,
		},
		"notEmpty": {
			Message: "%s can't be empty array",
			Test: Check(func(v any) bool {
				return !value.IsEmpty(v)
			}),
		},
		"array": {
			Message: "%s must be an array",
			Test:    Check(value.IsList),
		},
	}
}

func testList(ctx *Context, v any, ref Ref) (bool, error) {
	elemRef, err := ParseRef(ctx.Param(ref, "ruleset"))
	if err != nil {
		return false, fmt.Errorf("list ruleset: %w", err)
	}
	items, ok := value.Elements(v)
	if !ok {
		return true, nil
	}

	detail := ctx.ListDetail(ref)
	valid := true
	for i, item := range items {
		key := listElementKey
		if detail {
			key = fmt.Sprintf("%s[%d]", ctx.Field(), i)
		}
		res, err := ctx.Validate(map[string]any{key: item}, Ruleset{{Name: key, Ref: elemRef}})
		if err != nil {
			return false, err
		}
		if len(res) == 0 {
			continue
		}
		if !detail {
			return false, nil
		}
		valid = false
		ctx.Explain(res)
	}
	return valid, nil
}
