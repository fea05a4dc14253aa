package validator

import (
	"fmt"
	"regexp"

	"github.com/dmitrymomot/rulekit/internal/value"
)

var (
	matchAllRegex = regexp.MustCompile(`(.)*`)
	zipcodeRegex  = regexp.MustCompile(`^\d{3}-\d{2}$`)
)

func patternRules() map[string]Definition {
	return map[string]Definition{
		// match accepts the pattern as a compiled *regexp.Regexp or as a
		// string, which is compiled once and cached by the engine.
		"match": {
			Message: "%s doesn't match the required pattern",
			Params:  Params{"pattern": matchAllRegex},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				re, err := pattern(ctx, ctx.Param(ref, "pattern"))
				if err != nil {
					return false, err
				}
				return re.MatchString(value.String(v)), nil
			},
		},
		"zipcode": {
			Message: "%s must be valid zip code format XX-XXX",
			Test: Check(func(v any) bool {
				return zipcodeRegex.MatchString(value.String(v))
			}),
		},
	}
}

func pattern(ctx *Context, p any) (*regexp.Regexp, error) {
	switch t := p.(type) {
	case *regexp.Regexp:
		return t, nil
	case string:
		re, err := ctx.Pattern(t)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pattern %q: %w", ErrInvalidRef, t, err)
		}
		return re, nil
	}
	return nil, fmt.Errorf("%w: pattern must be a string or *regexp.Regexp, got %T", ErrInvalidRef, p)
}
