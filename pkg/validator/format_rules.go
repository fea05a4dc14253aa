package validator

import (
	"regexp"

	"github.com/dmitrymomot/rulekit/internal/value"
)

// emailLocal matches a dot-atom or a quoted local part.
const emailLocal = "(?:[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
	`|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")`

// emailDomain matches a host name or a bracketed IPv4/general address literal.
const emailDomain = `(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?` +
	`|\[(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}` +
	`(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?|[a-z0-9-]*[a-z0-9]:(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21-\x5a\x53-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])+)\])`

// emailRegex follows RFC 3696 with errata 246. Only the start is anchored.
var emailRegex = regexp.MustCompile(`(?i)^` + emailLocal + `@` + emailDomain)

func formatRules() map[string]Definition {
	return map[string]Definition{
		"email": {
			Message: "%s must be a valid e-mail address",
			Params:  Params{"maxLength": 254},
			Test: func(ctx *Context, v any, ref Ref) (bool, error) {
				s, ok := v.(string)
				if !ok {
					return false, nil
				}
				maxLength := value.ToNumber(ctx.Param(ref, "maxLength"))
				return float64(value.StringLen(s)) <= maxLength && emailRegex.MatchString(s), nil
			},
		},
	}
}
