package validator

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/rulekit/internal/value"
)

const fieldToken = "%s"

var paramToken = regexp.MustCompile(`%([a-zA-Z](?:[a-zA-Z0-9\-_]+)?)`)

// ResolveParam resolves a message parameter: the per-field override wins,
// then the rule's default. ok is false when neither is set, in which case
// the token is left as written.
func ResolveParam(name string, overrides, defaults Params) (any, bool) {
	if v, ok := overrides[name]; ok && v != nil {
		return v, true
	}
	if v, ok := defaults[name]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// Format renders the violation message of def for the field key. message,
// when not empty, replaces the definition's own template; overrides are the
// per-field parameters. got is the failing value and only matters for
// definitions that pick their template from it.
func Format(def Definition, key string, got any, message string, overrides Params) string {
	if message == "" {
		message = def.template(got)
	}
	message = strings.ReplaceAll(message, fieldToken, key)
	return paramToken.ReplaceAllStringFunc(message, func(token string) string {
		v, ok := ResolveParam(token[1:], overrides, def.Params)
		if !ok {
			return token
		}
		return renderParam(v)
	})
}

func renderParam(v any) string {
	if re, ok := v.(*regexp.Regexp); ok {
		return "/" + re.String() + "/"
	}
	return value.String(v)
}
