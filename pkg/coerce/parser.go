package coerce

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/rulekit/internal/value"
)

// Parser converts one raw field value into its typed form. Parsers never
// receive nil; absent fields are left untouched.
type Parser func(v any) any

// Chain applies parsers left to right.
func Chain(parsers ...Parser) Parser {
	return func(v any) any {
		for _, p := range parsers {
			v = p(v)
		}
		return v
	}
}

var (
	binaryRegex = regexp.MustCompile(`(?i)^(true|[1-9]+[0-9]*)$`)
	dotRun      = regexp.MustCompile(`\.{2,}`)
)

func builtins() map[string]Parser {
	return map[string]Parser{
		"binary":    Binary,
		"lowercase": Lowercase,
		"uppercase": Uppercase,
		"title":     Title,
		"integer":   Integer,
		"array":     Array,
		"trim":      Trim,
		"email":     Email,
	}
}

// Binary maps "true" (any case) and positive integers written without a
// leading zero to 1, and everything else to 0.
func Binary(v any) any {
	if binaryRegex.MatchString(value.String(v)) {
		return 1
	}
	return 0
}

// Lowercase stringifies v and lowercases it. Casers are stateful, so each
// call builds its own.
func Lowercase(v any) any {
	return cases.Lower(language.Und).String(value.String(v))
}

// Uppercase stringifies v and uppercases it.
func Uppercase(v any) any {
	return cases.Upper(language.Und).String(value.String(v))
}

// Title stringifies v and title-cases every word.
func Title(v any) any {
	return cases.Title(language.Und).String(value.String(v))
}

// Integer reads the leading base-10 integer of v as a float64, or NaN when
// there is none. Integer("12px") is 12 and Integer(3.9) is 3.
func Integer(v any) any {
	return value.ParseInt(v)
}

// Array keeps lists, splits strings on commas and wraps anything else.
func Array(v any) any {
	if value.IsList(v) {
		return v
	}
	if s, ok := v.(string); ok {
		parts := strings.Split(s, ",")
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out
	}
	return []any{v}
}

// Trim removes surrounding whitespace from strings; other values pass through.
func Trim(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// Email trims and lowercases an address and collapses repeated dots in its
// local part. Non-strings pass through.
func Email(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.ToLower(strings.TrimSpace(s))

	local, domain, found := strings.Cut(s, "@")
	if !found || strings.Contains(domain, "@") {
		return s
	}
	local = strings.Trim(dotRun.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}
