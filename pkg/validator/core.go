package validator

import (
	"fmt"
	"maps"
	"slices"
)

// Predicate reports whether value satisfies a rule. ref carries the
// per-field overrides; ctx gives access to the rule's own defaults, to
// sibling rules and to nested validation. A non-nil error is structural and
// aborts validation; a false result is an ordinary violation.
type Predicate func(ctx *Context, value any, ref Ref) (bool, error)

// Check adapts a parameterless boolean check into a Predicate.
func Check(fn func(value any) bool) Predicate {
	return func(_ *Context, value any, _ Ref) (bool, error) {
		return fn(value), nil
	}
}

// Definition describes a named rule. It is either simple (Test plus a
// message template) or recurrent (Recurrent set and a nested Ruleset the
// field value is validated against as a sub-record).
type Definition struct {
	// Message is the template used for violations. %s stands for the field
	// name and %param for a parameter value.
	Message string

	// MessageFor optionally picks the template from the failing value; it
	// takes precedence over Message.
	MessageFor func(value any) string

	// Params are the rule's default parameters.
	Params Params

	// Test is the predicate of a simple rule.
	Test Predicate

	// Recurrent marks a rule whose check is a nested Ruleset.
	Recurrent bool

	// Ruleset is the nested ruleset of a recurrent rule.
	Ruleset Ruleset
}

// Param returns the default parameter name.
func (d Definition) Param(name string) (any, bool) {
	v, ok := d.Params[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (d Definition) template(value any) string {
	if d.MessageFor != nil {
		return d.MessageFor(value)
	}
	return d.Message
}

func (d Definition) clone() Definition {
	d.Params = maps.Clone(d.Params)
	d.Ruleset = slices.Clone(d.Ruleset)
	return d
}

// CheckDefinition reports ErrIncompleteRule when def is neither a complete
// simple rule nor a complete recurrent rule.
func CheckDefinition(name string, def Definition) error {
	if def.Recurrent {
		if def.Ruleset == nil {
			return fmt.Errorf("%w: %q is recurrent but has no ruleset", ErrIncompleteRule, name)
		}
		return nil
	}
	if def.Test == nil || (def.Message == "" && def.MessageFor == nil) {
		return fmt.Errorf("%w: %q", ErrIncompleteRule, name)
	}
	return nil
}
