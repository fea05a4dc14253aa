package validator

import (
	"fmt"

	"github.com/dmitrymomot/rulekit/internal/value"
)

// Context is handed to every predicate call. It exposes the engine
// capabilities a rule may build on: its own default parameters, the other
// registered rules, and nested validation at the current depth.
type Context struct {
	engine  *Engine
	rule    string
	def     Definition
	field   string
	depth   int
	explain Result
}

// Rule returns the name of the rule being evaluated.
func (c *Context) Rule() string { return c.rule }

// Field returns the record key being validated.
func (c *Context) Field() string { return c.field }

// Depth returns the nesting depth of the current validation; the top-level
// record is at depth zero.
func (c *Context) Depth() int { return c.depth }

// Defaults returns the rule's default parameters. The map must not be modified.
func (c *Context) Defaults() Params { return c.def.Params }

// Param returns the parameter name for this call: the per-field override
// when it is set to a truthy value, otherwise the rule's default. Falsy
// overrides (0, "", false) fall back to the default.
func (c *Context) Param(ref Ref, name string) any {
	if v, ok := ref.Param(name); ok && value.Truthy(v) {
		return v
	}
	v, _ := c.def.Param(name)
	return v
}

// Resolve returns a registered rule definition.
func (c *Context) Resolve(name string) (Definition, error) {
	return c.engine.registry.Resolve(name)
}

// Call evaluates another simple rule's predicate against v, with ref as its
// overrides. The callee sees its own defaults, so rules compose: greaterThan
// is between with a shifted lower bound.
func (c *Context) Call(name string, v any, ref Ref) (bool, error) {
	def, err := c.Resolve(name)
	if err != nil {
		return false, err
	}
	if def.Recurrent {
		return false, fmt.Errorf("%w: %q is recurrent and cannot be called as a predicate", ErrIncompleteRule, name)
	}
	callee := &Context{
		engine: c.engine,
		rule:   name,
		def:    def,
		field:  c.field,
		depth:  c.depth,
	}
	return def.Test(callee, v, ref)
}

// Validate validates record against rs one level deeper than the current call.
func (c *Context) Validate(record any, rs Ruleset) (Result, error) {
	return c.engine.validate(record, rs, c.depth+1)
}

// ListDetail reports whether list rules should keep per-element violations,
// either because ref asks for it or because the engine is configured so.
func (c *Context) ListDetail(ref Ref) bool {
	if v, ok := ref.Param("detail"); ok {
		b, isBool := v.(bool)
		return isBool && b
	}
	return c.engine.listDetail
}

// Explain attaches nested violations to the failure the predicate is about
// to report. When the predicate returns false the engine emits a compound
// entry wrapping them; on success they are discarded.
func (c *Context) Explain(nested Result) {
	c.explain = append(c.explain, nested...)
}
