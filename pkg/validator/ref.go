package validator

import (
	"fmt"
	"maps"
	"slices"
)

// Params holds named rule parameters, such as low, high or minLength.
type Params map[string]any

type refKind uint8

const (
	refNamed refKind = iota
	refOverridden
	refSequence
)

// Ref is a rule reference: how a ruleset names the rule(s) applied to a field.
// It is one of three shapes: a bare rule name (Named), a rule name with a
// message and/or parameter overrides (Override), or an ordered sequence of
// references that are all applied (Sequence).
type Ref struct {
	kind    refKind
	name    string
	message string
	params  Params
	refs    []Ref
}

// Named references a registered rule by name.
func Named(name string) Ref {
	return Ref{kind: refNamed, name: name}
}

// Override references a rule and overrides its parameters for this field only.
func Override(name string, params Params) Ref {
	return Ref{kind: refOverridden, name: name, params: maps.Clone(params)}
}

// Sequence applies every reference, in order, to the same field.
// Nested sequences are flattened.
func Sequence(refs ...Ref) Ref {
	flat := make([]Ref, 0, len(refs))
	for _, r := range refs {
		if r.kind == refSequence {
			flat = append(flat, r.refs...)
			continue
		}
		flat = append(flat, r)
	}
	return Ref{kind: refSequence, refs: flat}
}

// WithMessage returns a copy of r with its message template overridden.
// It has no effect on sequences.
func (r Ref) WithMessage(message string) Ref {
	if r.kind == refSequence {
		return r
	}
	r.kind = refOverridden
	r.message = message
	return r
}

// With returns a copy of r with one more overridden parameter.
// It has no effect on sequences.
func (r Ref) With(name string, v any) Ref {
	if r.kind == refSequence {
		return r
	}
	params := make(Params, len(r.params)+1)
	maps.Copy(params, r.params)
	params[name] = v
	r.kind = refOverridden
	r.params = params
	return r
}

// Rule returns the referenced rule name; empty for sequences.
func (r Ref) Rule() string { return r.name }

// Message returns the overriding message template, if any.
func (r Ref) Message() string { return r.message }

// Params returns the overridden parameters. The map must not be modified.
func (r Ref) Params() Params { return r.params }

// Param returns the overridden parameter name, if present and not nil.
func (r Ref) Param(name string) (any, bool) {
	v, ok := r.params[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// IsSequence reports whether r references several rules.
func (r Ref) IsSequence() bool { return r.kind == refSequence }

// IsZero reports whether r names nothing at all.
func (r Ref) IsZero() bool {
	return r.kind != refSequence && r.name == ""
}

// Refs normalizes r into the ordered list of single references it stands for.
func (r Ref) Refs() []Ref {
	if r.kind == refSequence {
		return slices.Clone(r.refs)
	}
	return []Ref{r}
}

func (r Ref) String() string {
	switch r.kind {
	case refSequence:
		return fmt.Sprintf("%v", r.refs)
	case refOverridden:
		return r.name + "{...}"
	}
	return r.name
}

// ParseRef reads a rule reference from its serializable form:
//
//	"required"                                    // bare name
//	{"rule": "maxLength", "maxLength": 30}        // overrides
//	{"rule": "required", "message": "%s needed"}  // message override
//	["required", {"rule": "maxLength", ...}]      // sequence
//
// A Ref value is returned as-is.
func ParseRef(v any) (Ref, error) {
	switch t := v.(type) {
	case Ref:
		return t, nil
	case string:
		if t == "" {
			return Ref{}, fmt.Errorf("%w: empty rule name", ErrInvalidRef)
		}
		return Named(t), nil
	case []Ref:
		return Sequence(t...), nil
	case []string:
		refs := make([]Ref, 0, len(t))
		for _, name := range t {
			ref, err := ParseRef(name)
			if err != nil {
				return Ref{}, err
			}
			refs = append(refs, ref)
		}
		return Sequence(refs...), nil
	case []any:
		refs := make([]Ref, 0, len(t))
		for i, item := range t {
			ref, err := ParseRef(item)
			if err != nil {
				return Ref{}, fmt.Errorf("sequence item %d: %w", i, err)
			}
			refs = append(refs, ref)
		}
		return Sequence(refs...), nil
	case map[string]any:
		return parseOverride(t)
	case Params:
		return parseOverride(t)
	}
	return Ref{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidRef, v)
}

func parseOverride(m map[string]any) (Ref, error) {
	name, ok := m["rule"].(string)
	if !ok || name == "" {
		return Ref{}, fmt.Errorf("%w: object reference needs a string \"rule\" property", ErrInvalidRef)
	}
	ref := Ref{kind: refOverridden, name: name}
	if raw, has := m["message"]; has && raw != nil {
		msg, ok := raw.(string)
		if !ok {
			return Ref{}, fmt.Errorf("%w: message of %q must be a string", ErrInvalidRef, name)
		}
		ref.message = msg
	}

	for k, v := range m {
		if k == "rule" || k == "message" {
			continue
		}
		if ref.params == nil {
			ref.params = make(Params, len(m))
		}
		ref.params[k] = v
	}
	return ref, nil
}
