package validator

import (
	"fmt"
	"slices"
	"sort"
)

// Field pairs a record key with the rule reference applied to it.
type Field struct {
	Name string
	Ref  Ref
}

// Ruleset is an ordered mapping from field name to rule reference.
// Fields are validated in declaration order.
type Ruleset []Field

// Add returns the ruleset extended with one more field. Several refs are
// combined into a Sequence.
//
//	rs := validator.Ruleset{}.
//	    Add("name", validator.Named("required")).
//	    Add("login", validator.Named("required"), validator.Named("email"))
func (rs Ruleset) Add(name string, refs ...Ref) Ruleset {
	ref := Sequence(refs...)
	if len(refs) == 1 {
		ref = refs[0]
	}
	return append(slices.Clip(rs), Field{Name: name, Ref: ref})
}

// Get returns the reference declared for name.
func (rs Ruleset) Get(name string) (Ref, bool) {
	for _, f := range rs {
		if f.Name == name {
			return f.Ref, true
		}
	}
	return Ref{}, false
}

// Names returns the field names in declaration order.
func (rs Ruleset) Names() []string {
	names := make([]string, len(rs))
	for i, f := range rs {
		names[i] = f.Name
	}
	return names
}

// ParseRuleset reads a ruleset from a Ruleset value or from a map of field
// name to serializable rule reference. Go maps carry no order, so map keys
// are validated in sorted order; use the rulefile package to keep the
// declaration order of a JSON or YAML document.
func ParseRuleset(v any) (Ruleset, error) {
	switch t := v.(type) {
	case Ruleset:
		return t, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rs := make(Ruleset, 0, len(keys))
		for _, k := range keys {
			ref, err := ParseRef(t[k])
			if err != nil {
				return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidRuleset, k, err)
			}
			rs = append(rs, Field{Name: k, Ref: ref})
		}
		return rs, nil
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, name := range t {
			m[k] = name
		}
		return ParseRuleset(m)
	}
	return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidRuleset, v)
}
