package coerce

import (
	"fmt"
	"maps"

	"github.com/dmitrymomot/rulekit/internal/value"
)

// Plan maps a field name to the parsers applied to it, in order.
type Plan map[string][]string

// Add returns the plan with parsers appended for field.
func (p Plan) Add(field string, parsers ...string) Plan {
	if p == nil {
		p = make(Plan)
	}
	p[field] = append(p[field], parsers...)
	return p
}

// Coerce returns a copy of record with every planned field converted by its
// parsers. Absent and nil fields are skipped; a nil record stays nil. All
// parser names are resolved before any field is touched.
func (r *Registry) Coerce(record map[string]any, plan Plan) (map[string]any, error) {
	steps := make(map[string]Parser, len(plan))
	for field, names := range plan {
		p, err := r.ResolveChain(names...)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		steps[field] = p
	}
	if record == nil {
		return nil, nil
	}

	out := maps.Clone(record)
	for field, parse := range steps {
		v, ok := out[field]
		if !ok || value.IsNil(v) {
			continue
		}
		out[field] = parse(v)
	}
	return out, nil
}

// Coerce applies plan to record using the default registry.
func Coerce(record map[string]any, plan Plan) (map[string]any, error) {
	return defaultRegistry.Coerce(record, plan)
}

// Defaults returns a copy of record where absent or nil fields take the
// value from defaults.
func Defaults(record, defaults map[string]any) map[string]any {
	out := make(map[string]any, len(record)+len(defaults))
	maps.Copy(out, record)
	for k, v := range defaults {
		if cur, ok := out[k]; !ok || value.IsNil(cur) {
			out[k] = v
		}
	}
	return out
}

// Merge combines several sources of request parameters into one record.
// Later sources win on conflicting keys.
func Merge(records ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, r := range records {
		maps.Copy(out, r)
	}
	return out
}
