package rulefile

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/rulekit/pkg/coerce"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

const defaultRecurrentMessage = "invalid %s"

// Rule is one entry of the rules section. It is either recurrent (Ruleset
// set) or an alias of another registered rule (Base set) with its own
// default parameters and, optionally, its own message.
type Rule struct {
	Name    string
	Message string
	Ruleset validator.Ruleset
	Base    string
	Params  validator.Params
}

// Recurrent reports whether the rule validates a nested record.
func (r Rule) Recurrent() bool { return r.Base == "" }

// File is a decoded rule file.
type File struct {
	// Rules holds rule definitions in declaration order.
	Rules []Rule
	// Coerce is the coercion plan to run before validation.
	Coerce coerce.Plan

	rulesets map[string]validator.Ruleset
	names    []string
}

// Ruleset returns the named ruleset. Recurrent rules declared in the file
// can be used as rulesets too.
func (f *File) Ruleset(name string) (validator.Ruleset, error) {
	if rs, ok := f.rulesets[name]; ok {
		return rs, nil
	}
	for _, r := range f.Rules {
		if r.Name == name && r.Recurrent() {
			return r.Ruleset, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", validator.ErrMissingRuleset, name)
}

// RulesetNames lists the rulesets section in declaration order.
func (f *File) RulesetNames() []string {
	return append([]string(nil), f.names...)
}

// Register adds the file's rules to reg in declaration order, so an alias
// may build on a rule declared above it.
func (f *File) Register(reg *validator.Registry) error {
	for _, r := range f.Rules {
		def, err := r.definition(reg)
		if err != nil {
			return err
		}
		reg.Register(r.Name, def)
	}
	return nil
}

func (r Rule) definition(reg *validator.Registry) (validator.Definition, error) {
	if r.Recurrent() {
		msg := r.Message
		if msg == "" {
			msg = defaultRecurrentMessage
		}
		return validator.Definition{Message: msg, Recurrent: true, Ruleset: r.Ruleset}, nil
	}

	base, err := reg.Resolve(r.Base)
	if err != nil {
		return validator.Definition{}, fmt.Errorf("%w: rule %q: %w", ErrUnknownBaseRule, r.Name, err)
	}
	def := base
	def.Params = make(validator.Params, len(base.Params)+len(r.Params))
	maps.Copy(def.Params, base.Params)
	maps.Copy(def.Params, r.Params)
	if r.Message != "" {
		def.Message = r.Message
		def.MessageFor = nil
	}
	return def, nil
}

// Parse decodes a rule file; ext selects the format (".json", ".yaml" or ".yml").
func Parse(data []byte, ext string) (*File, error) {
	tree, err := decode(data, ext)
	if err != nil {
		return nil, err
	}
	return fromTree(tree)
}

// ParseJSON decodes a JSON rule file.
func ParseJSON(data []byte) (*File, error) { return Parse(data, ".json") }

// ParseYAML decodes a YAML rule file.
func ParseYAML(data []byte) (*File, error) { return Parse(data, ".yaml") }

// Load reads and decodes the rule file at path, picking the format from
// its extension.
func Load(ctx context.Context, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadCancelled, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// DecodeRuleset decodes a document holding a single ruleset, keeping the
// declaration order of its fields.
func DecodeRuleset(data []byte, ext string) (validator.Ruleset, error) {
	tree, err := decode(data, ext)
	if err != nil {
		return nil, err
	}
	return rulesetFromTree(tree)
}

func decode(data []byte, ext string) (any, error) {
	var (
		tree any
		err  error
	)
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		tree, err = decodeJSON(data)
	case "yaml", "yml":
		tree, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	return tree, nil
}

func fromTree(tree any) (*File, error) {
	root, ok := tree.(*object)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidDocument)
	}
	f := &File{rulesets: make(map[string]validator.Ruleset)}

	for _, section := range root.keys {
		raw := root.values[section]
		var err error
		switch section {
		case "rules":
			err = f.readRules(raw)
		case "rulesets":
			err = f.readRulesets(raw)
		case "coerce":
			err = f.readCoerce(raw)
		default:
			err = fmt.Errorf("%w: unknown section %q", ErrInvalidDocument, section)
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *File) readRules(raw any) error {
	rules, ok := raw.(*object)
	if !ok {
		return fmt.Errorf("%w: rules must be a mapping", ErrInvalidDocument)
	}
	for _, name := range rules.keys {
		r, err := ruleFromTree(name, rules.values[name])
		if err != nil {
			return err
		}
		f.Rules = append(f.Rules, r)
	}
	return nil
}

func ruleFromTree(name string, raw any) (Rule, error) {
	entry, ok := raw.(*object)
	if !ok {
		return Rule{}, fmt.Errorf("%w: rule %q must be a mapping", ErrInvalidDocument, name)
	}
	r := Rule{Name: name}

	if msg, ok := entry.get("message"); ok {
		s, isStr := msg.(string)
		if !isStr {
			return Rule{}, fmt.Errorf("%w: rule %q: message must be a string", ErrInvalidDocument, name)
		}
		r.Message = s
	}

	if rs, ok := entry.get("ruleset"); ok {
		ruleset, err := rulesetFromTree(rs)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: %w", name, err)
		}
		r.Ruleset = ruleset
		return r, nil
	}

	base, ok := entry.get("rule")
	if !ok {
		return Rule{}, fmt.Errorf("%w: rule %q needs a ruleset or a base rule", ErrInvalidDocument, name)
	}
	r.Base, ok = base.(string)
	if !ok || r.Base == "" {
		return Rule{}, fmt.Errorf("%w: rule %q: base rule must be a name", ErrInvalidDocument, name)
	}
	for _, k := range entry.keys {
		if k == "rule" || k == "message" {
			continue
		}
		if r.Params == nil {
			r.Params = make(validator.Params)
		}
		r.Params[k] = plain(entry.values[k])
	}
	return r, nil
}

func (f *File) readRulesets(raw any) error {
	sets, ok := raw.(*object)
	if !ok {
		return fmt.Errorf("%w: rulesets must be a mapping", ErrInvalidDocument)
	}
	for _, name := range sets.keys {
		rs, err := rulesetFromTree(sets.values[name])
		if err != nil {
			return fmt.Errorf("ruleset %q: %w", name, err)
		}
		if _, dup := f.rulesets[name]; !dup {
			f.names = append(f.names, name)
		}
		f.rulesets[name] = rs
	}
	return nil
}

func (f *File) readCoerce(raw any) error {
	fields, ok := raw.(*object)
	if !ok {
		return fmt.Errorf("%w: coerce must be a mapping", ErrInvalidDocument)
	}
	f.Coerce = make(coerce.Plan, len(fields.keys))
	for _, field := range fields.keys {
		switch t := fields.values[field].(type) {
		case string:
			f.Coerce.Add(field, t)
		case []any:
			for _, item := range t {
				name, ok := item.(string)
				if !ok {
					return fmt.Errorf("%w: coerce %q: parser names must be strings", ErrInvalidDocument, field)
				}
				f.Coerce.Add(field, name)
			}
		default:
			return fmt.Errorf("%w: coerce %q: expected a parser name or a list of names", ErrInvalidDocument, field)
		}
	}
	return nil
}

func rulesetFromTree(raw any) (validator.Ruleset, error) {
	fields, ok := raw.(*object)
	if !ok {
		return nil, fmt.Errorf("%w: %w: a ruleset must be a mapping", ErrInvalidDocument, validator.ErrInvalidRuleset)
	}
	rs := make(validator.Ruleset, 0, len(fields.keys))
	for _, name := range fields.keys {
		ref, err := validator.ParseRef(plain(fields.values[name]))
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", validator.ErrInvalidRuleset, name, err)
		}
		rs = append(rs, validator.Field{Name: name, Ref: ref})
	}
	return rs, nil
}
