package validator

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/rulekit/internal/value"
	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// DefaultMaxDepth bounds nested validation (recurrent rules and list
// elements) unless configured otherwise.
const DefaultMaxDepth = 100

// RequiredRule is the only rule evaluated on absent fields.
const RequiredRule = "required"

// Engine validates records against rulesets using the rules of its Registry.
// An Engine is safe for concurrent use; it holds no per-call state.
type Engine struct {
	registry   *Registry
	maxDepth   int
	listDetail bool
	patterns   *patternCache
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	registry         *Registry
	maxDepth         int
	listDetail       bool
	patternCacheSize int
	logger           *slog.Logger
}

// WithRegistry makes the engine resolve rules from r instead of a fresh
// registry loaded with the built-in library. Nil registries are ignored.
func WithRegistry(r *Registry) Option {
	return func(c *engineConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithMaxDepth bounds how deep recurrent and list rules may nest.
// A non-positive depth disables the guard.
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) { c.maxDepth = depth }
}

// WithListDetail makes list rules report which elements failed, as a
// compound entry, instead of a single collapsed violation.
func WithListDetail(enabled bool) Option {
	return func(c *engineConfig) { c.listDetail = enabled }
}

// WithPatternCacheSize sets how many compiled match patterns are kept.
// Non-positive sizes are ignored.
func WithPatternCacheSize(size int) Option {
	return func(c *engineConfig) {
		if size > 0 {
			c.patternCacheSize = size
		}
	}
}

// WithLogger sets the logger used for debug diagnostics. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an Engine. Without WithRegistry it owns a registry loaded with
// the built-in rule library, reachable through Registry.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{
		maxDepth:         DefaultMaxDepth,
		patternCacheSize: defaultPatternCacheSize,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = NewRegistry(WithRegistryLogger(cfg.logger))
	}

	return &Engine{
		registry:   cfg.registry,
		maxDepth:   cfg.maxDepth,
		listDetail: cfg.listDetail,
		patterns:   newPatternCache(cfg.patternCacheSize),
		logger:     cfg.logger.With(logger.Component("validator")),
	}
}

// Registry returns the registry the engine resolves rules from.
func (e *Engine) Registry() *Registry { return e.registry }

// Register is a shorthand for e.Registry().Register.
func (e *Engine) Register(name string, def Definition) {
	e.registry.Register(name, def)
}

// Validate checks record against rs and returns the violations in field
// declaration order, then reference order. Every reference of a field is
// evaluated even after a failure. record is never modified.
func (e *Engine) Validate(record any, rs Ruleset) (Result, error) {
	return e.validate(record, rs, 0)
}

// ValidateNamed validates record against the nested ruleset of the recurrent
// rule name. It fails with ErrMissingRuleset if name is not registered. A
// registered simple rule carries no ruleset and yields no violations.
func (e *Engine) ValidateNamed(record any, name string) (Result, error) {
	def, ok := e.registry.Lookup(name)
	if !ok {
		e.logger.Debug("ruleset not found", logger.Ruleset(name))
		return nil, fmt.Errorf("%w: %q: %w", ErrMissingRuleset, name, ErrUnknownRule)
	}
	if !def.Recurrent {
		return nil, nil
	}
	return e.validate(record, def.Ruleset, 0)
}

// Test applies a single rule reference to the field key of record. It
// returns nil when the reference is satisfied, or when the field is absent
// and the rule is not RequiredRule.
func (e *Engine) Test(record any, ref Ref, key string) (*Entry, error) {
	if ref.IsSequence() {
		return nil, fmt.Errorf("%w: Test takes a single reference, got a sequence", ErrInvalidRef)
	}
	return e.test(record, ref, key, 0)
}

func (e *Engine) validate(record any, rs Ruleset, depth int) (Result, error) {
	if e.maxDepth > 0 && depth > e.maxDepth {
		e.logger.Debug("nested validation too deep", logger.Depth(depth))
		return nil, fmt.Errorf("%w: depth %d exceeds %d", ErrMaxDepthExceeded, depth, e.maxDepth)
	}

	var result Result
	for _, f := range rs {
		for _, ref := range f.Ref.Refs() {
			entry, err := e.test(record, ref, f.Name, depth)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				result = append(result, *entry)
			}
		}
	}
	return result, nil
}

func (e *Engine) test(record any, ref Ref, key string, depth int) (*Entry, error) {
	name := ref.Rule()
	if name == "" {
		return nil, fmt.Errorf("%w: field %q has a reference without a rule name", ErrInvalidRef, key)
	}

	def, err := e.registry.Resolve(name)
	if err != nil {
		e.logger.Debug("rule resolution failed", logger.Rule(name), logger.Field(key), logger.Error(err))
		return nil, fmt.Errorf("field %q: %w", key, err)
	}

	v, present := lookup(record, key)
	if name != RequiredRule && !present {
		return nil, nil
	}

	if def.Recurrent {
		nested, err := e.validate(v, def.Ruleset, depth+1)
		if err != nil {
			return nil, err
		}
		if len(nested) == 0 {
			return nil, nil
		}
		entry := e.entry(def, name, key, v, ref)
		entry.Nested = nested
		return entry, nil
	}

	ctx := &Context{
		engine: e,
		rule:   name,
		def:    def,
		field:  key,
		depth:  depth,
	}
	ok, err := def.Test(ctx, v, ref)
	if err != nil {
		return nil, fmt.Errorf("field %q: rule %q: %w", key, name, err)
	}
	if ok {
		return nil, nil
	}
	entry := e.entry(def, name, key, v, ref)
	if len(ctx.explain) > 0 {
		entry.Nested = ctx.explain
	}
	return entry, nil
}

func (e *Engine) entry(def Definition, name, key string, v any, ref Ref) *Entry {
	return &Entry{
		Message: Format(def, key, v, ref.Message(), ref.Params()),
		Field:   key,
		Rule:    name,
		Params:  ref.Params(),
	}
}

// lookup reads key from a record. Records are maps keyed by strings; any
// other value behaves as a record whose fields are all absent. A field
// holding nil is absent too.
func lookup(record any, key string) (any, bool) {
	var v any
	switch r := record.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v = r[key]
	case Params:
		v = r[key]
	case map[string]string:
		s, ok := r[key]
		if !ok {
			return nil, false
		}
		return s, true
	default:
		rv := reflect.ValueOf(record)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		v = mv.Interface()
	}
	if value.IsNil(v) {
		return nil, false
	}
	return v, true
}
