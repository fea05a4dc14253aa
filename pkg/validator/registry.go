package validator

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// Registry is the catalog of named rule definitions. It is safe for
// concurrent use: validation only takes the read lock, so registering rules
// at startup and validating per request do not contend.
type Registry struct {
	mu     sync.RWMutex
	rules  map[string]Definition
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	builtins bool
	logger   *slog.Logger
}

// WithoutBuiltins creates the registry empty instead of pre-loading the
// built-in rule library.
func WithoutBuiltins() RegistryOption {
	return func(c *registryConfig) { c.builtins = false }
}

// WithRegistryLogger sets the logger used to report rule overwrites.
// Nil loggers are ignored.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewRegistry creates a registry loaded with the built-in rule library.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{builtins: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Registry{
		rules:  make(map[string]Definition),
		logger: cfg.logger.With(logger.Component("validator.registry")),
	}
	if cfg.builtins {
		r.mu.Lock()
		for name, def := range builtins() {
			r.rules[name] = def
		}
		r.mu.Unlock()
	}
	return r
}

// Register stores def under name. A previous definition with the same name
// is replaced, which lets hosts redefine built-in rules.
func (r *Registry) Register(name string, def Definition) {
	r.mu.Lock()
	_, existed := r.rules[name]
	r.rules[name] = def.clone()
	r.mu.Unlock()

	if existed {
		r.logger.Debug("rule redefined", logger.Rule(name))
	}
}

// Extend registers every definition of defs. Names are applied in sorted
// order so that logging is reproducible.
func (r *Registry) Extend(defs map[string]Definition) {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.Register(name, defs[name])
	}
}

// Lookup returns the definition registered under name without checking it.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	def, ok := r.rules[name]
	r.mu.RUnlock()
	return def, ok
}

// Resolve returns the definition registered under name. It fails with
// ErrUnknownRule when nothing is registered and with ErrIncompleteRule when
// the definition is malformed.
func (r *Registry) Resolve(name string) (Definition, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	if err := CheckDefinition(name, def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Names lists the registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
