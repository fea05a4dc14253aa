package coerce

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a named catalog of parsers, safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry returns a registry loaded with the built-in parsers.
func NewRegistry() *Registry {
	return &Registry{parsers: builtins()}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level functions.
func Default() *Registry { return defaultRegistry }

// Register stores p under name, replacing any previous parser.
func (r *Registry) Register(name string, p Parser) error {
	if name == "" || p == nil {
		return fmt.Errorf("%w: %q", ErrIncompleteParser, name)
	}
	r.mu.Lock()
	r.parsers[name] = p
	r.mu.Unlock()
	return nil
}

// Resolve returns the parser registered under name.
func (r *Registry) Resolve(name string) (Parser, error) {
	r.mu.RLock()
	p, ok := r.parsers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
	}
	return p, nil
}

// ResolveChain resolves every name and chains the parsers in order.
func (r *Registry) ResolveChain(names ...string) (Parser, error) {
	parsers := make([]Parser, 0, len(names))
	for _, name := range names {
		p, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, p)
	}
	return Chain(parsers...), nil
}

// Names lists the registered parser names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Register adds p to the default registry.
func Register(name string, p Parser) error {
	return defaultRegistry.Register(name, p)
}

// Resolve looks name up in the default registry.
func Resolve(name string) (Parser, error) {
	return defaultRegistry.Resolve(name)
}
