package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration values keyed by type and prefix.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = newConfigCache()

	defaultEnvLoaded sync.Once
)

func newConfigCache() *configCache {
	return &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}
}

// Option tunes a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	envFiles []string
	prefix   string
	cache    bool
}

// WithEnvFiles loads the given .env files before parsing. Variables already
// set in the process environment are not overridden.
func WithEnvFiles(paths ...string) Option {
	return func(o *loadOptions) {
		o.envFiles = append(o.envFiles, paths...)
	}
}

// WithPrefix prepends prefix to every env tag of the struct.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithoutCache parses the environment even if the type was loaded before,
// and does not store the result.
func WithoutCache() Option {
	return func(o *loadOptions) {
		o.cache = false
	}
}

// Load parses environment variables into v based on its `env` struct tags.
// A `.env` file in the working directory is loaded once, if present.
// Each configuration type (and prefix) is parsed once; later calls are
// served from the cache unless WithoutCache is given.
//
// Example:
//
//	type EngineConfig struct {
//		MaxDepth int `env:"VALIDATOR_MAX_DEPTH" envDefault:"100"`
//	}
//
//	var cfg EngineConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// the default .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{cache: true}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.envFiles) > 0 {
		if err := LoadEnv(o.envFiles...); err != nil {
			return err
		}
	}

	if !o.cache {
		return parse(v, o.prefix)
	}

	key := getTypeName[T]() + "|" + o.prefix

	globalCache.mu.RLock()
	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	globalCache.mu.Lock()
	once, exists := globalCache.onces[key]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[key] = once
	}
	globalCache.mu.Unlock()

	var err error
	once.Do(func() {
		if err = parse(v, o.prefix); err != nil {
			// allow a retry once the environment is fixed
			globalCache.mu.Lock()
			delete(globalCache.onces, key)
			globalCache.mu.Unlock()
			return
		}

		globalCache.mu.Lock()
		globalCache.values[key] = *v
		globalCache.mu.Unlock()
	})
	if err != nil {
		return err
	}

	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()
	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// LoadEnv loads the given .env files into the process environment, or the
// default .env file when called without arguments.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached configuration.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
	globalCache.mu.Unlock()
}

func parse[T any](v *T, prefix string) error {
	if err := env.ParseWithOptions(v, env.Options{Prefix: prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
