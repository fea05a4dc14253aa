package validator

// Config holds engine settings loaded from the environment.
type Config struct {
	// MaxDepth bounds nested validation; non-positive disables the guard.
	MaxDepth int `env:"VALIDATOR_MAX_DEPTH" envDefault:"100"`

	// ListDetail makes list rules report failing elements individually.
	ListDetail bool `env:"VALIDATOR_LIST_DETAIL" envDefault:"false"`

	PatternCacheSize int `env:"VALIDATOR_PATTERN_CACHE_SIZE" envDefault:"128"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         DefaultMaxDepth,
		ListDetail:       false,
		PatternCacheSize: defaultPatternCacheSize,
	}
}

// NewFromConfig creates an Engine from cfg. Options given in opts are
// applied after the config and take precedence.
func NewFromConfig(cfg Config, opts ...Option) *Engine {
	configOpts := []Option{
		WithMaxDepth(cfg.MaxDepth),
		WithListDetail(cfg.ListDetail),
		WithPatternCacheSize(cfg.PatternCacheSize),
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
