// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/caarlos0/env/v11` for struct tag parsing and
// `github.com/joho/godotenv` for `.env` files:
//
//   - The default `.env` file in the working directory is loaded once, if it exists.
//   - Additional files can be loaded per call with WithEnvFiles or up front with LoadEnv.
//   - Every env tag can be namespaced with WithPrefix.
//   - Each configuration type is parsed once and cached for the process lifetime;
//     WithoutCache and ResetCache bypass or clear the cache.
//
// # Usage
//
//	var cfg validator.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//	engine := validator.NewFromConfig(cfg)
//
// # Error Handling
//
// Errors can be matched with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile, ErrConfigNotLoaded and ErrNilPointer.
package config
