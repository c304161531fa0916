// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional `.env` files are merged into the process environment first, then
// the environment is parsed into a struct using its `env` and `envDefault`
// field tags.
//
// # Usage
//
//	type Config struct {
//	    DB  datasource.Config
//	    Log logger.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("DBCHECK_")); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Failures are joined with ErrParsingConfig or ErrLoadingEnvFile, so callers
// can classify them with errors.Is while keeping the underlying message.
package config
