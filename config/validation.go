package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable in the current environment.
// Development and test fall back to permissive defaults; production must have
// real credentials set.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		errs = append(errs, fmt.Sprintf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver))
	}

	if cfg.TokenTTL <= 0 {
		errs = append(errs, "TOKEN_TTL must be positive")
	}

	if IsProduction() {
		if cfg.JWTSecret == "" {
			errs = append(errs, "JWT_SECRET is required in production")
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			errs = append(errs, "DB_PASSWORD is required in production")
		}
	} else if cfg.JWTSecret == "" {
		// Keep local development working without a .env file.
		cfg.JWTSecret = "dev-secret"
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}
