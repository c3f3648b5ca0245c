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

// ValidateConfig checks if the configuration meets the requirements for the
// current environment. Credentials are mandatory everywhere except local
// development, where docker-compose defaults make them optional.
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
	}
	for field, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("required configuration %s is not set", field))
		}
	}

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT secret is required (JWT_SECRET or jwt_secret secret)")
	}
	if (env == Production || env == CI) && cfg.DBPassword == "" {
		errors = append(errors, "database password is required (DB_PASSWORD or db_password secret)")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
