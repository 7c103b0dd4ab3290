package config

import "fmt"

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks cross-field consistency and the stricter
// requirements of production.
func ValidateConfig(cfg *Config) error {
	switch cfg.RecipeStore {
	case StoreMemory, StoreDatabase:
	default:
		return ValidationError{Field: "RECIPE_STORE", Message: fmt.Sprintf("must be %q or %q", StoreMemory, StoreDatabase)}
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
			return ValidationError{Field: "DB_HOST", Message: "postgres driver requires DB_HOST, DB_PORT and DB_NAME"}
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return ValidationError{Field: "SQLITE_PATH", Message: "sqlite driver requires SQLITE_PATH"}
		}
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("must be %q or %q", DriverPostgres, DriverSQLite)}
	}

	if cfg.JWTSecret == "" {
		if IsProduction() {
			return ValidationError{Field: "JWT_SECRET", Message: "required in production"}
		}
		// Development fallback so a fresh checkout runs without setup.
		cfg.JWTSecret = "dev-insecure-secret"
	}

	if IsProduction() && cfg.DBDriver == DriverSQLite {
		return ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"}
	}

	return nil
}
