package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheOneTrueGod/lomithBackend/config"
)

func setDevEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
}

func TestLoadConfigDefaults(t *testing.T) {
	setDevEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.StoreMemory, cfg.RecipeStore)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "lomith.db", cfg.SQLitePath)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.RedisEnabled())
	// Development fallback secret.
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigOverrides(t *testing.T) {
	setDevEnv(t)
	t.Setenv("RECIPE_STORE", "database")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDatabase, cfg.RecipeStore)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestSecretFileFallback(t *testing.T) {
	setDevEnv(t)
	secretFile := filepath.Join(t.TempDir(), "jwt_secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("file-secret\n"), 0600))
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_SECRET_FILE", secretFile)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	setDevEnv(t)

	t.Run("bad recipe store", func(t *testing.T) {
		t.Setenv("RECIPE_STORE", "flatfile")
		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RECIPE_STORE")
	})

	t.Run("bad db driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DRIVER")
	})

	t.Run("bad redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "not-a-number")
		_, err := config.LoadConfig()
		require.Error(t, err)
	})
}

func TestProductionRequirements(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")

	t.Run("jwt secret required", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_NAME", "recipes")
		t.Setenv("JWT_SECRET", "")
		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("sqlite forbidden", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("JWT_SECRET", "prod-secret")
		_, err := config.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite is not supported in production")
	})

	t.Run("valid production config", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_NAME", "recipes")
		t.Setenv("JWT_SECRET", "prod-secret")
		cfg, err := config.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "prod-secret", cfg.JWTSecret)
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, config.CI, config.GetEnvironment())
	assert.False(t, config.IsProduction())

	t.Setenv("CI", "")
	assert.Equal(t, config.Production, config.GetEnvironment())
	assert.True(t, config.IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, config.Development, config.GetEnvironment())
}
