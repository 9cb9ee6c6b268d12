package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "plateful")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "24h")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "plateful", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	// Non-production environments fall back to a development secret.
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
}

func TestLoadConfigInvalidTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfigBadDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBDriver:   "postgres",
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "plateful",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=plateful sslmode=disable", cfg.DSN())

	cfg.DBDriver = "sqlite"
	cfg.SQLitePath = "test.db"
	assert.Equal(t, "test.db", cfg.DSN())
}
