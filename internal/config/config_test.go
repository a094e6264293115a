package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Host)
		assert.Equal(t, "5555", cfg.Port)
		assert.Equal(t, DriverSQLite, cfg.DBDriver)
		assert.Equal(t, "app.db", cfg.DBPath)
		assert.Equal(t, 10, cfg.PasswordCost)
	})

	t.Run("env overrides", func(t *testing.T) {
		setEnv(t, "EATS_PORT", "8080")
		setEnv(t, "EATS_DB_DRIVER", "postgres")
		setEnv(t, "EATS_DB_SSL_MODE", "require")
		setEnv(t, "EATS_PASSWORD_COST", "12")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, DriverPostgres, cfg.DBDriver)
		assert.Equal(t, "require", cfg.DBSSLMode)
		assert.Equal(t, 12, cfg.PasswordCost)
	})

	t.Run("bad ssl mode", func(t *testing.T) {
		setEnv(t, "EATS_DB_SSL_MODE", "verify-full")

		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("bad driver", func(t *testing.T) {
		setEnv(t, "EATS_DB_DRIVER", "mysql")

		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("bad password cost", func(t *testing.T) {
		setEnv(t, "EATS_PASSWORD_COST", "2")

		_, err := NewConfig()
		assert.Error(t, err)
	})
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "eats",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "host=db user=u password=p dbname=eats port=5432 sslmode=disable", cfg.PostgresDSN())
}
