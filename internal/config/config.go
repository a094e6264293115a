package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	sslModeDisable = "disable"
	sslModeRequire = "require"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	LogModeDevelopment = "development"
	LogModeProduction  = "production"

	minPasswordCost = 4
	maxPasswordCost = 31
)

type (
	Config struct {
		Host         string `mapstructure:"HOST"`
		Port         string `mapstructure:"PORT"`
		GRPCPort     string `mapstructure:"GRPC_PORT"`
		DBDriver     string `mapstructure:"DB_DRIVER"`
		DBHost       string `mapstructure:"DB_HOST"`
		DBPort       string `mapstructure:"DB_PORT"`
		DBUser       string `mapstructure:"DB_USER"`
		DBPassword   string `mapstructure:"DB_PASSWORD"`
		DBName       string `mapstructure:"DB_NAME"`
		DBSSLMode    string `mapstructure:"DB_SSL_MODE"`
		DBPath       string `mapstructure:"DB_PATH"`
		LogMode      string `mapstructure:"LOG_MODE"`
		PasswordCost int    `mapstructure:"PASSWORD_COST"`
	}
)

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EATS")

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "5555")
	v.SetDefault("GRPC_PORT", "9000")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_HOST", "0.0.0.0")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "db")
	v.SetDefault("DB_SSL_MODE", sslModeDisable)
	v.SetDefault("DB_PATH", "app.db")
	v.SetDefault("LOG_MODE", LogModeDevelopment)
	v.SetDefault("PASSWORD_COST", 10)

	envs := []string{
		"HOST", "PORT", "GRPC_PORT",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "DB_PATH",
		"LOG_MODE", "PASSWORD_COST",
	}
	for _, key := range envs {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// PostgresDSN builds the libpq style connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func validate(cfg *Config) error {
	if !oneOf(cfg.DBSSLMode, sslModeDisable, sslModeRequire) {
		return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", cfg.DBSSLMode))
	}
	if !oneOf(cfg.DBDriver, DriverPostgres, DriverSQLite) {
		return errors.New(fmt.Sprintf("DB driver is invalid: %s", cfg.DBDriver))
	}
	if cfg.DBDriver == DriverSQLite && cfg.DBPath == "" {
		return errors.New("DB path is required for sqlite")
	}
	if !oneOf(cfg.LogMode, LogModeDevelopment, LogModeProduction) {
		return errors.New(fmt.Sprintf("log mode is invalid: %s", cfg.LogMode))
	}
	if cfg.PasswordCost < minPasswordCost || cfg.PasswordCost > maxPasswordCost {
		return errors.New(fmt.Sprintf("password cost out of range: %d", cfg.PasswordCost))
	}
	return nil
}

func oneOf(value string, valid ...string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}
