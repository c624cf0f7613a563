package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the process configuration read from the environment.
type Config struct {
	Port                string
	DatabaseURL         string
	DatabaseName        string
	StoreDriver         string
	StoreConnectTimeout time.Duration
	DefaultListLimit    int64
	RabbitMQURL         string
	RabbitMQExchange    string
	LogLevel            string
	Environment         string
}

// Load reads the configuration from environment variables, applying defaults
// for anything that is not set.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", "8000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("STORE_CONNECT_TIMEOUT", "10s")
	v.SetDefault("DEFAULT_LIST_LIMIT", 50)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "sirwa.events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")
	v.AutomaticEnv()

	cfg := &Config{
		Port:                strings.TrimPrefix(v.GetString("PORT"), ":"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		DatabaseName:        v.GetString("DATABASE_NAME"),
		StoreDriver:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		StoreConnectTimeout: v.GetDuration("STORE_CONNECT_TIMEOUT"),
		DefaultListLimit:    v.GetInt64("DEFAULT_LIST_LIMIT"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:    v.GetString("RABBITMQ_EXCHANGE"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		Environment:         v.GetString("APP_ENV"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.DefaultListLimit < 1 {
		return fmt.Errorf("DEFAULT_LIST_LIMIT must be at least 1, got %d", c.DefaultListLimit)
	}
	if c.StoreConnectTimeout <= 0 {
		return fmt.Errorf("STORE_CONNECT_TIMEOUT must be positive")
	}
	return nil
}

// ListenAddress is the address passed to the HTTP listener.
func (c *Config) ListenAddress() string {
	return ":" + c.Port
}

// DatabaseURLSet reports whether a store connection string was provided.
func (c *Config) DatabaseURLSet() bool {
	return c.DatabaseURL != ""
}

// DatabaseNameSet reports whether a database name was provided.
func (c *Config) DatabaseNameSet() bool {
	return c.DatabaseName != ""
}
