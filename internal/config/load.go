package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults; required settings without a sensible default (the shared
	// secret) must come from the environment or a config file.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token", "")
	v.SetDefault("upstream.base_url", "http://localhost:8000")
	v.SetDefault("upstream.timeout_seconds", 10)
	v.SetDefault("task.worker_count", 1)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.delay_seconds", 30)

	// Optional config.yaml in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables with the CPI_ prefix, e.g. CPI_AUTH_TOKEN,
	// CPI_UPSTREAM_BASE_URL, CPI_TASK_DELAY_SECONDS.
	v.SetEnvPrefix("CPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
