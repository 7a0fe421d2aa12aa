package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Upstream UpstreamConfig `mapstructure:"upstream" validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// AuthConfig contains the shared-secret settings. The same token guards
// the inbound trigger endpoint and is presented on every outbound call
// to the upstream service.
type AuthConfig struct {
	Token string `mapstructure:"token" validate:"required,min=8"`
}

// UpstreamConfig describes the upstream service that owns application
// data and receives calculation results.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// Timeout returns the per-request timeout for upstream HTTP calls.
func (c UpstreamConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TaskConfig contains the background task processing settings.
type TaskConfig struct {
	WorkerCount  int `mapstructure:"worker_count"  validate:"required,gt=0"`
	QueueSize    int `mapstructure:"queue_size"    validate:"required,gt=0"`
	DelaySeconds int `mapstructure:"delay_seconds" validate:"gte=0"`
}

// Delay returns the fixed delay applied before each calculation task
// touches the upstream service.
func (c TaskConfig) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}
