package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	API      APIConfig      `mapstructure:"api"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points loaders at the travel discovery API. There is deliberately
// no timeout key: a fetch runs until the transport gives up.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type DispatchConfig struct {
	QueueSize int `mapstructure:"queue_size"`
}

// CacheConfig controls the optional response cache in front of the API.
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	TTL     int         `mapstructure:"ttl"` // milliseconds
	Prefix  string      `mapstructure:"prefix"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// TTLDuration returns the cache TTL as a time.Duration.
func (c CacheConfig) TTLDuration() time.Duration {
	return GetDuration(c.TTL)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	// Tracing turns on the OpenTelemetry span per fetch.
	Tracing bool `mapstructure:"tracing"`
}
