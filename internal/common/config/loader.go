package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultBaseURL   = "https://travel.letsbuildthatapp.com/travel_discovery"
	defaultQueueSize = 64
	defaultCacheTTL  = 300000
	defaultPrefix    = "discovery:resp:"
	defaultMetrics   = ":9090"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it
// and applies environment overrides (api.base_url -> API_BASE_URL).
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only sees keys viper already knows about.
	for _, key := range []string{
		"app.name", "app.version", "app.environment",
		"api.base_url",
		"dispatch.queue_size",
		"cache.enabled", "cache.ttl", "cache.prefix",
		"cache.redis.address", "cache.redis.password", "cache.redis.db",
		"logging.level", "logging.format",
		"metrics.enabled", "metrics.address", "metrics.tracing",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up towards the module root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills values that are commonly kept only in the
// environment.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Cache.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Cache.Redis.Password = val
		}
	}
	if cfg.Cache.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDR"); val != "" {
			cfg.Cache.Redis.Address = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "travel-discovery"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}

	if cfg.Dispatch.QueueSize == 0 {
		cfg.Dispatch.QueueSize = defaultQueueSize
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = defaultCacheTTL
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = defaultPrefix
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = defaultMetrics
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", cfg.API.BaseURL)
	}

	if cfg.Dispatch.QueueSize < 0 {
		return fmt.Errorf("dispatch.queue_size must not be negative")
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.Redis.Address == "" {
			return fmt.Errorf("cache.redis.address is required when cache is enabled")
		}
		if cfg.Cache.TTL < 0 {
			return fmt.Errorf("cache.ttl must not be negative")
		}
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
