package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/notesbox/internal/ratelimit"
	"github.com/2beens/notesbox/internal/store"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const EnvPrefix = "NOTES_"

// Config values come from the TOML file first. Any NOTES_* env var that is
// set overrides the file value.
type Config struct {
	Host        string `toml:"host" env:"HOST, overwrite"`
	Port        int    `toml:"port" env:"PORT, overwrite"`
	Environment string `toml:"environment" env:"ENVIRONMENT, overwrite"`

	// logging
	LogLevel      string `toml:"log_level" env:"LOG_LEVEL, overwrite"`
	LogsPath      string `toml:"logs_path" env:"LOGS_PATH, overwrite"`
	LogToStdout   bool   `toml:"log_to_stdout" env:"LOG_TO_STDOUT, overwrite"`
	LogFormatJSON bool   `toml:"log_format_json" env:"LOG_FORMAT_JSON, overwrite"`
	SentryEnabled bool   `toml:"sentry_enabled" env:"SENTRY_ENABLED, overwrite"`

	// store
	StoreBackend      string `toml:"store_backend" env:"STORE_BACKEND, overwrite"`
	StoreNamespace    string `toml:"store_namespace" env:"STORE_NAMESPACE, overwrite"`
	MemoryStoreSizeMB int    `toml:"memory_store_size_mb" env:"MEMORY_STORE_SIZE_MB, overwrite"`
	EnforceExpiry     bool   `toml:"enforce_expiry" env:"ENFORCE_EXPIRY, overwrite"`

	// redis
	RedisHost     string `toml:"redis_host" env:"REDIS_HOST, overwrite"`
	RedisPort     string `toml:"redis_port" env:"REDIS_PORT, overwrite"`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB, overwrite"`
	RedisPassword string `toml:"-" env:"REDIS_PASS"`

	// postgres
	PostgresHost     string `toml:"postgres_host" env:"POSTGRES_HOST, overwrite"`
	PostgresPort     string `toml:"postgres_port" env:"POSTGRES_PORT, overwrite"`
	PostgresDBName   string `toml:"postgres_db_name" env:"POSTGRES_DB_NAME, overwrite"`
	PostgresUser     string `toml:"postgres_user" env:"POSTGRES_USER, overwrite"`
	PostgresPassword string `toml:"-" env:"POSTGRES_PASS"`

	// rate limiting
	RateLimitRequests      int    `toml:"rate_limit_requests" env:"RATE_LIMIT_REQUESTS, overwrite"`
	RateLimitWindowSeconds int    `toml:"rate_limit_window_seconds" env:"RATE_LIMIT_WINDOW_SECONDS, overwrite"`
	RateLimitStrategy      string `toml:"rate_limit_strategy" env:"RATE_LIMIT_STRATEGY, overwrite"`

	AllowedOrigins []string `toml:"allowed_origins" env:"ALLOWED_ORIGINS, overwrite"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host" env:"PROMETHEUS_METRICS_HOST, overwrite"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port" env:"PROMETHEUS_METRICS_PORT, overwrite"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}
	return cfg, nil
}

// Load reads the config for env from the TOML file at path and applies the
// NOTES_* environment overrides.
func Load(env, path string) (*Config, error) {
	return LoadWithLookuper(env, path, envconfig.OsLookuper())
}

func LoadWithLookuper(env, path string, lookuper envconfig.Lookuper) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = store.BackendRedis
	}
	if c.StoreNamespace == "" {
		c.StoreNamespace = "notes"
	}
	if c.MemoryStoreSizeMB <= 0 {
		c.MemoryStoreSizeMB = 32
	}
	if c.RateLimitStrategy == "" {
		c.RateLimitStrategy = ratelimit.StrategyFixedWindow
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("rate_limit_requests must be positive, got %d", c.RateLimitRequests)
	}
	if c.RateLimitWindowSeconds <= 0 {
		return fmt.Errorf("rate_limit_window_seconds must be positive, got %d", c.RateLimitWindowSeconds)
	}

	switch c.StoreBackend {
	case store.BackendRedis:
		if c.RedisHost == "" || c.RedisPort == "" {
			return fmt.Errorf("redis backend needs redis_host and redis_port")
		}
	case store.BackendPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			return fmt.Errorf("postgres backend needs postgres_host, postgres_port and postgres_db_name")
		}
	case store.BackendMemory:
	default:
		return fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}

	switch c.RateLimitStrategy {
	case ratelimit.StrategyFixedWindow:
	case ratelimit.StrategyGCRA:
		if c.StoreBackend != store.BackendRedis {
			return fmt.Errorf("rate limit strategy %s requires the redis store backend", ratelimit.StrategyGCRA)
		}
	default:
		return fmt.Errorf("unknown rate limit strategy: %s", c.RateLimitStrategy)
	}

	return nil
}
