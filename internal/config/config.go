package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage
	StoreBackend   string `toml:"store_backend"`
	UsersFilePath  string `toml:"users_file_path"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis, leave host empty to disable rate limiting and token revocation
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// auth
	TokenIssuer                 string   `toml:"token_issuer"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`
	// take the client IP from X-Real-Ip / X-Forwarded-For, only behind a proxy that sets them
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
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
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied and the result validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults(env)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.Port == 0 {
		c.Port = 5000
	}
	if c.StoreBackend == "" {
		c.StoreBackend = StoreBackendFile
	}
	if c.UsersFilePath == "" {
		c.UsersFilePath = "./data/users.json"
	}
	if c.TokenIssuer == "" {
		c.TokenIssuer = "fittrack"
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	switch c.StoreBackend {
	case StoreBackendFile:
		if c.UsersFilePath == "" {
			return errors.New("users file path empty")
		}
	case StoreBackendPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			return errors.New("postgres host, port and db name must be set")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.StoreBackend)
	}
	if c.RedisHost != "" && c.RedisPort == "" {
		return errors.New("redis port must be set together with redis host")
	}
	return nil
}

// RedisEnabled reports whether a redis instance is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}
