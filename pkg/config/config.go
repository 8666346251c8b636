package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	Remote     RemoteConfig
	LocalStore LocalStoreConfig
	Redis      RedisConfig
	CORS       CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.LocalStore.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Remote.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RemoteConfig tunes the in-process catalog backend.
type RemoteConfig struct {
	LatencyMin time.Duration `envconfig:"STOREFRONT_REMOTE_LATENCY_MIN" default:"200ms"`
	LatencyMax time.Duration `envconfig:"STOREFRONT_REMOTE_LATENCY_MAX" default:"500ms"`
}

func (r RemoteConfig) validate() error {
	if r.LatencyMin < 0 || r.LatencyMax < 0 {
		return fmt.Errorf("remote latency must be non-negative")
	}
	if r.LatencyMax < r.LatencyMin {
		return fmt.Errorf("remote latency max must be >= min")
	}
	return nil
}

// LocalStoreConfig selects the session state backend.
type LocalStoreConfig struct {
	Backend    string `envconfig:"STOREFRONT_LOCALSTORE_BACKEND" default:"sqlite"`
	SQLitePath string `envconfig:"STOREFRONT_LOCALSTORE_SQLITE_PATH" default:"storefront.db"`
}

func (l LocalStoreConfig) validate() error {
	switch strings.ToLower(l.Backend) {
	case LocalStoreMemory, LocalStoreSQLite, LocalStoreRedis:
		return nil
	}
	return fmt.Errorf("unknown localstore backend %q", l.Backend)
}

// NormalizedBackend returns the lowercase backend name.
func (l LocalStoreConfig) NormalizedBackend() string {
	return strings.ToLower(l.Backend)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}
