package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace for all storefront settings.
const EnvPrefix = "reman"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Storage driver names accepted by StorageConfig.
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REMAN_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"REMAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REMAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects and configures the snapshot backend.
type StorageConfig struct {
	Driver string `envconfig:"REMAN_STORAGE_DRIVER" default:"file"`
	// Dir is the state directory used by the file driver.
	Dir string `envconfig:"REMAN_STORAGE_DIR" default:".reman-state"`
	// DSN is the database connection string for the sqlite and postgres
	// drivers. For sqlite it is a file path or file: URI.
	DSN string `envconfig:"REMAN_STORAGE_DSN"`

	MaxOpenConns    int           `envconfig:"REMAN_STORAGE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"REMAN_STORAGE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"REMAN_STORAGE_CONN_MAX_LIFETIME" default:"1h"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverMemory, StorageDriverRedis:
		return nil
	case StorageDriverFile:
		if s.Dir == "" {
			return fmt.Errorf("REMAN_STORAGE_DIR is required for the file driver")
		}
		return nil
	case StorageDriverSQLite, StorageDriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("REMAN_STORAGE_DSN is required for the %s driver", s.Driver)
		}
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"REMAN_REDIS_URL"`
	Address      string        `envconfig:"REMAN_REDIS_ADDR"`
	Password     string        `envconfig:"REMAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"REMAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REMAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REMAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REMAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REMAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REMAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig tunes the simulated identity provider.
type AuthConfig struct {
	// SimulatedLatency delays login/signup to mimic a network round trip.
	SimulatedLatency time.Duration `envconfig:"REMAN_AUTH_SIMULATED_LATENCY" default:"1s"`
}

type CatalogConfig struct {
	// File optionally overrides the built-in product catalog with a JSON file.
	File string `envconfig:"REMAN_CATALOG_FILE"`
}
