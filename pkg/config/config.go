package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable this service reads.
	EnvPrefix = "BLUEGRASS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// PersistBackendFile stores the snapshot as a local JSON file.
	PersistBackendFile = "file"
	// PersistBackendRedis stores the snapshot under a Redis key.
	PersistBackendRedis = "redis"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Persist  PersistConfig
	Redis    RedisConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Persist.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BLUEGRASS_APP_ENV" default:"dev"`
	Port         string `envconfig:"BLUEGRASS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BLUEGRASS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BLUEGRASS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	BaseURL         string        `envconfig:"BLUEGRASS_CATALOG_BASE_URL" default:"https://www.themealdb.com/api/json/v1/1"`
	DefaultCategory string        `envconfig:"BLUEGRASS_CATALOG_DEFAULT_CATEGORY" default:"Beef"`
	PageSize        int           `envconfig:"BLUEGRASS_CATALOG_PAGE_SIZE" default:"6"`
	RequestTimeout  time.Duration `envconfig:"BLUEGRASS_CATALOG_REQUEST_TIMEOUT" default:"10s"`
}

type PersistConfig struct {
	Backend  string `envconfig:"BLUEGRASS_PERSIST_BACKEND" default:"file"`
	FilePath string `envconfig:"BLUEGRASS_PERSIST_FILE_PATH" default:"bluegrass_state.json"`
	RootKey  string `envconfig:"BLUEGRASS_PERSIST_ROOT_KEY" default:"root"`
}

func (p *PersistConfig) validate() error {
	backend := strings.ToLower(strings.TrimSpace(p.Backend))
	switch backend {
	case PersistBackendFile, PersistBackendRedis:
		p.Backend = backend
		return nil
	default:
		return fmt.Errorf("unknown persist backend %q", p.Backend)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"BLUEGRASS_REDIS_URL"`
	Address      string        `envconfig:"BLUEGRASS_REDIS_ADDR"`
	Password     string        `envconfig:"BLUEGRASS_REDIS_PASSWORD"`
	DB           int           `envconfig:"BLUEGRASS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BLUEGRASS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BLUEGRASS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BLUEGRASS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BLUEGRASS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BLUEGRASS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BLUEGRASS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BLUEGRASS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BLUEGRASS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BLUEGRASS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BLUEGRASS_ARGON_KEY_LEN" default:"32"`
}
