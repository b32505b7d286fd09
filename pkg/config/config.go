package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Persistence  PersistenceConfig
	DB           DBConfig
	Redis        RedisConfig
	OpenAI       OpenAIConfig
	Menu         MenuConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Persistence.validate(); err != nil {
		return nil, err
	}
	if cfg.Persistence.IsSQL() && cfg.DB.DSN == "" && !cfg.FeatureFlags.UseSQLite {
		return nil, fmt.Errorf("%s is required for the sql persistence backend", EnvDBDSN)
	}
	if cfg.Persistence.IsRedis() && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis persistence backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MERENDA_APP_ENV" required:"true"`
	Port         string `envconfig:"MERENDA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MERENDA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MERENDA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PersistenceConfig selects which key-value backend the stores write through to.
type PersistenceConfig struct {
	Backend string `envconfig:"MERENDA_PERSISTENCE_BACKEND" default:"sql"`
}

func (p PersistenceConfig) IsSQL() bool {
	return strings.EqualFold(p.Backend, PersistenceBackendSQL)
}

func (p PersistenceConfig) IsRedis() bool {
	return strings.EqualFold(p.Backend, PersistenceBackendRedis)
}

func (p PersistenceConfig) validate() error {
	if p.IsSQL() || p.IsRedis() {
		return nil
	}
	return fmt.Errorf("unknown persistence backend %q (want %s or %s)", p.Backend, PersistenceBackendSQL, PersistenceBackendRedis)
}

type DBConfig struct {
	DSN    string `envconfig:"MERENDA_DB_DSN"`
	Driver string `envconfig:"MERENDA_DB_DRIVER" default:"postgres"`

	SQLitePath string `envconfig:"MERENDA_SQLITE_PATH" default:"merenda.db"`

	MaxOpenConns    int           `envconfig:"MERENDA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MERENDA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MERENDA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MERENDA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MERENDA_REDIS_URL"`
	Address      string        `envconfig:"MERENDA_REDIS_ADDR"`
	Password     string        `envconfig:"MERENDA_REDIS_PASSWORD"`
	DB           int           `envconfig:"MERENDA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MERENDA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MERENDA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MERENDA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MERENDA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MERENDA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type OpenAIConfig struct {
	APIKey string `envconfig:"MERENDA_OPENAI_API_KEY"`
	Model  string `envconfig:"MERENDA_OPENAI_MODEL" default:"gpt-4o-mini"`
}

type MenuConfig struct {
	CallTimeout       time.Duration `envconfig:"MERENDA_MENU_CALL_TIMEOUT" default:"60s"`
	DefaultGuidelines string        `envconfig:"MERENDA_MENU_DEFAULT_GUIDELINES" default:"Balanced school meals: include a protein, a carbohydrate and a fruit or vegetable; keep added sugar low."`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MERENDA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MERENDA_AUTO_MIGRATE" default:"false"`
}
