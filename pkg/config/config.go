package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "tableside"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	Venue     VenueConfig
	Firestore FirestoreConfig
	Redis     RedisConfig
	Flags     FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Venue.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TABLESIDE_APP_ENV" default:"dev"`
	Port         string `envconfig:"TABLESIDE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TABLESIDE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TABLESIDE_LOG_WARN_STACK" default:"false"`

	// CORSOrigins lists the frontend origins allowed to call the API.
	// Empty falls back to the local development defaults.
	CORSOrigins []string `envconfig:"TABLESIDE_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// VenueConfig scopes the deployment to a single restaurant.
type VenueConfig struct {
	RestaurantID string        `envconfig:"TABLESIDE_RESTAURANT_ID" default:"restaurant_1"`
	TableCount   int           `envconfig:"TABLESIDE_TABLE_COUNT" default:"20"`
	TaxPercent   int           `envconfig:"TABLESIDE_TAX_PERCENT" default:"18"`
	RestoreGrace time.Duration `envconfig:"TABLESIDE_RESTORE_GRACE" default:"1s"`
}

func (v VenueConfig) validate() error {
	if strings.TrimSpace(v.RestaurantID) == "" {
		return fmt.Errorf("restaurant id is required")
	}
	if v.TableCount <= 0 {
		return fmt.Errorf("table count must be positive, got %d", v.TableCount)
	}
	if v.TaxPercent < 0 || v.TaxPercent > 100 {
		return fmt.Errorf("tax percent must be within 0-100, got %d", v.TaxPercent)
	}
	return nil
}

type FirestoreConfig struct {
	ProjectID       string `envconfig:"TABLESIDE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON string `envconfig:"TABLESIDE_GCP_CREDENTIALS_JSON"`
	DatabaseID      string `envconfig:"TABLESIDE_FIRESTORE_DATABASE" default:"(default)"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TABLESIDE_REDIS_URL"`
	Address      string        `envconfig:"TABLESIDE_REDIS_ADDR"`
	Password     string        `envconfig:"TABLESIDE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TABLESIDE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TABLESIDE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TABLESIDE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TABLESIDE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TABLESIDE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TABLESIDE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	// UseSQLite swaps the cart snapshot store from Redis to an embedded
	// SQLite file, for single-node deployments without a Redis instance.
	UseSQLite  bool   `envconfig:"TABLESIDE_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"TABLESIDE_SQLITE_PATH" default:"tableside.db"`
}
