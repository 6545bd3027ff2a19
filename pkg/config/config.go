package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every variable this service reads.
const EnvPrefix = "evermart"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared by Load callers and tests.
const (
	EnvAppEnv   = "EVERMART_APP_ENV"
	EnvPort     = "EVERMART_APP_PORT"
	EnvDBDSN    = "EVERMART_DB_DSN"
	EnvDBHost   = "EVERMART_DB_HOST"
	EnvDBUser   = "EVERMART_DB_USER"
	EnvDBName   = "EVERMART_DB_NAME"
	EnvRedisURL = "EVERMART_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Password     PasswordConfig
	Stripe       StripeConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EVERMART_APP_ENV" required:"true"`
	Port         string `envconfig:"EVERMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"EVERMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EVERMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"EVERMART_DB_DSN"`
	Driver string `envconfig:"EVERMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EVERMART_DB_HOST"`
	LegacyPort     int    `envconfig:"EVERMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EVERMART_DB_USER"`
	LegacyPassword string `envconfig:"EVERMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"EVERMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"EVERMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EVERMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EVERMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EVERMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EVERMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EVERMART_REDIS_URL"`
	Address      string        `envconfig:"EVERMART_REDIS_ADDR"`
	Password     string        `envconfig:"EVERMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"EVERMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EVERMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EVERMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EVERMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EVERMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EVERMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"EVERMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"EVERMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"EVERMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"EVERMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"EVERMART_ARGON_KEY_LEN" default:"32"`
}

type StripeConfig struct {
	APIKey     string `envconfig:"EVERMART_STRIPE_API_KEY"`
	Env        string `envconfig:"EVERMART_STRIPE_ENV" default:"test"`
	SuccessURL string `envconfig:"EVERMART_STRIPE_SUCCESS_URL" default:"http://localhost:3000/success"`
	CancelURL  string `envconfig:"EVERMART_STRIPE_CANCEL_URL" default:"http://localhost:3000/cancel"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"EVERMART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
