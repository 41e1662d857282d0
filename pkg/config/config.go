package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "NEARDEAL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Env var names referenced by tests and error messages.
const (
	EnvAppEnv     = "NEARDEAL_APP_ENV"
	EnvPort       = "NEARDEAL_APP_PORT"
	EnvDBDSN      = "NEARDEAL_DB_DSN"
	EnvDBHost     = "NEARDEAL_DB_HOST"
	EnvDBUser     = "NEARDEAL_DB_USER"
	EnvDBName     = "NEARDEAL_DB_NAME"
	EnvRedisURL   = "NEARDEAL_REDIS_URL"
	EnvJWTSecret  = "NEARDEAL_JWT_SECRET"
	EnvJWTIssuer  = "NEARDEAL_JWT_ISSUER"
	EnvJWTExpMins = "NEARDEAL_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Coupon        CouponConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"NEARDEAL_APP_ENV" required:"true"`
	Port         string `envconfig:"NEARDEAL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NEARDEAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NEARDEAL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NEARDEAL_DB_DSN"`
	Driver string `envconfig:"NEARDEAL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NEARDEAL_DB_HOST"`
	LegacyPort     int    `envconfig:"NEARDEAL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NEARDEAL_DB_USER"`
	LegacyPassword string `envconfig:"NEARDEAL_DB_PASSWORD"`
	LegacyName     string `envconfig:"NEARDEAL_DB_NAME"`
	LegacySSLMode  string `envconfig:"NEARDEAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NEARDEAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NEARDEAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NEARDEAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NEARDEAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NEARDEAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NEARDEAL_REDIS_ADDR"`
	Password     string        `envconfig:"NEARDEAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"NEARDEAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NEARDEAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NEARDEAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NEARDEAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NEARDEAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NEARDEAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NEARDEAL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NEARDEAL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"NEARDEAL_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NEARDEAL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NEARDEAL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NEARDEAL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NEARDEAL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NEARDEAL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"NEARDEAL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"NEARDEAL_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"NEARDEAL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"NEARDEAL_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"NEARDEAL_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"NEARDEAL_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// CouponConfig tunes the issuance core.
type CouponConfig struct {
	ValidityDays    int `envconfig:"NEARDEAL_COUPON_VALIDITY_DAYS" default:"30"`
	CodeMaxAttempts int `envconfig:"NEARDEAL_COUPON_CODE_MAX_ATTEMPTS" default:"20"`
}

// Validity returns how long an issued coupon stays redeemable.
func (c CouponConfig) Validity() time.Duration {
	days := c.ValidityDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"NEARDEAL_AUTO_MIGRATE" default:"false"`
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
