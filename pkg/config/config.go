package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	Password PasswordConfig
	POS      POSConfig
	Checkout CheckoutConfig
	Outbox   OutboxConfig
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
	Env          string `envconfig:"WAREHOUSEPOS_APP_ENV" required:"true"`
	Port         string `envconfig:"WAREHOUSEPOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WAREHOUSEPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WAREHOUSEPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN         string `envconfig:"WAREHOUSEPOS_DB_DSN"`
	Driver      string `envconfig:"WAREHOUSEPOS_DB_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"WAREHOUSEPOS_DB_AUTO_MIGRATE" default:"false"`

	LegacyHost     string `envconfig:"WAREHOUSEPOS_DB_HOST"`
	LegacyPort     int    `envconfig:"WAREHOUSEPOS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WAREHOUSEPOS_DB_USER"`
	LegacyPassword string `envconfig:"WAREHOUSEPOS_DB_PASSWORD"`
	LegacyName     string `envconfig:"WAREHOUSEPOS_DB_NAME"`
	LegacySSLMode  string `envconfig:"WAREHOUSEPOS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WAREHOUSEPOS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WAREHOUSEPOS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WAREHOUSEPOS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WAREHOUSEPOS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WAREHOUSEPOS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WAREHOUSEPOS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"WAREHOUSEPOS_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WAREHOUSEPOS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WAREHOUSEPOS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WAREHOUSEPOS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WAREHOUSEPOS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WAREHOUSEPOS_ARGON_KEY_LEN" default:"32"`
}

// POSConfig carries store-level defaults handed to new terminal sessions.
type POSConfig struct {
	DefaultCurrency string `envconfig:"WAREHOUSEPOS_DEFAULT_CURRENCY" default:"USD"`
	TaxRatePercent  string `envconfig:"WAREHOUSEPOS_TAX_RATE_PERCENT" default:"0"`
}

type CheckoutConfig struct {
	CommitTimeout time.Duration `envconfig:"WAREHOUSEPOS_CHECKOUT_COMMIT_TIMEOUT" default:"10s"`
}

type OutboxConfig struct {
	BatchSize      int           `envconfig:"WAREHOUSEPOS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int           `envconfig:"WAREHOUSEPOS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int           `envconfig:"WAREHOUSEPOS_OUTBOX_MAX_ATTEMPTS" default:"10"`
	SinkURL        string        `envconfig:"WAREHOUSEPOS_OUTBOX_SINK_URL"`
	PublishTimeout time.Duration `envconfig:"WAREHOUSEPOS_OUTBOX_PUBLISH_TIMEOUT" default:"15s"`
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
