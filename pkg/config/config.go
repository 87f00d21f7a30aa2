package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	Notify       NotifyConfig
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
	Env          string `envconfig:"CARGODESK_APP_ENV" required:"true"`
	Port         string `envconfig:"CARGODESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARGODESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARGODESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARGODESK_DB_DSN"`
	Driver string `envconfig:"CARGODESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARGODESK_DB_HOST"`
	LegacyPort     int    `envconfig:"CARGODESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARGODESK_DB_USER"`
	LegacyPassword string `envconfig:"CARGODESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARGODESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARGODESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARGODESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARGODESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARGODESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARGODESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARGODESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CARGODESK_REDIS_ADDR"`
	Password     string        `envconfig:"CARGODESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARGODESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARGODESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARGODESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARGODESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARGODESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARGODESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CARGODESK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CARGODESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CARGODESK_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"CARGODESK_SESSION_TTL_MINUTES" default:"720"`
}

// SessionTTL returns the redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CARGODESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CARGODESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CARGODESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CARGODESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CARGODESK_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARGODESK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"CARGODESK_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"CARGODESK_GCP_CREDENTIALS_JSON"`
}

// NotifyConfig controls the outbound notification topic. Leaving the topic
// empty disables publishing entirely (messages are logged and dropped).
type NotifyConfig struct {
	Topic string `envconfig:"CARGODESK_NOTIFY_TOPIC"`
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
