package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for variables without a tag.
const EnvPrefix = "CARGODESK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced from code and tests.
const (
	EnvAppEnv     = "CARGODESK_APP_ENV"
	EnvPort       = "CARGODESK_APP_PORT"
	EnvDBDSN      = "CARGODESK_DB_DSN"
	EnvDBHost     = "CARGODESK_DB_HOST"
	EnvDBUser     = "CARGODESK_DB_USER"
	EnvDBName     = "CARGODESK_DB_NAME"
	EnvRedisURL   = "CARGODESK_REDIS_URL"
	EnvJWTSecret  = "CARGODESK_JWT_SECRET"
	EnvJWTIssuer  = "CARGODESK_JWT_ISSUER"
	EnvJWTExpMins = "CARGODESK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
