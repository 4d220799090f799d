package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so the
// prefix only matters for fields without tags.
const EnvPrefix = "ORDERHUB"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "ORDERHUB_APP_ENV"
	EnvAppPort    = "ORDERHUB_APP_PORT"
	EnvDBDSN      = "ORDERHUB_DB_DSN"
	EnvDBHost     = "ORDERHUB_DB_HOST"
	EnvDBUser     = "ORDERHUB_DB_USER"
	EnvDBName     = "ORDERHUB_DB_NAME"
	EnvRedisURL   = "ORDERHUB_REDIS_URL"
	EnvJWTSecret  = "ORDERHUB_JWT_SECRET"
	EnvJWTIssuer  = "ORDERHUB_JWT_ISSUER"
	EnvJWTExpMins = "ORDERHUB_JWT_EXPIRATION_MINUTES"
)

var fallbackDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
