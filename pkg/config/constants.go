package config

// EnvPrefix is handed to envconfig; every variable below carries it
// explicitly so grep finds the full names.
const EnvPrefix = "SHOPLINE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "SHOPLINE_APP_ENV"
	EnvPort      = "SHOPLINE_APP_PORT"
	EnvDBDSN     = "SHOPLINE_DB_DSN"
	EnvDBHost    = "SHOPLINE_DB_HOST"
	EnvDBUser    = "SHOPLINE_DB_USER"
	EnvDBName    = "SHOPLINE_DB_NAME"
	EnvRedisURL  = "SHOPLINE_REDIS_URL"
	EnvJWTSecret = "SHOPLINE_JWT_SECRET"
	EnvJWTIssuer = "SHOPLINE_JWT_ISSUER"
	EnvJWTExp    = "SHOPLINE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
