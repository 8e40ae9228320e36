package config

// EnvPrefix is handed to envconfig; every field carries its full name via tags.
const EnvPrefix = "LIVESTOCKMART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	PasswordAlgorithmBcrypt   = "bcrypt"
	PasswordAlgorithmArgon2id = "argon2id"
)

const (
	EnvAppEnv    = "LIVESTOCKMART_APP_ENV"
	EnvPort      = "LIVESTOCKMART_APP_PORT"
	EnvLogLevel  = "LIVESTOCKMART_LOG_LEVEL"
	EnvStaticDir = "LIVESTOCKMART_STATIC_DIR"

	EnvDBDSN    = "LIVESTOCKMART_DB_DSN"
	EnvDBDriver = "LIVESTOCKMART_DB_DRIVER"
	EnvDBHost   = "LIVESTOCKMART_DB_HOST"
	EnvDBPort   = "LIVESTOCKMART_DB_PORT"
	EnvDBUser   = "LIVESTOCKMART_DB_USER"
	EnvDBPass   = "LIVESTOCKMART_DB_PASSWORD"
	EnvDBName   = "LIVESTOCKMART_DB_NAME"

	EnvRedisURL = "LIVESTOCKMART_REDIS_URL"

	EnvJWTSecret = "LIVESTOCKMART_JWT_SECRET"
	EnvJWTIssuer = "LIVESTOCKMART_JWT_ISSUER"

	EnvPasswordAlgorithm = "LIVESTOCKMART_PASSWORD_ALGORITHM"
	EnvBcryptCost        = "LIVESTOCKMART_BCRYPT_COST"

	EnvCatalogCacheTTL     = "LIVESTOCKMART_CATALOG_CACHE_TTL"
	EnvCORSAllowedOrigins  = "LIVESTOCKMART_CORS_ALLOWED_ORIGINS"
	EnvAutoMigrate         = "LIVESTOCKMART_AUTO_MIGRATE"
	EnvLoginRateLimitIPMax = "LIVESTOCKMART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT"
	EnvTrustedProxies      = "LIVESTOCKMART_TRUSTED_PROXIES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
