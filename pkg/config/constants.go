package config

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = "MERENDA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	PersistenceBackendSQL   = "sql"
	PersistenceBackendRedis = "redis"

	EnvAppEnv    = "MERENDA_APP_ENV"
	EnvPort      = "MERENDA_APP_PORT"
	EnvDBDSN     = "MERENDA_DB_DSN"
	EnvRedisURL  = "MERENDA_REDIS_URL"
	EnvRedisAddr = "MERENDA_REDIS_ADDR"
)
