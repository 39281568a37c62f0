package config

// EnvPrefix is applied by envconfig on top of the explicit tags below.
const EnvPrefix = "RESALE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "RESALE_APP_ENV"
	EnvPort     = "RESALE_APP_PORT"
	EnvLogLevel = "RESALE_LOG_LEVEL"

	EnvDBDSN      = "RESALE_DB_DSN"
	EnvDBHost     = "RESALE_DB_HOST"
	EnvDBPort     = "RESALE_DB_PORT"
	EnvDBUser     = "RESALE_DB_USER"
	EnvDBPassword = "RESALE_DB_PASSWORD"
	EnvDBName     = "RESALE_DB_NAME"
	EnvDBSSLMode  = "RESALE_DB_SSLMODE"

	EnvRedisURL = "RESALE_REDIS_URL"

	EnvJWTSecret  = "RESALE_JWT_SECRET"
	EnvJWTIssuer  = "RESALE_JWT_ISSUER"
	EnvJWTExpMins = "RESALE_JWT_EXPIRATION_MINUTES"

	EnvGCPProjectID = "RESALE_GCP_PROJECT_ID"

	EnvPubSubVehicleTopic = "RESALE_PUBSUB_VEHICLE_TOPIC"
	EnvPubSubVehicleSub   = "RESALE_PUBSUB_VEHICLE_SUBSCRIPTION"
	EnvPubSubPartnerTopic = "RESALE_PUBSUB_PARTNER_TOPIC"
	EnvPubSubPartnerSub   = "RESALE_PUBSUB_PARTNER_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
