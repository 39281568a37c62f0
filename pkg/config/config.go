package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Tax          TaxConfig
	Lifecycle    LifecycleConfig
	Documents    DocumentsConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Cron         CronConfig
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
	Env          string `envconfig:"RESALE_APP_ENV" required:"true"`
	Port         string `envconfig:"RESALE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RESALE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RESALE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"RESALE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"RESALE_DB_DSN"`
	Driver string `envconfig:"RESALE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RESALE_DB_HOST"`
	LegacyPort     int    `envconfig:"RESALE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RESALE_DB_USER"`
	LegacyPassword string `envconfig:"RESALE_DB_PASSWORD"`
	LegacyName     string `envconfig:"RESALE_DB_NAME"`
	LegacySSLMode  string `envconfig:"RESALE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RESALE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RESALE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RESALE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESALE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RESALE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RESALE_REDIS_ADDR"`
	Password     string        `envconfig:"RESALE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RESALE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RESALE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESALE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESALE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESALE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RESALE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RESALE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RESALE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RESALE_JWT_EXPIRATION_MINUTES" required:"true"`
}

// Expiration returns the access token TTL configured in minutes.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// TaxConfig holds the Brazilian tax rates applied at settlement time.
// ICMS applies to the selling price over a reduced base; the remaining
// rates apply to the sale margin.
type TaxConfig struct {
	ICMSRate          decimal.Decimal `envconfig:"RESALE_TAX_ICMS_RATE" default:"0.12"`
	ICMSBaseRate      decimal.Decimal `envconfig:"RESALE_TAX_ICMS_BASE_RATE" default:"0.05"`
	PISRate           decimal.Decimal `envconfig:"RESALE_TAX_PIS_RATE" default:"0.0065"`
	COFINSRate        decimal.Decimal `envconfig:"RESALE_TAX_COFINS_RATE" default:"0.03"`
	CSLLRate          decimal.Decimal `envconfig:"RESALE_TAX_CSLL_RATE" default:"0.0288"`
	IRPJRate          decimal.Decimal `envconfig:"RESALE_TAX_IRPJ_RATE" default:"0.048"`
	CommissionTaxRate decimal.Decimal `envconfig:"RESALE_TAX_COMMISSION_RATE" default:"0.15"`
}

type LifecycleConfig struct {
	SellOnPriceUpdate bool `envconfig:"RESALE_SELL_ON_PRICE_UPDATE" default:"true"`
}

type DocumentsConfig struct {
	StorageDir  string `envconfig:"RESALE_DOCUMENTS_DIR" default:"./data/documents"`
	MaxUploadMB int    `envconfig:"RESALE_DOCUMENTS_MAX_UPLOAD_MB" default:"20"`
}

func (d DocumentsConfig) MaxUploadBytes() int64 {
	return int64(d.MaxUploadMB) << 20
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RESALE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RESALE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"RESALE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"RESALE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"RESALE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	VehicleTopic        string `envconfig:"RESALE_PUBSUB_VEHICLE_TOPIC" required:"true"`
	VehicleSubscription string `envconfig:"RESALE_PUBSUB_VEHICLE_SUBSCRIPTION" required:"true"`
	PartnerTopic        string `envconfig:"RESALE_PUBSUB_PARTNER_TOPIC" required:"true"`
	PartnerSubscription string `envconfig:"RESALE_PUBSUB_PARTNER_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"RESALE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"RESALE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"RESALE_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type CronConfig struct {
	OutboxRetention     time.Duration `envconfig:"RESALE_CRON_OUTBOX_RETENTION" default:"168h"`
	OutboxSweepInterval time.Duration `envconfig:"RESALE_CRON_OUTBOX_SWEEP_INTERVAL" default:"1h"`
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
