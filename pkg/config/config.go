package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	Sendgrid      SendgridConfig
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
	Env      string `envconfig:"SHOPLINE_APP_ENV" required:"true"`
	Port     string `envconfig:"SHOPLINE_APP_PORT" required:"true"`
	LogLevel string `envconfig:"SHOPLINE_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPLINE_DB_DSN"`
	Driver string `envconfig:"SHOPLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPLINE_DB_USER"`
	LegacyPassword string `envconfig:"SHOPLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPLINE_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"SHOPLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SHOPLINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SHOPLINE_JWT_ISSUER" default:"shopline"`
	ExpirationMinutes int    `envconfig:"SHOPLINE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPLINE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"SHOPLINE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"SHOPLINE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"SHOPLINE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"SHOPLINE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"SHOPLINE_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"SHOPLINE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite    bool `envconfig:"SHOPLINE_USE_SQLITE" default:"false"`
	AutoMigrate  bool `envconfig:"SHOPLINE_AUTO_MIGRATE" default:"false"`
	EnforceStock bool `envconfig:"SHOPLINE_ENFORCE_STOCK" default:"false"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"SHOPLINE_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"SHOPLINE_GCP_CREDENTIALS_JSON"`
}

type GCSConfig struct {
	BucketName string `envconfig:"SHOPLINE_GCS_BUCKET_NAME"`
}

type MediaConfig struct {
	// Backend selects where image uploads land: "local" (dev) or "gcs".
	Backend       string `envconfig:"SHOPLINE_MEDIA_BACKEND" default:"local"`
	LocalDir      string `envconfig:"SHOPLINE_MEDIA_LOCAL_DIR" default:"uploads/images"`
	PublicBaseURL string `envconfig:"SHOPLINE_MEDIA_PUBLIC_BASE_URL" default:"/uploads/images"`
	MaxUploadKB   int    `envconfig:"SHOPLINE_MEDIA_MAX_UPLOAD_KB" default:"500"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"SHOPLINE_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"SHOPLINE_SENDGRID_FROM_EMAIL"`
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
