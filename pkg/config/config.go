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
	PasswordReset PasswordResetConfig
	AuthRateLimit AuthRateLimitConfig
	SMTP          SMTPConfig
	WhatsApp      WhatsAppConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"ORDERHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDERHUB_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"ORDERHUB_APP_BASE_URL" default:"http://localhost:3001"`
	LogLevel     string `envconfig:"ORDERHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ORDERHUB_DB_DSN"`
	Driver string `envconfig:"ORDERHUB_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ORDERHUB_DB_HOST"`
	Port     int    `envconfig:"ORDERHUB_DB_PORT" default:"5432"`
	User     string `envconfig:"ORDERHUB_DB_USER"`
	Password string `envconfig:"ORDERHUB_DB_PASSWORD"`
	Name     string `envconfig:"ORDERHUB_DB_NAME"`
	SSLMode  string `envconfig:"ORDERHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ORDERHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORDERHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORDERHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDERHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ORDERHUB_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ORDERHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ORDERHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"ORDERHUB_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ORDERHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ORDERHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ORDERHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ORDERHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ORDERHUB_ARGON_KEY_LEN" default:"32"`
}

type PasswordResetConfig struct {
	TokenTTL time.Duration `envconfig:"ORDERHUB_PASSWORD_RESET_TTL" default:"2h"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"ORDERHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"ORDERHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"ORDERHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type SMTPConfig struct {
	Host     string `envconfig:"ORDERHUB_SMTP_HOST"`
	Port     int    `envconfig:"ORDERHUB_SMTP_PORT" default:"587"`
	Username string `envconfig:"ORDERHUB_SMTP_USERNAME"`
	Password string `envconfig:"ORDERHUB_SMTP_PASSWORD"`
	From     string `envconfig:"ORDERHUB_SMTP_FROM"`
}

// Enabled reports whether outbound mail is configured at all.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type WhatsAppConfig struct {
	BaseURL       string        `envconfig:"ORDERHUB_EVOLUTION_BASE_URL" default:"http://127.0.0.1:8081"`
	InstanceID    string        `envconfig:"ORDERHUB_EVOLUTION_INSTANCE_ID"`
	Token         string        `envconfig:"ORDERHUB_EVOLUTION_TOKEN"`
	MinCooldownMS int           `envconfig:"ORDERHUB_WHATSAPP_MIN_COOLDOWN_MS" default:"800"`
	MaxCooldownMS int           `envconfig:"ORDERHUB_WHATSAPP_MAX_COOLDOWN_MS" default:"2400"`
	MaxAttempts   int           `envconfig:"ORDERHUB_WHATSAPP_MAX_ATTEMPTS" default:"3"`
	RetryWait     time.Duration `envconfig:"ORDERHUB_WHATSAPP_RETRY_WAIT" default:"10s"`
	QueueSize     int           `envconfig:"ORDERHUB_WHATSAPP_QUEUE_SIZE" default:"64"`
	HTTPTimeout   time.Duration `envconfig:"ORDERHUB_WHATSAPP_HTTP_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ORDERHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ORDERHUB_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range fallbackDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

// RetryWaitOrDefault guards against zero/negative overrides from the environment.
func (w WhatsAppConfig) RetryWaitOrDefault() time.Duration {
	if w.RetryWait <= 0 {
		return 10 * time.Second
	}
	return w.RetryWait
}
