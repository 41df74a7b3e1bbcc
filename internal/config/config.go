package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	AI           AIConfig
	Chat         ChatConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines admin authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	AdminEmail            string
	AdminPassword         string
}

// NotificationConfig holds outbound notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	SalesEmail string
	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	WebhookURL string
}

// AIConfig configures the generative-text collaborator.
type AIConfig struct {
	APIKey          string
	Model           string
	PromptsPath     string
	TimeoutSeconds  int
	CacheTTLMinutes int
}

// ChatConfig controls live-chat session behavior.
type ChatConfig struct {
	SessionTTLHours int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "blockbuddy-lead-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			AdminEmail:            getEnv("ADMIN_EMAIL", "admin@blockbuddy.space"),
			AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("EMAIL_FROM", "noreply@blockbuddy.space"),
			SalesEmail: getEnv("SALES_EMAIL", "sale@blockbuddy.space"),
			SMTPHost:   os.Getenv("EMAIL_SERVER_HOST"),
			SMTPPort:   getEnv("EMAIL_SERVER_PORT", "587"),
			SMTPUser:   os.Getenv("EMAIL_USERNAME"),
			SMTPPass:   os.Getenv("EMAIL_PASSWORD"),
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		},
		AI: AIConfig{
			APIKey:          os.Getenv("OPENAI_API_KEY"),
			Model:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			PromptsPath:     getEnv("AI_PROMPTS_PATH", "prompts/prompts.yaml"),
			TimeoutSeconds:  getEnvAsInt("AI_TIMEOUT_SECONDS", 15),
			CacheTTLMinutes: getEnvAsInt("AI_CACHE_TTL_MINUTES", 60),
		},
		Chat: ChatConfig{
			SessionTTLHours: getEnvAsInt("CHAT_SESSION_TTL_HOURS", 720),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-call deadline for generative-text requests.
func (a AIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long identification results stay cached.
func (a AIConfig) CacheTTL() time.Duration {
	if a.CacheTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(a.CacheTTLMinutes) * time.Minute
}

// SessionTTL returns how long a chat session identity survives for resumption.
func (c ChatConfig) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 720 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
