package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	HTTP     HTTPConfig
	MinIO    MinIOConfig
	Post     PostConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// JWTConfig holds the signing secret and token lifetime.
type JWTConfig struct {
	Secret           string
	Expire           time.Duration // JWT_EXPIRE, e.g. "30d"
	CookieExpireDays int           // JWT_COOKIE_EXPIRE
}

// AuthConfig holds credential and login-protection settings.
type AuthConfig struct {
	BcryptCost       int
	MaxLoginAttempts int
	LoginLockout     time.Duration
}

type HTTPConfig struct {
	RequestTimeout time.Duration
	AllowedOrigins []string // empty reflects any origin
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Enabled   bool
}

// PostConfig selects which entity owns posts in this deployment.
type PostConfig struct {
	OwnerKind string // user, author or team
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	jwtExpire, err := ParseTTL(getEnv("JWT_EXPIRE", "30d"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}

	lockout, err := ParseTTL(getEnv("AUTH_LOGIN_LOCKOUT", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_LOGIN_LOCKOUT: %w", err)
	}

	requestTimeout, err := ParseTTL(getEnv("HTTP_REQUEST_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_REQUEST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Research Blog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "research_blog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", defaultJWTSecret),
			Expire:           jwtExpire,
			CookieExpireDays: getEnvInt("JWT_COOKIE_EXPIRE", 30),
		},
		Auth: AuthConfig{
			BcryptCost:       getEnvInt("BCRYPT_COST", 10),
			MaxLoginAttempts: getEnvInt("AUTH_MAX_LOGIN_ATTEMPTS", 5),
			LoginLockout:     lockout,
		},
		HTTP: HTTPConfig{
			RequestTimeout: requestTimeout,
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "research-blog"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			Enabled:   getEnvBool("MINIO_ENABLED", true),
		},
		Post: PostConfig{
			OwnerKind: strings.ToLower(getEnv("POST_OWNER_KIND", "author")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.Expire <= 0 {
		return fmt.Errorf("JWT_EXPIRE must be positive")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	switch c.Post.OwnerKind {
	case "user", "author", "team":
	default:
		return fmt.Errorf("POST_OWNER_KIND must be one of user, author, team (got %q)", c.Post.OwnerKind)
	}

	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ParseTTL parses a lifetime such as "30d", "12h", "90m" or "3600".
// A "d" suffix counts days, a bare integer counts seconds and anything else
// goes through time.ParseDuration.
func ParseTTL(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative duration %q", raw)
		}
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
