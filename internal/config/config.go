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
	App    AppConfig
	Logger LoggerConfig
	Redis  RedisConfig
	Store  StoreConfig
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

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// RedisConfig holds connection values for the optional shared session
// store. An empty Addr keeps datasets in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StoreConfig bounds the per-session dataset store.
type StoreConfig struct {
	SessionTTLMinutes int
	MaxDatasets       int
	MaxUploadMB       int
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
			Name:                  getEnv("APP_NAME", "ticket-insights"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Store: StoreConfig{
			SessionTTLMinutes: getEnvAsInt("STORE_SESSION_TTL_MINUTES", 60),
			MaxDatasets:       getEnvAsInt("STORE_MAX_DATASETS", 64),
			MaxUploadMB:       getEnvAsInt("STORE_MAX_UPLOAD_MB", 32),
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

// SessionTTL returns how long a dataset outlives its upload.
func (s StoreConfig) SessionTTL() time.Duration {
	if s.SessionTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

// MaxUploadBytes returns the request body limit for uploads.
func (s StoreConfig) MaxUploadBytes() int {
	if s.MaxUploadMB <= 0 {
		return 32 << 20
	}
	return s.MaxUploadMB << 20
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
