package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	AWS      AWSConfig
	AppEnv   string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	FrontendURL  string // CORS origin, "*" allows all
}

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	URL                   string // DATABASE_URL, required
	PoolMax               int
	PoolIdleTimeoutSec    int
	PoolConnectTimeoutSec int
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds signing secrets and expiry policy for access and refresh tokens.
type JWTConfig struct {
	AccessSecret        string
	RefreshSecret       string
	AccessExpireMinutes int
	RefreshExpireHours  int
}

// AWSConfig holds AWS credentials and S3 bucket names for accreditation
// documents and event images.
type AWSConfig struct {
	Region               string
	AccessKeyID          string
	SecretAccessKey      string
	DocumentsBucket      string
	ImagesBucket         string
	PresignExpireMinutes int
}

// ErrMissingDatabaseURL is returned when DATABASE_URL is not set.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// Load reads configuration from environment, with optional .env file.
// DATABASE_URL must be set; everything else has a development default.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout: getEnvInt("WRITE_TIMEOUT_SEC", 30),
			FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			URL:                   dbURL,
			PoolMax:               getEnvInt("DB_POOL_MAX", 10),
			PoolIdleTimeoutSec:    getEnvInt("DB_POOL_IDLE_TIMEOUT", 300),
			PoolConnectTimeoutSec: getEnvInt("DB_POOL_CONNECTION_TIMEOUT", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:        getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret:       getEnv("JWT_REFRESH_SECRET", "change-me-too-in-production"),
			AccessExpireMinutes: getEnvInt("JWT_ACCESS_EXPIRE_MINUTES", 15),
			RefreshExpireHours:  getEnvInt("JWT_REFRESH_EXPIRE_HOURS", 168),
		},
		AWS: AWSConfig{
			Region:               getEnv("AWS_REGION", ""),
			AccessKeyID:          getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
			DocumentsBucket:      getEnv("AWS_S3_DOCUMENTS_BUCKET", "panorama-documentos"),
			ImagesBucket:         getEnv("AWS_S3_IMAGES_BUCKET", "panorama-imagenes"),
			PresignExpireMinutes: getEnvInt("AWS_PRESIGN_EXPIRE_MINUTES", 15),
		},
		AppEnv: getEnv("APP_ENV", "development"),
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
