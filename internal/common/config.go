package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	Preview  PreviewConfig
	Sentry   SentryConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver          string // "mysql" | "pgx" | "sqlite"; inferred from DSN when empty
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr       string
	UploadRPS      float64 // rate limit for the extract endpoint
	UploadBurst    int
	MaxUploadBytes int64
}

// OCRConfig holds text-extraction configuration
type OCRConfig struct {
	Backend     string // "tesseract" | "vision"
	Tesseract   string // binary name or absolute path
	Language    string // single language tag fed to the extractor
	TessdataDir string
	PSM         int
	OEM         int
}

// PreviewConfig holds pending-preview store configuration
type PreviewConfig struct {
	TTL           time.Duration
	RedisAddr     string // empty -> in-memory store
	RedisPassword string
	RedisDB       int
}

// SentryConfig holds error-reporting configuration
type SentryConfig struct {
	DSN string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", ""),
			DSN:             getEnv("DB_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			PingTimeout:     getEnvAsDuration("DB_PING_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			UploadRPS:      getEnvAsFloat64("UPLOAD_RPS", 2),
			UploadBurst:    getEnvAsInt("UPLOAD_BURST", 5),
			MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 10<<20),
		},
		OCR: OCRConfig{
			Backend:     getEnv("OCR_BACKEND", "tesseract"),
			Tesseract:   getEnv("TESSERACT_PATH", "tesseract"),
			Language:    getEnv("OCR_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("OCR_PSM", 0),
			OEM:         getEnvAsInt("OCR_OEM", 0),
		},
		Preview: PreviewConfig{
			TTL:           getEnvAsDuration("PREVIEW_TTL", 15*time.Minute),
			RedisAddr:     getEnv("REDIS_ADDR", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.OCR.Backend != "tesseract" && c.OCR.Backend != "vision" {
		return NewAppError("CONFIG_ERROR", "OCR_BACKEND must be tesseract or vision", ErrInvalidInput)
	}
	return nil
}
