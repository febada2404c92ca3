package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Qdrant   QdrantConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Session  SessionConfig
	Quality  QualityConfig
	Fallback FallbackConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type SessionConfig struct {
	SweepEnabled  bool
	SweepInterval time.Duration
	MaxAge        time.Duration
}

type QualityConfig struct {
	// EchoOverlapThreshold is the share of answer words that may also appear
	// in the question before the answer counts as an echo of it.
	EchoOverlapThreshold float64
}

type FallbackConfig struct {
	// DataPath points to an optional YAML file overriding the built-in
	// fallback questions and scorecards.
	DataPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "mockmate"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "interview_guides"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			Issuer:    getEnv("JWT_ISSUER", "mockmate"),
			TokenTTL:  getEnvAsDuration("JWT_TTL", "24h"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Session: SessionConfig{
			SweepEnabled:  getEnvAsBool("SESSION_SWEEP_ENABLED", false),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", "1h"),
			MaxAge:        getEnvAsDuration("SESSION_MAX_AGE", "24h"),
		},
		Quality: QualityConfig{
			EchoOverlapThreshold: getEnvAsFloat("QUALITY_ECHO_THRESHOLD", 0.6),
		},
		Fallback: FallbackConfig{
			DataPath: getEnv("FALLBACK_DATA_PATH", ""),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
