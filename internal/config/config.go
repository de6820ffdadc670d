package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Gemini   GeminiConfig
	Qdrant   QdrantConfig
	OCR      OCRConfig
	Workflow WorkflowConfig
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

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency      int
	RetryMaxAttempts int
}

type GeminiConfig struct {
	APIKey string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

// OCRConfig drives the remote OCR fallback tier. Providers are tried in the
// order listed; an empty APIKey disables the tier entirely.
type OCRConfig struct {
	APIKey    string
	Endpoint  string
	Providers []string
	Language  string
	Timeout   time.Duration
}

// WorkflowConfig drives the primary job-fit analysis workflow. WorkflowIDs
// are tried in order until one accepts the request.
type WorkflowConfig struct {
	APIKey          string
	BaseURL         string
	WorkflowIDs     []string
	PollInterval    time.Duration
	PollMaxAttempts int
	Timeout         time.Duration
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
			DBName:   getEnv("DB_NAME", "job_sprint"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "job_sprint_jobs"),
		},
		OCR: OCRConfig{
			APIKey:    getEnv("OCR_API_KEY", ""),
			Endpoint:  getEnv("OCR_ENDPOINT", "https://api.edenai.run/v2/ocr/ocr"),
			Providers: getEnvAsList("OCR_PROVIDERS", "amazon,google,microsoft"),
			Language:  getEnv("OCR_LANGUAGE", "pt"),
			Timeout:   getEnvAsDuration("OCR_TIMEOUT", "30s"),
		},
		Workflow: WorkflowConfig{
			APIKey:          getEnv("WORKFLOW_API_KEY", ""),
			BaseURL:         getEnv("WORKFLOW_BASE_URL", ""),
			WorkflowIDs:     getEnvAsList("WORKFLOW_IDS", ""),
			PollInterval:    getEnvAsDuration("WORKFLOW_POLL_INTERVAL", "2s"),
			PollMaxAttempts: getEnvAsInt("WORKFLOW_POLL_MAX_ATTEMPTS", 15),
			Timeout:         getEnvAsDuration("WORKFLOW_TIMEOUT", "30s"),
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

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	if valueStr == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
