package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Scoring ScoringConfig
	Batch   BatchConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins string
}

type LLMConfig struct {
	OpenAIKey        string
	GeminiKey        string
	OpenAIModel      string
	GeminiModel      string
	RetryMaxAttempts int
	RetryBackoffBase time.Duration
}

type ScoringConfig struct {
	LLMWeight     float64
	KeywordWeight float64
}

type BatchConfig struct {
	Size       int
	BatchPause time.Duration
}

type StorageConfig struct {
	TempDir     string
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8000"),
			Env:            getEnv("ENV", "development"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		LLM: LLMConfig{
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			GeminiKey:        getEnv("GEMINI_API_KEY", ""),
			OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 2),
			RetryBackoffBase: getEnvAsDuration("RETRY_BACKOFF_BASE", "1500ms"),
		},
		Scoring: ScoringConfig{
			LLMWeight:     getEnvAsFloat("LLM_WEIGHT", 0.7),
			KeywordWeight: getEnvAsFloat("KEYWORD_WEIGHT", 0.3),
		},
		Batch: BatchConfig{
			Size:       getEnvAsInt("BATCH_SIZE", 15),
			BatchPause: getEnvAsDuration("BATCH_PAUSE", "100ms"),
		},
		Storage: StorageConfig{
			TempDir:     getEnv("TEMP_DIR", filepath.Join(os.TempDir(), "ats_downloads")),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 20971520),
		},
	}
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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
