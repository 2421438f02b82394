package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Keys   APIKeys
	Ai     AIConfig
	Ingest IngestConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	Groq        string
	HuggingFace string
	OpenAI      string
	Gladia      string
}

type AIConfig struct {
	LLMProvider  string // "groq" or "huggingface"
	LLMModel     string // e.g. "groq/compound"
	LLMBaseURL   string // optional override
	MaxTokens    int
	RetryBackoff time.Duration
}

type IngestConfig struct {
	DownloadTimeout    time.Duration
	MaxConcurrency     int
	TranscriptCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Keys: APIKeys{
			Groq:        getEnv("GROQ_API_KEY", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
			Gladia:      getEnv("GLADIA_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:  getEnv("LLM_PROVIDER", "groq"),
			LLMModel:     getEnv("LLM_MODEL", "groq/compound"),
			LLMBaseURL:   getEnv("LLM_BASE_URL", ""),
			MaxTokens:    getEnvAsInt("LLM_MAX_TOKENS", 8000),
			RetryBackoff: getEnvAsDuration("LLM_RETRY_BACKOFF", 2*time.Second),
		},
		Ingest: IngestConfig{
			DownloadTimeout:    getEnvAsDuration("INGEST_DOWNLOAD_TIMEOUT", 30*time.Second),
			MaxConcurrency:     getEnvAsInt("INGEST_MAX_CONCURRENCY", 4),
			TranscriptCacheTTL: getEnvAsDuration("TRANSCRIPT_CACHE_TTL", 1*time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
