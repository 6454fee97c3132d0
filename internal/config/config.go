package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Planner   PlannerConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider    string // "ollama", "gemini" or "mock"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	GeminiAPIKey         string
	LLMProvider          string // "ollama" or "mock"
	LLMModel             string
	EmbeddingDimension   int
	ProviderTimeoutSecs  int
	MaxRetries           int
	EmbedConcurrency     int
	EmbedTopic           string
}

type RetrievalConfig struct {
	TopK                int
	SimilarityThreshold float64
	ChunkSize           int
	ChunkOverlap        int
}

type PlannerConfig struct {
	Alpha float64 // past-paper frequency weight
	Beta  float64 // note volume weight
	Gamma float64 // baseline difficulty weight
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "mock"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiAPIKey:         getEnv("GOOGLE_GEMINI_API_KEY", ""),
			LLMProvider:          getEnv("LLM_PROVIDER", "mock"),
			LLMModel:             getEnv("LLM_MODEL", "llama3"),
			EmbeddingDimension:   getEnvAsInt("EMBEDDING_DIMENSION", 768),
			ProviderTimeoutSecs:  getEnvAsInt("PROVIDER_TIMEOUT_SECS", 30),
			MaxRetries:           getEnvAsInt("PROVIDER_MAX_RETRIES", 3),
			EmbedConcurrency:     getEnvAsInt("EMBED_CONCURRENCY", 4),
			EmbedTopic:           getEnv("EMBED_RESOURCE_TOPIC_NAME", "EMBED_RESOURCE"),
		},
		Retrieval: RetrievalConfig{
			TopK:                getEnvAsInt("RAG_TOP_K", 5),
			SimilarityThreshold: getEnvAsFloat("RAG_SIMILARITY_THRESHOLD", 0.35),
			ChunkSize:           getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap:        getEnvAsInt("CHUNK_OVERLAP", 200),
		},
		Planner: PlannerConfig{
			Alpha: getEnvAsFloat("PLANNER_ALPHA", 0.45),
			Beta:  getEnvAsFloat("PLANNER_BETA", 0.25),
			Gamma: getEnvAsFloat("PLANNER_GAMMA", 0.30),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
