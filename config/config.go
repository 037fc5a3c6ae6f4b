// Package config loads process configuration from the environment, with
// optional .env file support for local development. Only the wiring layer
// reads Settings; core components receive plain values at construction.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend identifiers accepted by the selection fields below.
const (
	ModelOpenAI    = "openai"
	ModelAnthropic = "anthropic"
	ModelOllama    = "ollama"
	ModelFake      = "fake"

	EmbeddingOpenAI = "openai"
	EmbeddingOllama = "ollama"
	EmbeddingFake   = "fake"

	LongTermSQLite = "sqlite"
	LongTermRedis  = "redis"

	VectorMemory  = "memory"
	VectorChromem = "chromem"
)

// Settings is the full configuration surface of the agentd process.
type Settings struct {
	AppName     string
	Environment string
	LogLevel    string
	LogFormat   string
	HTTPAddr    string

	ModelBackend    string
	OpenAIModel     string
	AnthropicModel  string
	OllamaHost      string
	OllamaChatModel string

	EmbeddingBackend     string
	OpenAIEmbeddingModel string
	OllamaEmbedModel     string

	LongTermBackend string
	MemoryDBPath    string
	RedisAddr       string

	VectorBackend string
	RAGPersistDir string

	ShortTermMaxMessages int
	AgentMaxSteps        int
	RAGEnabled           bool
}

// Load reads Settings from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Settings, error) {
	// Ignore a missing .env; it is a local development convenience only.
	_ = godotenv.Load()

	s := &Settings{
		AppName:     getEnv("APP_NAME", "agentcore"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),

		ModelBackend:    getEnv("MODEL_BACKEND", ModelOpenAI),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaChatModel: getEnv("OLLAMA_CHAT_MODEL", "llama3.1"),

		EmbeddingBackend:     getEnv("EMBEDDING_BACKEND", EmbeddingOpenAI),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		OllamaEmbedModel:     getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),

		LongTermBackend: getEnv("LONG_TERM_BACKEND", LongTermSQLite),
		MemoryDBPath:    getEnv("MEMORY_DB_PATH", "./data/memory.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),

		VectorBackend: getEnv("VECTOR_BACKEND", VectorMemory),
		RAGPersistDir: getEnv("RAG_PERSIST_DIR", ""),
	}

	var err error
	if s.ShortTermMaxMessages, err = getInt("SHORT_TERM_MAX_MESSAGES", 20); err != nil {
		return nil, err
	}
	if s.AgentMaxSteps, err = getInt("AGENT_MAX_STEPS", 5); err != nil {
		return nil, err
	}
	if s.RAGEnabled, err = getBool("RAG_ENABLED", true); err != nil {
		return nil, err
	}
	return s, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
