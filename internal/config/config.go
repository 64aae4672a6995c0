package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	"docanalyzer/internal/logger"
)

// Config holds all runtime configuration, populated from environment
// variables. API keys are optional at load time; each command validates
// the keys it actually needs.
type Config struct {
	// Gemini Configuration
	GeminiAPIKey    string  `env:"GEMINI_API_KEY"`
	GenerativeModel string  `env:"GENERATIVE_MODEL" envDefault:"gemini-1.5-flash"`
	Temperature     float32 `env:"GENERATION_TEMPERATURE" envDefault:"0.3"`
	MaxOutputTokens int32   `env:"GENERATION_MAX_TOKENS" envDefault:"2048"`

	// Embeddings Configuration
	EmbeddingsProvider   string `env:"EMBEDDINGS_PROVIDER" envDefault:"google"`
	EmbeddingModel       string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
	OpenAIAPIKey         string `env:"OPENAI_API_KEY"`
	OpenAIEmbeddingModel string `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`

	// Document Processing Configuration
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"10000"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"1000"`

	// Retrieval Configuration
	TopK          int     `env:"TOP_K" envDefault:"5"`
	MinSimilarity float32 `env:"MIN_SIMILARITY" envDefault:"0"`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console"`
	LogTimeFormat string `env:"LOG_TIME_FORMAT" envDefault:"2006-01-02T15:04:05Z07:00"`
	LogOutput     string `env:"LOG_OUTPUT" envDefault:"stderr"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	switch c.EmbeddingsProvider {
	case "google", "openai":
	default:
		return fmt.Errorf("unknown embeddings provider: %s", c.EmbeddingsProvider)
	}
	return nil
}

// RequireGemini checks that a Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for this command")
	}
	return nil
}

// RequireEmbeddings checks that the configured embeddings provider is usable.
func (c *Config) RequireEmbeddings() error {
	switch c.EmbeddingsProvider {
	case "google":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for Google embeddings")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for OpenAI embeddings")
		}
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}
