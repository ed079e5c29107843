// Package config provides configuration management for FaceLab.
// Settings come from three layers with increasing precedence: built-in
// defaults, an optional YAML file, then environment variables with the
// FACELAB_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the FaceLab server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	AI       AIConfig       `yaml:"ai"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"` // Server port (default: 7378)
	Host string `yaml:"host"` // Server host (default: 127.0.0.1)
}

// StorageConfig contains database configuration.
type StorageConfig struct {
	Engine      string `yaml:"engine"`       // Storage engine: sqlite, postgres (default: sqlite)
	DataPath    string `yaml:"data_path"`    // Path to data directory for sqlite (default: ./data)
	PostgresURL string `yaml:"postgres_url"` // Connection string when engine is postgres
}

// AIConfig contains vision provider configuration.
type AIConfig struct {
	Provider       string        `yaml:"provider"`        // Vision provider: openai, ollama (default: ollama)
	OpenAIAPIKey   string        `yaml:"openai_api_key"`  // OpenAI API key
	OpenAIModel    string        `yaml:"openai_model"`    // OpenAI model name (default: gpt-4o-mini)
	OpenAIBaseURL  string        `yaml:"openai_base_url"` // Override for OpenAI-compatible endpoints
	OllamaURL      string        `yaml:"ollama_url"`      // Ollama API URL (default: http://localhost:11434)
	OllamaModel    string        `yaml:"ollama_model"`    // Ollama vision model (default: llava:7b)
	RequestTimeout time.Duration `yaml:"request_timeout"` // Per-call timeout (default: 60s)
	FallbackSeed   int64         `yaml:"fallback_seed"`   // Seed for the offline generator; 0 means time-based
}

// SecurityConfig contains authentication and rate limiting settings.
type SecurityConfig struct {
	Mode      string  `yaml:"mode"`       // Security mode: development, production (default: development)
	APIToken  string  `yaml:"api_token"`  // Bearer token required in production mode
	RateLimit float64 `yaml:"rate_limit"` // Requests per second per client (default: 10)
	RateBurst int     `yaml:"rate_burst"` // Burst allowance (default: 20)
}

// LoadConfig loads configuration from defaults, an optional YAML file named
// by FACELAB_CONFIG_FILE, and environment variables, in that order.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("FACELAB_CONFIG_FILE"); path != "" {
		if err := applyYAML(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if cfg.Security.Mode == "production" && cfg.Security.APIToken == "" {
		return nil, fmt.Errorf("config: FACELAB_API_TOKEN is required in production mode")
	}
	if cfg.Storage.Engine == "postgres" && cfg.Storage.PostgresURL == "" {
		return nil, fmt.Errorf("config: FACELAB_POSTGRES_URL is required for the postgres engine")
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 7378,
			Host: "127.0.0.1",
		},
		Storage: StorageConfig{
			Engine:   "sqlite",
			DataPath: "./data",
		},
		AI: AIConfig{
			Provider:       "ollama",
			OpenAIModel:    "gpt-4o-mini",
			OllamaURL:      "http://localhost:11434",
			OllamaModel:    "llava:7b",
			RequestTimeout: 60 * time.Second,
		},
		Security: SecurityConfig{
			Mode:      "development",
			RateLimit: 10,
			RateBurst: 20,
		},
	}
}

// applyYAML overlays settings from a YAML file onto cfg.
func applyYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays FACELAB_ environment variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvInt("FACELAB_PORT", cfg.Server.Port)
	cfg.Server.Host = getEnv("FACELAB_HOST", cfg.Server.Host)

	cfg.Storage.Engine = getEnv("FACELAB_STORAGE_ENGINE", cfg.Storage.Engine)
	cfg.Storage.DataPath = getEnv("FACELAB_DATA_PATH", cfg.Storage.DataPath)
	cfg.Storage.PostgresURL = getEnv("FACELAB_POSTGRES_URL", cfg.Storage.PostgresURL)

	cfg.AI.Provider = getEnv("FACELAB_AI_PROVIDER", cfg.AI.Provider)
	cfg.AI.OpenAIAPIKey = getEnv("FACELAB_OPENAI_API_KEY", cfg.AI.OpenAIAPIKey)
	cfg.AI.OpenAIModel = getEnv("FACELAB_OPENAI_MODEL", cfg.AI.OpenAIModel)
	cfg.AI.OpenAIBaseURL = getEnv("FACELAB_OPENAI_BASE_URL", cfg.AI.OpenAIBaseURL)
	cfg.AI.OllamaURL = getEnv("FACELAB_OLLAMA_URL", cfg.AI.OllamaURL)
	cfg.AI.OllamaModel = getEnv("FACELAB_OLLAMA_MODEL", cfg.AI.OllamaModel)
	cfg.AI.RequestTimeout = getEnvDuration("FACELAB_AI_TIMEOUT", cfg.AI.RequestTimeout)
	cfg.AI.FallbackSeed = int64(getEnvInt("FACELAB_FALLBACK_SEED", int(cfg.AI.FallbackSeed)))

	cfg.Security.Mode = getEnv("FACELAB_SECURITY_MODE", cfg.Security.Mode)
	cfg.Security.APIToken = getEnv("FACELAB_API_TOKEN", cfg.Security.APIToken)
	cfg.Security.RateLimit = getEnvFloat("FACELAB_RATE_LIMIT", cfg.Security.RateLimit)
	cfg.Security.RateBurst = getEnvInt("FACELAB_RATE_BURST", cfg.Security.RateBurst)
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. Unparsable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default
// value. Unparsable values fall back to the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable (e.g. "30s") or
// returns a default value. Unparsable values fall back to the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
