// Package llm provides the local language model client used for bullet
// enhancement and summary generation. Generation runs against an Ollama
// server over its HTTP API.
package llm

import (
	"os"
	"time"
)

// Defaults for the Ollama connection.
const (
	DefaultBaseURL        = "http://localhost:11434"
	DefaultModel          = "llama3.1"
	DefaultTimeout        = 60 * time.Second
	DefaultHealthTimeout  = 5 * time.Second
	DefaultRequestsPerMin = 30
)

// Config holds connection settings for the model server.
type Config struct {
	BaseURL        string        `json:"base_url"`
	Model          string        `json:"model"`
	Timeout        time.Duration `json:"-"`
	RequestsPerMin int           `json:"requests_per_min"`
}

// DefaultConfig returns the standard local Ollama settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		Timeout:        DefaultTimeout,
		RequestsPerMin: DefaultRequestsPerMin,
	}
}

// ConfigFromEnv starts from defaults and applies OLLAMA_BASE_URL and
// OLLAMA_MODEL when set.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.Model = v
	}
	return cfg
}
