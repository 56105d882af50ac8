// Package config provides configuration loading and validation for the CLI
// and the API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Config represents the application configuration, loadable from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Paths
	BaseResume string `json:"base_resume,omitempty"` // Path to the base LaTeX resume
	OutputDir  string `json:"output_dir,omitempty"`  // Where variants and PDFs are written
	DataDir    string `json:"data_dir,omitempty"`    // Where uploaded job descriptions are kept
	DBPath     string `json:"db_path,omitempty"`     // SQLite database file

	// Server
	Port int `json:"port,omitempty" validate:"omitempty,gte=1,lte=65535"`

	// Model server
	OllamaBaseURL string `json:"ollama_base_url,omitempty" validate:"omitempty,url"`
	OllamaModel   string `json:"ollama_model,omitempty"`

	// Generation defaults, overridable per request.
	Generation types.GenerationConfig `json:"generation"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// DefaultConfig returns the built-in settings, with environment variables
// overriding the model server location.
func DefaultConfig() Config {
	cfg := Config{
		OutputDir:  "output",
		DataDir:    "data",
		DBPath:     filepath.Join("data", "tailor.db"),
		Port:       8000,
		Generation: types.DefaultGenerationConfig(),
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.OllamaBaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
	return cfg
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks ranges and that referenced files exist. Required fields
// are enforced by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Generation.TargetBullets > 0 {
		if err := validate.Struct(c.Generation); err != nil {
			return fmt.Errorf("config error in generation settings: %w", err)
		}
		if c.Generation.MinBulletsPerJob > c.Generation.MaxBulletsPerJob {
			return fmt.Errorf("config error: 'min_bullets_per_job' exceeds 'max_bullets_per_job'")
		}
	}

	if c.BaseResume != "" {
		if _, err := os.Stat(c.BaseResume); os.IsNotExist(err) {
			return fmt.Errorf("config error: base resume not found: %s", c.BaseResume)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BaseResume == "" {
		result.BaseResume = defaults.BaseResume
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DBPath == "" {
		result.DBPath = defaults.DBPath
	}
	if result.OllamaBaseURL == "" {
		result.OllamaBaseURL = defaults.OllamaBaseURL
	}
	if result.OllamaModel == "" {
		result.OllamaModel = defaults.OllamaModel
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Generation.TargetBullets == 0 {
		result.Generation = defaults.Generation
	}

	// Bool fields: cannot distinguish unset from false, so CLI flags win.

	return result
}

// EnsureDirs creates the output and data directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.OutputDir, c.DataDir, filepath.Dir(c.DBPath)} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
