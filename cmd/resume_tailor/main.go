// Package main provides the resume_tailor CLI and API server entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tailor",
	Short: "Tailor a LaTeX resume to a job description",
	Long:  "Resume Tailor parses a LaTeX resume, extracts keywords from a job description, selects and enhances the most relevant bullets, and produces a scored, compiled resume variant.",
}

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// appConfig merges the optional config file over built-in defaults and
// validates the result.
func appConfig() (config.Config, error) {
	defaults := config.DefaultConfig()
	if configPath == "" {
		defaults.Verbose = defaults.Verbose || verbose
		return defaults, nil
	}

	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg := loaded.MergeWithDefaults(defaults)
	cfg.Verbose = cfg.Verbose || verbose
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// modelConfig builds the Ollama connection settings from the app config,
// falling back to environment variables and defaults.
func modelConfig(cfg config.Config) llm.Config {
	mc := llm.ConfigFromEnv()
	if cfg.OllamaBaseURL != "" {
		mc.BaseURL = cfg.OllamaBaseURL
	}
	if cfg.OllamaModel != "" {
		mc.Model = cfg.OllamaModel
	}
	return mc
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
