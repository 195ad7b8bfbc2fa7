// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the configuration that can be loaded from a JSON file
// and overridden by environment variables. All fields are optional; missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	// Analysis
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Gemini model name

	// Extraction
	OCRBinary   string `json:"ocr_binary,omitempty"`   // Tesseract binary name or path
	OCRLanguage string `json:"ocr_language,omitempty"` // Tesseract language code

	// Scraping
	Headful               bool `json:"headful,omitempty"`                 // Run the browser with a visible window
	SessionTimeoutSeconds int  `json:"session_timeout_seconds,omitempty"` // Browser session timeout

	// Reporting
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for artifact storage

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address
	UploadDir  string `json:"upload_dir,omitempty"`  // Directory for temporary uploads

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
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

// FromEnv returns a Config populated from environment variables. Only
// variables that are set produce non-zero fields.
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       os.Getenv("GEMINI_MODEL"),
		OCRBinary:   os.Getenv("TESSERACT_BINARY"),
		OCRLanguage: os.Getenv("TESSERACT_LANGUAGE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ListenAddr:  os.Getenv("LISTEN_ADDR"),
		UploadDir:   os.Getenv("UPLOAD_DIR"),
	}
	if v := os.Getenv("BROWSER_SESSION_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			cfg.SessionTimeoutSeconds = seconds
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.SessionTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'session_timeout_seconds' must be non-negative")
	}

	if c.UploadDir != "" {
		if info, err := os.Stat(c.UploadDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: upload dir is not a directory: %s", c.UploadDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to layer env values over file values, and file
// values over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.OCRBinary == "" {
		result.OCRBinary = defaults.OCRBinary
	}
	if result.OCRLanguage == "" {
		result.OCRLanguage = defaults.OCRLanguage
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}

	if result.SessionTimeoutSeconds == 0 {
		result.SessionTimeoutSeconds = defaults.SessionTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
