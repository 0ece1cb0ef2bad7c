// Package config handles reading and writing <config-dir>/config.yaml and
// resolving the Gemini API key from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sketchify-dev/sketchify/internal/generate"
	"github.com/sketchify-dev/sketchify/internal/style"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version        int    `yaml:"version"`
	Model          string `yaml:"model"`
	OutputDir      string `yaml:"output_dir"`
	DefaultStyle   string `yaml:"default_style"` // style key or label
	MaxUploadMB    int    `yaml:"max_upload_mb"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	// APIKey is resolved from the environment and never written to disk.
	APIKey string `yaml:"-"`
}

const (
	dirName    = ".sketchify"
	configFile = "config.yaml"
)

// API key variables, in lookup order.
var apiKeyVars = []string{"GEMINI_API_KEY", "API_KEY"}

// Dir returns the default config directory, ~/.sketchify. It falls back to
// ./.sketchify when the home directory cannot be determined.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, configFile)
}

// ReadConfig reads config.yaml from dir.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to config.yaml in dir, creating dir if needed.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		Model:          generate.DefaultModel,
		OutputDir:      ".",
		DefaultStyle:   style.Default().Key,
		MaxUploadMB:    10,
		TimeoutSeconds: 120,
	}
}

// Load reads config.yaml from dir, using defaults when the file does not
// exist, then resolves the API key. A .env file in the working directory is
// loaded first if present; variables already set in the environment win.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	cfg.APIKey = APIKeyFromEnv()

	return cfg, nil
}

// APIKeyFromEnv returns the first non-empty API key variable.
func APIKeyFromEnv() string {
	for _, name := range apiKeyVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Style resolves DefaultStyle against the catalog.
func (c *Config) Style() (style.Style, error) {
	if c.DefaultStyle == "" {
		return style.Default(), nil
	}
	return style.Lookup(c.DefaultStyle)
}

// MaxUploadBytes is the upload limit in bytes. Zero means the encoder default.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMB) << 20
}

// Timeout bounds a single generation call.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GenerateOptions returns the adapter options for this config.
func (c *Config) GenerateOptions() generate.Options {
	return generate.Options{
		APIKey:  c.APIKey,
		Model:   c.Model,
		Timeout: c.Timeout(),
	}
}
