package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mdbridge/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "mdbridge" // application name used for config directory

// Environment overrides, checked after the config file is loaded.
const (
	EnvServiceURL = "MDBRIDGE_SERVICE_URL"
)

// DefaultTimeoutSeconds bounds every request to the document service.
const DefaultTimeoutSeconds = 30

// Config holds user configuration for mdbridge.
type Config struct {
	// ServiceURL is the base URL of the remote document service.
	ServiceURL string `yaml:"service_url"`
	// TimeoutSeconds bounds each HTTP request to the service.
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Version        string `yaml:"version"`   // Track config version
	InitTime       int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location. If no config file
// exists, defaults are returned; environment overrides apply either way.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)

	var cfg *Config
	if exists {
		loaded, err := LoadFrom(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		def := DefaultConfig()
		cfg = &def
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServiceURL:     "https://docs.internal.example.com",
		TimeoutSeconds: DefaultTimeoutSeconds,
		Version:        "1.0",
		InitTime:       0, // Will be set during first save
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("service_url must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv(EnvServiceURL); url != "" {
		logging.Debug("Service URL overridden from environment", "url", url)
		c.ServiceURL = url
	}
}
