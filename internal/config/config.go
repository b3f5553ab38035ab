package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides the catalog base URL.
const EnvAPIURL = "RICKDEX_API_URL"

// ServerConfig holds configuration for the rickdex server.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`         // Listen address (default ":8080")
	LogLevel    string        `yaml:"log_level"`    // Log level: debug, info, warn, error
	LogFormat   string        `yaml:"log_format"`   // Log format: text, json
	APIBaseURL  string        `yaml:"api_base_url"` // Catalog endpoint
	StaleTime   time.Duration `yaml:"stale_time"`   // Freshness window for cached reads
	GCTime      time.Duration `yaml:"gc_time"`      // Idle time before a cached key is evicted
	HTTPTimeout time.Duration `yaml:"http_timeout"` // Catalog request timeout, 0 = none
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:       ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
		APIBaseURL: "https://rickandmortyapi.com/api",
		StaleTime:  5 * time.Minute,
		GCTime:     5 * time.Minute,
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the file
// keep their current values.
func LoadFile(path string, cfg *ServerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Validate()
}

// ApplyEnv overrides cfg from environment variables.
func ApplyEnv(cfg *ServerConfig) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
}

// Validate rejects configurations the server cannot run with.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.StaleTime < 0 || c.GCTime < 0 || c.HTTPTimeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
