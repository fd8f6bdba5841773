/*
Package config loads the server configuration.

PURPOSE:
  One YAML file describes the HTTP server and its collaborators. Every
  field has a default, so a missing file or an empty document still
  yields a runnable configuration; command-line flags in cmd/server
  override loaded values.

EXAMPLE (config.yaml):
  port: 8080
  database_path: ./data/credit.db
  redis_addr: localhost:6379
  allowed_origins:
    - http://localhost:5173
  log_level: info
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds the application configuration.
type Server struct {
	// Port the HTTP server listens on.
	Port int `yaml:"port"`

	// DatabasePath is the SQLite database location. ":memory:" works
	// for ephemeral runs.
	DatabasePath string `yaml:"database_path"`

	// RedisAddr enables the schedule cache when non-empty.
	RedisAddr string `yaml:"redis_addr"`

	// AllowedOrigins feeds the CORS middleware.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is supplied.
func Default() Server {
	return Server{
		Port:           8080,
		DatabasePath:   "credit.db",
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		LogLevel:       "info",
	}
}

// Load reads a YAML configuration file, applying defaults for any
// field the file leaves unset. An empty path returns the defaults.
func Load(path string) (Server, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "credit.db"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = Default().AllowedOrigins
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
