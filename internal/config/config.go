package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeoutSeconds bounds every backend call unless overridden.
const DefaultTimeoutSeconds = 30

// Config defines client configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	State     StateConfig     `yaml:"state"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
}

// APIConfig describes the tracker backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured request timeout.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StateConfig locates durable client state (credential database, keyfile).
type StateConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// TransportConfig selects how the MCP bridge is served.
type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

// ServerConfig applies to the MCP bridge in http mode.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		State: StateConfig{
			Dir: defaultStateDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}

	if path := os.Getenv("BUGDECK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if baseURL := os.Getenv("BUGDECK_API_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if timeoutStr := os.Getenv("BUGDECK_HTTP_TIMEOUT"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BUGDECK_HTTP_TIMEOUT: %w", err)
		}
		cfg.API.TimeoutSeconds = seconds
	}
	if dir := os.Getenv("BUGDECK_STATE_DIR"); dir != "" {
		cfg.State.Dir = dir
	}
	if level := os.Getenv("BUGDECK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("BUGDECK_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if mode := os.Getenv("BUGDECK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("BUGDECK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("BUGDECK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BUGDECK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bugdeck"
	}
	return filepath.Join(home, ".bugdeck")
}
