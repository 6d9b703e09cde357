package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppDir is the directory under the user's home holding all state
const AppDir = ".taskboard"

// Config holds user preferences
type Config struct {
	APIURL     string `yaml:"api_url" json:"api_url"`       // Base URI of the REST backend
	Production bool   `yaml:"production" json:"production"` // Disables development-only behavior

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	Server ServerConfig `yaml:"server" json:"server"`

	path string
}

// ServerConfig configures the development backend
type ServerConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	DBDriver string `yaml:"db_driver" json:"db_driver"` // sqlite or postgres
	DBDSN    string `yaml:"db_dsn" json:"db_dsn"`
}

// Dir returns ~/.taskboard
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, AppDir), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath, dbPath := "", "taskboard.db"
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "taskboard.log")
		dbPath = filepath.Join(dir, "backend.db")
	}

	return &Config{
		APIURL:   "http://localhost:3000",
		LogLevel: "INFO",
		LogFile:  logPath,
		Server: ServerConfig{
			Addr:     ":3000",
			DBDriver: "sqlite",
			DBDSN:    dbPath,
		},
	}
}

// applyEnv overrides settings from the environment
func (c *Config) applyEnv() {
	c.APIURL = getEnv("TASKBOARD_API_URL", c.APIURL)
	if env := os.Getenv("TASKBOARD_ENV"); env != "" {
		c.Production = env == "production"
	}
	c.LogLevel = getEnv("TASKBOARD_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("TASKBOARD_LOG_FILE", c.LogFile)
	if v := os.Getenv("TASKBOARD_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true"
	}
	c.Server.Addr = getEnv("TASKBOARD_SERVER_ADDR", c.Server.Addr)
	c.Server.DBDriver = getEnv("TASKBOARD_DB_DRIVER", c.Server.DBDriver)
	c.Server.DBDSN = getEnv("TASKBOARD_DB_DSN", c.Server.DBDSN)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// LoadDotEnv loads a .env file when present. Variables already set win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads config from ~/.taskboard/config.yaml
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(dir, "config.yaml"))
}

// LoadFile loads config from path, falling back to defaults when it does not exist.
// Environment variables (and a .env file in the working directory) override the file.
func LoadFile(path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save saves config to the file it was loaded from (default ~/.taskboard/config.yaml)
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
