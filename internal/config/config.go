package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yigit/university/internal/pkg/apperrors"
)

// BaseFileName is the configuration file that must exist in the config directory.
const BaseFileName = "config.yaml"

// Config structure represents the application configuration
type Config struct {
	App struct {
		Name        string `yaml:"name" env:"APP_NAME"`
		Environment string `yaml:"environment"`
	} `yaml:"app"`

	Database struct {
		ConnectionString string `yaml:"connection_string" env:"DATABASE_URL"`
		Host             string `yaml:"host" env:"DB_HOST"`
		Port             string `yaml:"port" env:"DB_PORT"`
		User             string `yaml:"user" env:"DB_USER"`
		Password         string `yaml:"password" env:"DB_PASSWORD"`
		DBName           string `yaml:"dbname" env:"DB_NAME"`
		SSLMode          string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns         int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns         int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime  string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// Workflow toggles the write steps that run before the queries.
	Workflow struct {
		Seed   bool `yaml:"seed" env:"WORKFLOW_SEED"`
		Update bool `yaml:"update" env:"WORKFLOW_UPDATE"`
	} `yaml:"workflow"`
}

// LoadConfig loads configuration from configDir. The base file is required;
// config.<environment>.yaml is layered on top when present. An empty
// environment falls back to APP_ENV and then to the base file's app.environment.
func LoadConfig(configDir, environment string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	basePath := filepath.Join(configDir, BaseFileName)
	if err := mergeFile(config, basePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: required configuration file %s not found", apperrors.ErrConfiguration, basePath)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}

	if environment == "" {
		environment = os.Getenv("APP_ENV")
	}
	if environment == "" {
		environment = config.App.Environment
	}
	if environment != "" {
		config.App.Environment = environment
		overlayPath := filepath.Join(configDir, fmt.Sprintf("config.%s.yaml", strings.ToLower(environment)))
		if err := mergeFile(config, overlayPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
		}
	}

	// Override with environment variables
	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("%w: failed to load from environment: %v", apperrors.ErrConfiguration, err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: invalid configuration: %v", apperrors.ErrConfiguration, err)
	}

	return config, nil
}

// mergeFile unmarshals the YAML file at path over the current values.
func mergeFile(config *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(file, config); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.App.Name = "university"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.DBName = "university"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 4
	config.Database.MinConns = 1
	config.Database.ConnMaxLifetime = "1h"

	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.ConnectionString == "" && config.Database.Host == "" {
		return errors.New("database connection_string or host is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database conn_max_lifetime: %w", err)
	}

	if config.Database.MaxConns < 1 {
		return errors.New("database max_conns must be at least 1")
	}

	return nil
}

// ConnectionString returns the configured postgres connection string, or one
// assembled from the discrete database fields.
func (c *Config) ConnectionString() string {
	if c.Database.ConnectionString != "" {
		return c.Database.ConnectionString
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
