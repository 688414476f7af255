// Package config provides YAML-based configuration loading for the
// mining-fleet backend.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration, loaded from minefleet.yaml.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	HTTP      HTTPConfig      `yaml:"http"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Alerts    AlertsConfig    `yaml:"alerts"`
}

// DatabaseConfig holds connection settings. When Host, User, and Name are
// all set the backend connects to MySQL; otherwise it falls back to a
// local SQLite file at SQLitePath.
type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SQLitePath string `yaml:"sqlite_path"`
}

// HTTPConfig holds settings for the API server.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// TelemetryConfig bounds the per-vehicle telemetry query and optionally
// enables the retention sweeper.
type TelemetryConfig struct {
	QueryLimit    int `yaml:"query_limit"`
	RetentionDays int `yaml:"retention_days"`
}

// AlertsConfig enables Slack alerts for failed medical checks when a
// webhook URL is configured.
type AlertsConfig struct {
	SlackWebhookURL string `yaml:"slack_webhook_url"`
	Channel         string `yaml:"channel"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UseMySQL reports whether the MySQL settings are complete enough to
// connect; otherwise the SQLite fallback is used.
func (c *Config) UseMySQL() bool {
	return c.Database.Host != "" && c.Database.User != "" && c.Database.Name != ""
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "minefleet.db"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Telemetry.QueryLimit == 0 {
		c.Telemetry.QueryLimit = 100
	}
}

// validate checks that all supplied fields are consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port %d is out of range", c.Database.Port))
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Sprintf("http.port %d is out of range", c.HTTP.Port))
	}
	if c.Telemetry.QueryLimit < 1 {
		errs = append(errs, "telemetry.query_limit must be positive")
	}
	if c.Telemetry.RetentionDays < 0 {
		errs = append(errs, "telemetry.retention_days cannot be negative")
	}
	if c.Alerts.SlackWebhookURL != "" && !strings.HasPrefix(c.Alerts.SlackWebhookURL, "https://") {
		errs = append(errs, "alerts.slack_webhook_url must be an https URL")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
