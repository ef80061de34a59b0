package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pupperworks/pupper/internal/auth"
	"github.com/pupperworks/pupper/internal/events"
	"github.com/pupperworks/pupper/internal/model"
	"github.com/pupperworks/pupper/pkg/database"
	"github.com/pupperworks/pupper/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPupperEnv             = "PUPPER_ENV"
	EnvPupperShutdownTimeout = "PUPPER_SHUTDOWN_TIMEOUT"
	EnvPupperVersion         = "PUPPER_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PUPPER_DB_HOST",
	Port:            "PUPPER_DB_PORT",
	Name:            "PUPPER_DB_NAME",
	User:            "PUPPER_DB_USER",
	Password:        "PUPPER_DB_PASSWORD",
	SSLMode:         "PUPPER_DB_SSL_MODE",
	MaxOpenConns:    "PUPPER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PUPPER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PUPPER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PUPPER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Bucket:        "PUPPER_STORAGE_BUCKET",
	Region:        "PUPPER_STORAGE_REGION",
	Endpoint:      "PUPPER_STORAGE_ENDPOINT",
	PresignExpiry: "PUPPER_STORAGE_PRESIGN_EXPIRY",
}

var modelEnv = &model.Env{
	Model:       "PUPPER_MODEL",
	ImageModel:  "PUPPER_IMAGE_MODEL",
	MaxTokens:   "PUPPER_MODEL_MAX_TOKENS",
	APIKey:      "ANTHROPIC_API_KEY",
	MaxAttempts: "PUPPER_MODEL_MAX_ATTEMPTS",
	BaseDelay:   "PUPPER_MODEL_BASE_DELAY",
}

var eventsEnv = &events.Env{
	TopicARN: "PUPPER_EVENTS_TOPIC_ARN",
}

var authEnv = &auth.Env{
	Mode:     "PUPPER_AUTH_MODE",
	Issuer:   "PUPPER_AUTH_ISSUER",
	Audience: "PUPPER_AUTH_AUDIENCE",
	Secret:   "PUPPER_AUTH_SECRET",
}

// Config is the root configuration for the Pupper service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Model           model.Config    `toml:"model"`
	Events          events.Config   `toml:"events"`
	Auth            auth.Config     `toml:"auth"`
	Secrets         SecretsConfig   `toml:"secrets"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PUPPER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPupperEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Model.Merge(&overlay.Model)
	c.Events.Merge(&overlay.Events)
	c.Auth.Merge(&overlay.Auth)
	c.Secrets.Merge(&overlay.Secrets)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Model.Finalize(modelEnv); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := c.Events.Finalize(eventsEnv); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Secrets.Finalize(); err != nil {
		return fmt.Errorf("secrets: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPupperShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPupperVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPupperEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
