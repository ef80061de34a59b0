package storage

import (
	"fmt"
	"os"
	"time"
)

// Config holds S3 object storage parameters.
type Config struct {
	Bucket        string `toml:"bucket"`
	Region        string `toml:"region"`
	Endpoint      string `toml:"endpoint"`
	UsePathStyle  bool   `toml:"use_path_style"`
	PresignExpiry string `toml:"presign_expiry"`
}

// Env maps config fields to environment variable names for override
// injection.
type Env struct {
	Bucket        string
	Region        string
	Endpoint      string
	PresignExpiry string
}

// PresignExpiryDuration returns PresignExpiry as a time.Duration.
func (c *Config) PresignExpiryDuration() time.Duration {
	d, _ := time.ParseDuration(c.PresignExpiry)
	return d
}

// Finalize applies defaults, environment variable overrides, and
// validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. UsePathStyle always
// applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.PresignExpiry != "" {
		c.PresignExpiry = overlay.PresignExpiry
	}
	c.UsePathStyle = overlay.UsePathStyle
}

func (c *Config) loadDefaults() {
	if c.Bucket == "" {
		c.Bucket = "pupper-images"
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.PresignExpiry == "" {
		c.PresignExpiry = "1h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Bucket != "" {
		if v := os.Getenv(env.Bucket); v != "" {
			c.Bucket = v
		}
	}
	if env.Region != "" {
		if v := os.Getenv(env.Region); v != "" {
			c.Region = v
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.PresignExpiry != "" {
		if v := os.Getenv(env.PresignExpiry); v != "" {
			c.PresignExpiry = v
		}
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket required")
	}
	if _, err := time.ParseDuration(c.PresignExpiry); err != nil {
		return fmt.Errorf("invalid presign_expiry: %w", err)
	}
	return nil
}
