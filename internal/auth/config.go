package auth

import (
	"fmt"
	"os"
)

// Modes for credential verification.
const (
	ModeOIDC  = "oidc"
	ModeLocal = "local"
)

// Config holds bearer-token verification parameters. OIDC mode verifies
// ID tokens against a hosted issuer's JWKS; local mode verifies HS256
// tokens signed with a shared secret, for development.
type Config struct {
	Mode     string `toml:"mode"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
	Secret   string `toml:"secret"`
}

// Env maps config fields to environment variable names for override
// injection.
type Env struct {
	Mode     string
	Issuer   string
	Audience string
	Secret   string
}

// Finalize applies defaults, environment variable overrides, and
// validation.
func (c *Config) Finalize(env *Env) error {
	if c.Mode == "" {
		c.Mode = ModeLocal
	}
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Mode != "" {
		if v := os.Getenv(env.Mode); v != "" {
			c.Mode = v
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.Audience != "" {
		if v := os.Getenv(env.Audience); v != "" {
			c.Audience = v
		}
	}
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeOIDC:
		if c.Issuer == "" {
			return fmt.Errorf("issuer required in oidc mode")
		}
		if c.Audience == "" {
			return fmt.Errorf("audience required in oidc mode")
		}
	case ModeLocal:
		if len(c.Secret) < 32 {
			return fmt.Errorf("secret must be at least 32 characters in local mode")
		}
	default:
		return fmt.Errorf("unknown auth mode: %q", c.Mode)
	}
	return nil
}
