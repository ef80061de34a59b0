package config

import "os"

const EnvSecretsNameKey = "PUPPER_SECRETS_NAME_KEY"

// SecretsConfig holds field encryption parameters. NameKey is the
// base64-encoded 32-byte key protecting dog names at rest. When empty, a
// throwaway key is generated at startup and existing records cannot be
// decrypted.
type SecretsConfig struct {
	NameKey string `toml:"name_key"`
}

// Finalize applies environment variable overrides.
func (c *SecretsConfig) Finalize() error {
	if v := os.Getenv(EnvSecretsNameKey); v != "" {
		c.NameKey = v
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *SecretsConfig) Merge(overlay *SecretsConfig) {
	if overlay.NameKey != "" {
		c.NameKey = overlay.NameKey
	}
}
