package events

import "os"

// Config holds event publishing parameters. An empty topic ARN disables
// publishing.
type Config struct {
	TopicARN string `toml:"topic_arn"`
}

// Env maps config fields to environment variable names for override
// injection.
type Env struct {
	TopicARN string
}

// Finalize applies environment variable overrides.
func (c *Config) Finalize(env *Env) error {
	if env != nil && env.TopicARN != "" {
		if v := os.Getenv(env.TopicARN); v != "" {
			c.TopicARN = v
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.TopicARN != "" {
		c.TopicARN = overlay.TopicARN
	}
}
