package logging

import (
	"fmt"
	"os"
	"strconv"
)

// Env names the variables that override Config fields.
type Env struct {
	Level     string
	Format    string
	AddSource string
}

// Config is shared by the server and the command line tool.
type Config struct {
	Level     Level  `toml:"level"`
	Format    Format `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

// Finalize applies defaults, then environment overrides, then validates.
// Malformed environment values are reported rather than ignored.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if err := c.loadEnv(env); err != nil {
		return err
	}
	return c.validate()
}

// Merge takes non-empty values from overlay. AddSource can only be switched
// on by an overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.AddSource {
		c.AddSource = true
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv(env *Env) error {
	if env == nil {
		return nil
	}

	if v := os.Getenv(env.Level); v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env.Level, err)
		}
		c.Level = level
	}

	if v := os.Getenv(env.Format); v != "" {
		format, err := ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env.Format, err)
		}
		c.Format = format
	}

	if v := os.Getenv(env.AddSource); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", env.AddSource, v)
		}
		c.AddSource = on
	}

	return nil
}

func (c *Config) validate() error {
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}
