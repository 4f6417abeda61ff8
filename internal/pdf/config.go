package pdf

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidationMode selects how strictly input files are checked while reading.
type ValidationMode string

const (
	ValidationRelaxed ValidationMode = "relaxed"
	ValidationStrict  ValidationMode = "strict"
)

// Validate checks that the mode is known.
func (m ValidationMode) Validate() error {
	switch m {
	case ValidationRelaxed, ValidationStrict:
		return nil
	default:
		return fmt.Errorf("invalid validation mode: %s (must be relaxed or strict)", m)
	}
}

func (m ValidationMode) model() int {
	if m == ValidationStrict {
		return model.ValidationStrict
	}
	return model.ValidationRelaxed
}

// Config holds PDF engine configuration.
type Config struct {
	ValidationMode ValidationMode `toml:"validation_mode"`

	// KeyLength is the AES key length in bits used by Encrypt.
	// Default: 256
	KeyLength int `toml:"key_length"`
}

// Env maps environment variable names for PDF engine configuration.
type Env struct {
	ValidationMode string
	KeyLength      string
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.ValidationMode != "" {
		c.ValidationMode = overlay.ValidationMode
	}
	if overlay.KeyLength != 0 {
		c.KeyLength = overlay.KeyLength
	}
}

func (c *Config) loadDefaults() {
	if c.ValidationMode == "" {
		c.ValidationMode = ValidationRelaxed
	}
	if c.KeyLength == 0 {
		c.KeyLength = 256
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ValidationMode != "" {
		if v := os.Getenv(env.ValidationMode); v != "" {
			c.ValidationMode = ValidationMode(v)
		}
	}
	if env.KeyLength != "" {
		if v := os.Getenv(env.KeyLength); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.KeyLength = n
			}
		}
	}
}

func (c *Config) validate() error {
	if err := c.ValidationMode.Validate(); err != nil {
		return err
	}
	if c.KeyLength != 128 && c.KeyLength != 256 {
		return fmt.Errorf("invalid key_length: %d (must be 128 or 256)", c.KeyLength)
	}
	return nil
}
