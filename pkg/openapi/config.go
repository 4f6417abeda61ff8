package openapi

import (
	"os"
	"path/filepath"
)

// Config holds the document metadata and the directory the rendered
// document is synced to.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	SpecDir     string `toml:"spec_dir"`
}

// ConfigEnv names the variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
	SpecDir     string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.SpecDir != "" {
		c.SpecDir = overlay.SpecDir
	}
}

// SpecFile returns the path of the rendered document for env, using
// "local" when env is empty.
func (c *Config) SpecFile(env string) string {
	if env == "" {
		env = "local"
	}
	return filepath.Join(c.SpecDir, "openapi."+env+".json")
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Pure PDF API"
	}
	if c.Description == "" {
		c.Description = "Page operations on uploaded PDF documents."
	}
	if c.SpecDir == "" {
		c.SpecDir = "api"
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	for name, field := range map[string]*string{
		env.Title:       &c.Title,
		env.Description: &c.Description,
		env.SpecDir:     &c.SpecDir,
	} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}
