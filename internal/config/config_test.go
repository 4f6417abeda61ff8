package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/pure-pdf/internal/config"
	"github.com/JaimeStill/pure-pdf/internal/pdf"
	"github.com/JaimeStill/pure-pdf/pkg/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Server.Port != 8080 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Logging.Level != logging.LevelInfo || cfg.Logging.Format != logging.FormatText {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Staging.MaxUploadSizeBytes() != 50_000_000 {
		t.Errorf("max upload = %d, want 50MB", cfg.Staging.MaxUploadSizeBytes())
	}
	if cfg.PDF.ValidationMode != pdf.ValidationRelaxed || cfg.PDF.KeyLength != 256 {
		t.Errorf("pdf = %+v", cfg.PDF)
	}
	if cfg.API.BasePath != "/api" || cfg.API.OpenAPI.Title != "Pure PDF API" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown = %v", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadFile_ParsesSections(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
version = "2.0.0"

[server]
port = 9000

[logging]
format = "json"

[staging]
max_upload_size = "10MB"

[pdf]
validation_mode = "strict"
key_length = 128

[api.cors]
enabled = true
origins = ["http://localhost:5173"]
`)

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Version != "2.0.0" || cfg.Server.Port != 9000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Logging.Format != logging.FormatJSON {
		t.Errorf("format = %q", cfg.Logging.Format)
	}
	if cfg.Staging.MaxUploadSizeBytes() != 10_000_000 {
		t.Errorf("max upload = %d", cfg.Staging.MaxUploadSizeBytes())
	}
	if cfg.PDF.ValidationMode != pdf.ValidationStrict || cfg.PDF.KeyLength != 128 {
		t.Errorf("pdf = %+v", cfg.PDF)
	}
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("cors = %+v", cfg.API.CORS)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `[server`},
		{"bad upload size", "[staging]\nmax_upload_size = \"lots\""},
		{"bad key length", "[pdf]\nkey_length = 192"},
		{"bad log level", "[logging]\nlevel = \"loud\""},
		{"bad timeout", `shutdown_timeout = "soon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			if _, err := config.LoadFile(path); err == nil {
				t.Error("LoadFile() succeeded, want error")
			}
		})
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, "shutdown_timeout = \"30s\"\n\n[server]\nport = 8080\n")
	writeFile(t, dir, "config.test.toml", "shutdown_timeout = \"60s\"\n\n[server]\nport = 9090\n")

	t.Chdir(dir)
	t.Setenv(config.EnvServiceEnv, "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ShutdownTimeout != "60s" {
		t.Errorf("ShutdownTimeout = %q, want 60s", cfg.ShutdownTimeout)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Env() != "test" {
		t.Errorf("Env() = %q", cfg.Env())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.BaseConfigFile, "[server]\nport = 8080\n")
	t.Chdir(dir)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOGGING_LEVEL", "debug")
	t.Setenv("STAGING_MAX_UPLOAD_SIZE", "1MB")
	t.Setenv("PDF_VALIDATION_MODE", "strict")
	t.Setenv("API_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv(config.EnvServiceDomain, "https://pdf.example.com")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != logging.LevelDebug {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Staging.MaxUploadSizeBytes() != 1_000_000 {
		t.Errorf("max upload = %d", cfg.Staging.MaxUploadSizeBytes())
	}
	if cfg.PDF.ValidationMode != pdf.ValidationStrict {
		t.Errorf("mode = %q", cfg.PDF.ValidationMode)
	}
	if len(cfg.API.CORS.Origins) != 2 {
		t.Errorf("origins = %v", cfg.API.CORS.Origins)
	}
	if cfg.Domain != "https://pdf.example.com" {
		t.Errorf("Domain = %q", cfg.Domain)
	}
}

func TestServerConfig_ListenAddr(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"0.0.0.0", "0.0.0.0:8080"},
		{"::1", "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			cfg := &config.ServerConfig{Host: tt.host, Port: 8080}
			if got := cfg.ListenAddr(); got != tt.want {
				t.Errorf("ListenAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServerConfig_Merge(t *testing.T) {
	cfg := &config.ServerConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: "1m"}
	cfg.Merge(&config.ServerConfig{Port: 9000})

	if cfg.Host != "0.0.0.0" || cfg.Port != 9000 || cfg.ReadTimeout != "1m" {
		t.Errorf("cfg = %+v", cfg)
	}
}
