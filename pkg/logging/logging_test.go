package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/pure-pdf/pkg/logging"
)

func TestNew_Format(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}, &buf)
		logger.Info("operation complete", "operation", "merge")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if entry["operation"] != "merge" {
			t.Errorf("operation = %v", entry["operation"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, &buf)
		logger.Info("operation complete", "operation", "merge")

		if !strings.Contains(buf.String(), "operation=merge") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatText}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("unknown"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.want {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	got, err := logging.ParseLevel(" WARN ")
	if err != nil || got != logging.LevelWarn {
		t.Errorf("ParseLevel() = %q, %v", got, err)
	}

	if _, err := logging.ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) succeeded, want error")
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "DEBUG")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatal(err)
	}

	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want text", cfg.Format)
	}

	bad := &logging.Config{Format: "xml"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() accepted format xml")
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	env := &logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT", AddSource: "TEST_LOG_SOURCE"}

	tests := []struct {
		name    string
		vars    map[string]string
		want    logging.Config
		wantErr bool
	}{
		{
			"format and source",
			map[string]string{"TEST_LOG_FORMAT": " JSON ", "TEST_LOG_SOURCE": "true"},
			logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON, AddSource: true},
			false,
		},
		{
			"unknown level",
			map[string]string{"TEST_LOG_LEVEL": "verbose"},
			logging.Config{},
			true,
		},
		{
			"unknown format",
			map[string]string{"TEST_LOG_FORMAT": "xml"},
			logging.Config{},
			true,
		},
		{
			"malformed source flag",
			map[string]string{"TEST_LOG_SOURCE": "sometimes"},
			logging.Config{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.vars {
				t.Setenv(k, v)
			}

			cfg := &logging.Config{}
			err := cfg.Finalize(env)
			if tt.wantErr {
				if err == nil {
					t.Error("Finalize() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if *cfg != tt.want {
				t.Errorf("cfg = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestNew_AddSource(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON, AddSource: true}, &buf)
	logger.Info("staged")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := entry[slog.SourceKey]; !ok {
		t.Errorf("entry missing %q: %v", slog.SourceKey, entry)
	}
}

func TestParseFormat(t *testing.T) {
	got, err := logging.ParseFormat(" Json")
	if err != nil || got != logging.FormatJSON {
		t.Errorf("ParseFormat() = %q, %v", got, err)
	}

	if _, err := logging.ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) succeeded, want error")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}
	cfg.Merge(&logging.Config{Format: logging.FormatJSON})

	if cfg.Level != logging.LevelInfo || cfg.Format != logging.FormatJSON || cfg.AddSource {
		t.Errorf("cfg = %+v", cfg)
	}

	cfg.Merge(&logging.Config{AddSource: true})
	if !cfg.AddSource {
		t.Error("Merge() did not switch AddSource on")
	}
}
