package staging_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/pure-pdf/internal/staging"
	"github.com/JaimeStill/pure-pdf/pkg/lifecycle"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newSystem(t *testing.T) (staging.System, string) {
	t.Helper()
	dir := t.TempDir()

	sys, err := staging.New(&staging.Config{BasePath: dir}, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return sys, dir
}

func TestNew_EmptyBasePath(t *testing.T) {
	_, err := staging.New(&staging.Config{}, testLogger())
	if err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesDirectoryAndPurgesStaleAreas(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "nested", "staging")

	stale := filepath.Join(baseDir, uuid.NewString())
	if err := os.MkdirAll(stale, 0755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(baseDir, "keep")
	if err := os.MkdirAll(keep, 0755); err != nil {
		t.Fatal(err)
	}

	sys, err := staging.New(&staging.Config{BasePath: baseDir}, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	if _, err := os.Stat(baseDir); err != nil {
		t.Errorf("Start() did not create base directory: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale area was not removed")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("non-area directory was removed")
	}
}

func TestArea_WriteReadRelease(t *testing.T) {
	sys, base := newSystem(t)

	area, err := sys.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}

	path, err := area.Write("input.pdf", []byte("%PDF-1.7"))
	if err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	if filepath.Dir(path) != filepath.Join(base, area.ID().String()) {
		t.Errorf("Write() path = %q, want inside area", path)
	}

	data, err := area.Read("input.pdf")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if string(data) != "%PDF-1.7" {
		t.Errorf("Read() = %q", data)
	}

	if err := area.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Release() left files behind")
	}

	if err := area.Release(); err != nil {
		t.Errorf("second Release() error = %v, want nil", err)
	}

	if _, err := area.Write("again.pdf", nil); !errors.Is(err, staging.ErrReleased) {
		t.Errorf("Write() after Release error = %v, want ErrReleased", err)
	}
}

func TestArea_Read_NotFound(t *testing.T) {
	sys, _ := newSystem(t)

	area, err := sys.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer area.Release()

	if _, err := area.Read("missing.pdf"); !errors.Is(err, staging.ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestArea_Path_InvalidKeys(t *testing.T) {
	sys, _ := newSystem(t)

	area, err := sys.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer area.Release()

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"parent traversal", "../escape.pdf"},
		{"nested traversal", "a/../../escape.pdf"},
		{"absolute", "/etc/passwd"},
		{"area root", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := area.Path(tt.key); !errors.Is(err, staging.ErrInvalidKey) {
				t.Errorf("Path(%q) error = %v, want ErrInvalidKey", tt.key, err)
			}
		})
	}
}

func TestAcquire_DistinctAreas(t *testing.T) {
	sys, _ := newSystem(t)

	a, err := sys.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()

	b, err := sys.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	if a.ID() == b.ID() {
		t.Error("Acquire() returned the same area twice")
	}
}

func TestAcquire_CancelledContext(t *testing.T) {
	sys, _ := newSystem(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sys.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}
}

func TestConfig_Finalize(t *testing.T) {
	tests := []struct {
		name      string
		cfg       staging.Config
		wantBytes int64
		wantErr   bool
	}{
		{"defaults", staging.Config{}, 50_000_000, false},
		{"explicit size", staging.Config{BasePath: "x", MaxUploadSize: "10MB"}, 10_000_000, false},
		{"invalid size", staging.Config{BasePath: "x", MaxUploadSize: "lots"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize(nil)

			if tt.wantErr {
				if err == nil {
					t.Error("Finalize() succeeded, want error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if cfg.MaxUploadSizeBytes() != tt.wantBytes {
				t.Errorf("MaxUploadSizeBytes() = %d, want %d", cfg.MaxUploadSizeBytes(), tt.wantBytes)
			}
		})
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_STAGING_BASE_PATH", "/tmp/staging-env")
	t.Setenv("TEST_STAGING_MAX_UPLOAD_SIZE", "1MB")

	cfg := &staging.Config{}
	env := &staging.Env{
		BasePath:      "TEST_STAGING_BASE_PATH",
		MaxUploadSize: "TEST_STAGING_MAX_UPLOAD_SIZE",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.BasePath != "/tmp/staging-env" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 1_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 1000000", cfg.MaxUploadSizeBytes())
	}
}
