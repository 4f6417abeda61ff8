// Package staging provides scoped temporary directories for operations that
// must hand files to an engine. Each call acquires its own Area and releases
// it on every exit path; nothing written to an Area outlives the call.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/JaimeStill/pure-pdf/pkg/lifecycle"
	"github.com/google/uuid"
)

// System hands out staging areas under a common base directory.
type System interface {
	// Acquire creates a new empty area. Callers must Release it.
	Acquire(ctx context.Context) (*Area, error)

	// Start registers lifecycle hooks with the coordinator.
	// On startup the base directory is created and stale areas from a
	// previous process are removed.
	Start(lc *lifecycle.Coordinator) error
}

type filesystem struct {
	basePath string
	logger   *slog.Logger
}

// New creates a filesystem staging system rooted at cfg.BasePath.
// The base path is resolved to an absolute path during construction.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &filesystem{
		basePath: absPath,
		logger:   logger.With("system", "staging"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting staging system", "base_path", f.basePath)

	lc.OnStartup(func() {
		if err := os.MkdirAll(f.basePath, 0755); err != nil {
			f.logger.Error("staging initialization failed", "error", err)
			return
		}

		entries, err := os.ReadDir(f.basePath)
		if err != nil {
			f.logger.Warn("failed to read staging directory", "error", err)
			return
		}

		for _, entry := range entries {
			if !entry.IsDir() || uuid.Validate(entry.Name()) != nil {
				continue
			}
			if err := os.RemoveAll(filepath.Join(f.basePath, entry.Name())); err != nil {
				f.logger.Warn("failed to remove stale area", "area", entry.Name(), "error", err)
			}
		}
		f.logger.Info("staging directory initialized")
	})

	return nil
}

func (f *filesystem) Acquire(ctx context.Context) (*Area, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	dir := filepath.Join(f.basePath, id.String())

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: create area: %v", ErrUnavailable, err)
	}

	f.logger.Debug("area acquired", "area", id)

	return &Area{
		id:     id,
		dir:    dir,
		logger: f.logger,
	}, nil
}

// Area is a private directory owned by one call.
type Area struct {
	id       uuid.UUID
	dir      string
	logger   *slog.Logger
	mu       sync.Mutex
	released bool
}

// ID returns the area identifier.
func (a *Area) ID() uuid.UUID {
	return a.id
}

// Write stores data at key and returns the absolute file path.
// An existing key is overwritten.
func (a *Area) Write(key string, data []byte) (string, error) {
	path, err := a.Path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("%w: create directory: %v", ErrUnavailable, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return "", fmt.Errorf("%w: write temp file: %v", ErrUnavailable, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: rename temp file: %v", ErrUnavailable, err)
	}

	return path, nil
}

// Read returns the data stored at key.
func (a *Area) Read(key string) ([]byte, error) {
	path, err := a.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: read file: %v", ErrUnavailable, err)
	}

	return data, nil
}

// Path resolves key to an absolute path inside the area without touching disk.
func (a *Area) Path(key string) (string, error) {
	a.mu.Lock()
	released := a.released
	a.mu.Unlock()

	if released {
		return "", ErrReleased
	}

	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ErrInvalidKey
	}

	fullPath := filepath.Join(a.dir, cleaned)

	if !strings.HasPrefix(fullPath, a.dir+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	return fullPath, nil
}

// Release removes the area and everything written to it. It is safe to call
// more than once.
func (a *Area) Release() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return nil
	}
	a.released = true

	if err := os.RemoveAll(a.dir); err != nil {
		a.logger.Warn("failed to release area", "area", a.id, "error", err)
		return fmt.Errorf("%w: remove area: %v", ErrUnavailable, err)
	}

	a.logger.Debug("area released", "area", a.id)
	return nil
}
