// Package infrastructure assembles the dependencies every entry point
// needs: lifecycle coordination, logging, request staging, and the
// document engines built on top of it.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/pure-pdf/internal/config"
	"github.com/JaimeStill/pure-pdf/internal/convert"
	"github.com/JaimeStill/pure-pdf/internal/operations"
	"github.com/JaimeStill/pure-pdf/internal/pdf"
	"github.com/JaimeStill/pure-pdf/internal/staging"
	"github.com/JaimeStill/pure-pdf/pkg/lifecycle"
	"github.com/JaimeStill/pure-pdf/pkg/logging"
)

// Infrastructure holds the core systems shared by the HTTP server and the
// command line tool.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Staging    staging.System
	Engine     *pdf.Engine
	Converter  *convert.Converter
	Operations *operations.Service
}

// New creates an Infrastructure from the application configuration, logging
// to w. It initializes all systems but does not start them; call Start
// separately.
func New(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging, w)

	stage, err := staging.New(&cfg.Staging, logger)
	if err != nil {
		return nil, fmt.Errorf("staging init failed: %w", err)
	}

	engine := pdf.New(&cfg.PDF, stage, logger)
	converter := convert.New(stage, logger)

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Staging:    stage,
		Engine:     engine,
		Converter:  converter,
		Operations: operations.New(engine, converter, logger),
	}, nil
}

// Start registers the staging area with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Staging.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("staging start failed: %w", err)
	}
	return nil
}
