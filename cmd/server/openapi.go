package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/JaimeStill/pure-pdf/internal/api"
	"github.com/JaimeStill/pure-pdf/internal/config"
	"github.com/JaimeStill/pure-pdf/pkg/openapi"
)

// syncSpecFile writes the rendered API document to the configured spec
// directory when the file is missing or stale.
func syncSpecFile(cfg *config.Config) error {
	spec := api.BuildSpec(cfg)
	path := cfg.API.OpenAPI.SpecFile(cfg.Env())

	generated, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, generated) {
		return nil
	}

	return openapi.WriteJSON(spec, path)
}
