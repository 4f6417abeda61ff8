// Package api assembles the HTTP API module: operation routes, the
// generated OpenAPI document, and the module middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/pure-pdf/internal/config"
	"github.com/JaimeStill/pure-pdf/internal/infrastructure"
	"github.com/JaimeStill/pure-pdf/internal/operations"
	"github.com/JaimeStill/pure-pdf/pkg/logging"
	"github.com/JaimeStill/pure-pdf/pkg/middleware"
	"github.com/JaimeStill/pure-pdf/pkg/module"
	"github.com/JaimeStill/pure-pdf/pkg/openapi"
	"github.com/JaimeStill/pure-pdf/pkg/routes"
)

// NewModule builds the API module mounted at cfg.API.BasePath.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec := NewSpec(cfg)

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.RequestID())
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))

	return m, nil
}

// NewSpec creates the API document skeleton from configuration.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)
	return spec
}

// BuildSpec renders the API document without starting any systems.
func BuildSpec(cfg *config.Config) *openapi.Spec {
	spec := NewSpec(cfg)
	h := operations.NewHandler(nil, logging.Discard(), cfg.Staging.MaxUploadSizeBytes())
	routes.Register(http.NewServeMux(), cfg.API.BasePath, spec, h.Routes(), h.DocumentRoutes())
	return spec
}
