package api

import (
	"net/http"

	"github.com/JaimeStill/pure-pdf/internal/config"
	"github.com/JaimeStill/pure-pdf/internal/operations"
	"github.com/JaimeStill/pure-pdf/pkg/openapi"
	"github.com/JaimeStill/pure-pdf/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	operationsHandler := operations.NewHandler(domain.Operations, runtime.Logger, runtime.MaxUploadSize)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		operationsHandler.Routes(),
		operationsHandler.DocumentRoutes(),
	)
}
