// Package scalar serves the interactive API reference. The page loads the
// Scalar viewer and points it at the API module's openapi.json.
package scalar

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/JaimeStill/pure-pdf/pkg/module"
)

//go:embed index.html
var indexHTML []byte

// NewModule creates the reference module at prefix, reading the API
// document from specURL.
func NewModule(prefix, specURL string) *module.Module {
	page := bytes.ReplaceAll(indexHTML, []byte("{{SPEC_URL}}"), []byte(specURL))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	})

	return module.New(prefix, mux)
}
