// Package routes groups HTTP handlers under URL prefixes and publishes them
// to an OpenAPI specification as they are registered.
package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/pure-pdf/pkg/openapi"
)

// Route is a single HTTP endpoint. OpenAPI is optional; routes without it are
// served but not documented.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Children inherit the parent prefix.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// AddToSpec documents every route of the group and its children under basePath.
// Routes without explicit tags inherit the group tags.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g *Group) addToSpec(prefix string, spec *openapi.Spec) {
	fullPrefix := prefix + g.Prefix

	if len(g.Schemas) > 0 {
		if spec.Components == nil {
			spec.Components = openapi.NewComponents()
		}
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		path := fullPrefix + route.Pattern
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		switch strings.ToUpper(route.Method) {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodPut:
			item.Put = op
		case http.MethodDelete:
			item.Delete = op
		}
	}

	for i := range g.Children {
		g.Children[i].addToSpec(fullPrefix, spec)
	}
}

// Register adds every group's routes to mux relative to the module root and
// documents them in spec under basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		register(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func register(mux *http.ServeMux, prefix string, group Group) {
	fullPrefix := prefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		register(mux, fullPrefix, child)
	}
}
