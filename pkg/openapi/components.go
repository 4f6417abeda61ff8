package openapi

// NewComponents returns the schemas and responses shared by every handler.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Message suitable for display"},
					"kind": {
						Type:        "string",
						Description: "Failure classification",
						Enum:        []string{"validation", "parse", "conversion", "resource"},
					},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":            ResponseJSON("Invalid request parameters", "Error"),
			"UnprocessableEntity":   ResponseJSON("Input could not be parsed or converted", "Error"),
			"RequestEntityTooLarge": ResponseJSON("Upload exceeds the configured limit", "Error"),
			"InternalError":         ResponseJSON("Unexpected server failure", "Error"),
		},
	}
}

// Components holds reusable schema and response definitions.
type Components struct {
	Schemas   map[string]*Schema   `json:"schemas,omitempty"`
	Responses map[string]*Response `json:"responses,omitempty"`
}

// AddSchemas merges schemas into the components, replacing any with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}
