package operations

import "github.com/JaimeStill/pure-pdf/pkg/openapi"

type spec struct {
	List    *openapi.Operation
	Execute *openapi.Operation
	Inspect *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List operations",
		Description: "List every operation with its output filename and parameters",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Operation list",
				Content: map[string]*openapi.MediaType{
					"application/json": {
						Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Operation")},
					},
				},
			},
		},
	},
	Execute: &openapi.Operation{
		Summary:     "Run operation",
		Description: "Run the named operation over the uploaded files and download the result. Merge takes two or more files; every other operation takes one.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("name", "Operation name", operationNames()...),
		},
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"file":      {Type: "array", Items: &openapi.Schema{Type: "string", Format: "binary"}, Description: "Input PDF files, in order"},
				"watermark": {Type: "string", Format: "binary", Description: "Watermark PDF; its first page is overlaid (watermark)"},
				"pages":     {Type: "string", Description: "Comma-separated page numbers or ranges (delete, reorder, extract, rotate)", Example: "3,1,2-4"},
				"angle":     {Type: "string", Enum: []string{"90", "180", "270"}, Default: "90", Description: "Clockwise rotation (rotate)"},
				"password":  {Type: "string", Format: "password", Description: "At least 4 characters (protect)"},
			},
			Required: []string{"file"},
		}, true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Operation result as an attachment", ContentTypePDF, ContentTypeDOCX),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("RequestEntityTooLarge"),
			422: openapi.ResponseRef("UnprocessableEntity"),
			500: openapi.ResponseRef("InternalError"),
		},
	},
	Inspect: &openapi.Operation{
		Summary:     "Inspect document",
		Description: "Parse an uploaded PDF and report its page count",
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"file": {Type: "string", Format: "binary", Description: "PDF file"},
			},
			Required: []string{"file"},
		}, true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document details", "DocumentInfo"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("RequestEntityTooLarge"),
			422: openapi.ResponseRef("UnprocessableEntity"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Operation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string", Enum: operationNames()},
				"summary":      {Type: "string"},
				"filename":     {Type: "string", Description: "Suggested download filename"},
				"content_type": {Type: "string"},
				"min_inputs":   {Type: "integer"},
				"parameters":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"DocumentInfo": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":       {Type: "string"},
				"page_count": {Type: "integer"},
			},
		},
	}
}

func operationNames() []string {
	names := Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
