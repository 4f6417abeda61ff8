package operations

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/JaimeStill/pure-pdf/pkg/handlers"
	"github.com/JaimeStill/pure-pdf/pkg/routes"
	"github.com/docker/go-units"
)

// Handler exposes the operation service over HTTP.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates an operations handler. Request bodies larger than
// maxUploadSize are rejected with 413.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "operations"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the operation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/operations",
		Tags:        []string{"Operations"},
		Description: "Page operations over uploaded PDF documents",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "/{name}", Handler: h.Execute, OpenAPI: Spec.Execute},
		},
	}
}

// DocumentRoutes returns the read-only document endpoints.
func (h *Handler) DocumentRoutes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Tags:        []string{"Documents"},
		Description: "Document inspection",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/inspect", Handler: h.Inspect, OpenAPI: Spec.Inspect},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Descriptors())
}

func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	inputs, err := readFiles(r.MultipartForm, "file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	marks, err := readFiles(r.MultipartForm, "watermark")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var watermark *Input
	if len(marks) > 0 {
		watermark = &marks[0]
	}

	params := Params{
		Pages:    r.FormValue("pages"),
		Angle:    r.FormValue("angle"),
		Password: r.FormValue("password"),
	}

	req, err := NewRequest(r.PathValue("name"), params, inputs, watermark)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	result, err := h.sys.Execute(r.Context(), req)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	handlers.RespondFile(w, result.Filename, result.ContentType, result.Data)
}

func (h *Handler) Inspect(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	inputs, err := readFiles(r.MultipartForm, "file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if len(inputs) != 1 {
		h.respondFailure(w, invalid(inspect, "Please upload a PDF file", nil))
		return
	}

	info, err := h.sys.Inspect(r.Context(), inputs[0])
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	tooLargeErr := fmt.Errorf("upload exceeds the %s limit", units.HumanSize(float64(h.maxUploadSize)))

	if r.ContentLength > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, tooLargeErr)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, tooLargeErr)
			return false
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return false
	}

	return true
}

func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	fields := map[string]string{}

	var f *Failure
	if errors.As(err, &f) {
		fields["kind"] = string(f.Kind)
		if f.Operation != "" {
			fields["operation"] = string(f.Operation)
		}
	}

	handlers.RespondErrorWith(w, h.logger, MapHTTPStatus(err), err, fields)
}

func readFiles(form *multipart.Form, field string) ([]Input, error) {
	if form == nil {
		return nil, nil
	}

	headers := form.File[field]
	inputs := make([]Input, 0, len(headers))

	for _, header := range headers {
		data, err := readFile(header)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", header.Filename, err)
		}
		inputs = append(inputs, Input{Name: header.Filename, Data: data})
	}

	return inputs, nil
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
