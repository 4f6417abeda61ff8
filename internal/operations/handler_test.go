package operations_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/pure-pdf/internal/operations"
	"github.com/JaimeStill/pure-pdf/pkg/openapi"
	"github.com/JaimeStill/pure-pdf/pkg/routes"
)

type upload struct {
	field string
	name  string
	data  string
}

func newMux(t *testing.T, sys operations.System, maxUploadSize int64) (*http.ServeMux, *openapi.Spec) {
	t.Helper()

	h := operations.NewHandler(sys, testLogger(), maxUploadSize)
	mux := http.NewServeMux()
	spec := openapi.NewSpec("Test API", "1.0.0")
	routes.Register(mux, "/api", spec, h.Routes(), h.DocumentRoutes())
	return mux, spec
}

func multipartRequest(t *testing.T, target string, uploads []upload, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, u := range uploads {
		fw, err := mw.CreateFormFile(u.field, u.name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(u.data))
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, body io.Reader) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return out
}

func TestHandler_List(t *testing.T) {
	mux, _ := newMux(t, newService(), 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/operations", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var list []operations.Descriptor
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 8 {
		t.Errorf("len = %d, want 8", len(list))
	}
	if list[0].Name != operations.Merge || list[0].MinInputs != 2 {
		t.Errorf("first = %+v, want merge with two inputs", list[0])
	}
}

func TestHandler_Execute(t *testing.T) {
	mux, _ := newMux(t, newService(), 1<<20)

	req := multipartRequest(t, "/operations/reorder",
		[]upload{{"file", "in.pdf", "pages:3"}},
		map[string]string{"pages": "3,1,2"},
	)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != "in.pdf:3 in.pdf:1 in.pdf:2" {
		t.Errorf("body = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=reordered.pdf" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != operations.ContentTypePDF {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestHandler_Execute_FormFields(t *testing.T) {
	mux, _ := newMux(t, newService(), 1<<20)

	tests := []struct {
		name    string
		target  string
		uploads []upload
		fields  map[string]string
		want    string
	}{
		{
			name:   "merge keeps upload order",
			target: "/operations/merge",
			uploads: []upload{
				{"file", "b.pdf", "pages:1"},
				{"file", "a.pdf", "pages:2"},
			},
			want: "b.pdf:1 a.pdf:1 a.pdf:2",
		},
		{
			name:    "rotate without angle turns 90",
			target:  "/operations/rotate",
			uploads: []upload{{"file", "in.pdf", "pages:2"}},
			fields:  map[string]string{"pages": "2"},
			want:    "in.pdf:1 in.pdf:2@90",
		},
		{
			name:   "watermark field",
			target: "/operations/watermark",
			uploads: []upload{
				{"file", "in.pdf", "pages:2"},
				{"watermark", "mark.pdf", "pages:1"},
			},
			want: "in.pdf:1+mark.pdf:1 in.pdf:2+mark.pdf:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, multipartRequest(t, tt.target, tt.uploads, tt.fields))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			if got := w.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandler_Execute_Failures(t *testing.T) {
	tests := []struct {
		name       string
		converter  fakeConverter
		target     string
		uploads    []upload
		fields     map[string]string
		wantStatus int
		wantKind   string
		wantError  string
	}{
		{
			name:       "out of range",
			target:     "/operations/delete",
			uploads:    []upload{{"file", "in.pdf", "pages:2"}},
			fields:     map[string]string{"pages": "9"},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
			wantError:  "Page 9 is out of range (1-2)",
		},
		{
			name:       "malformed pages",
			target:     "/operations/extract",
			uploads:    []upload{{"file", "in.pdf", "pages:2"}},
			fields:     map[string]string{"pages": "one"},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
			wantError:  "Invalid page numbers. Please use comma-separated numbers (e.g., 1,3,5)",
		},
		{
			name:       "oversized range",
			target:     "/operations/extract",
			uploads:    []upload{{"file", "in.pdf", "pages:2"}},
			fields:     map[string]string{"pages": "0-9223372036854775807"},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
			wantError:  "Invalid page numbers. Please use comma-separated numbers (e.g., 1,3,5)",
		},
		{
			name:       "unknown operation",
			target:     "/operations/compress",
			uploads:    []upload{{"file", "in.pdf", "pages:2"}},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
		},
		{
			name:       "unparseable input",
			target:     "/operations/protect",
			uploads:    []upload{{"file", "in.pdf", "garbage"}},
			fields:     map[string]string{"password": "hunter22"},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "parse",
			wantError:  "Error protecting PDF: not a PDF",
		},
		{
			name:       "conversion failure",
			converter:  fakeConverter{err: errors.New("no text layer")},
			target:     "/operations/convert",
			uploads:    []upload{{"file", "in.pdf", "pages:1"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "conversion",
			wantError:  "Error converting to Word: no text layer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := operations.New(fakeEngine{}, tt.converter, testLogger())
			mux, _ := newMux(t, sys, 1<<20)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, multipartRequest(t, tt.target, tt.uploads, tt.fields))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			body := decodeError(t, w.Body)
			if body["kind"] != tt.wantKind {
				t.Errorf("kind = %q, want %q", body["kind"], tt.wantKind)
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestHandler_Execute_UploadTooLarge(t *testing.T) {
	mux, _ := newMux(t, newService(), 256)

	req := multipartRequest(t, "/operations/convert",
		[]upload{{"file", "big.pdf", string(bytes.Repeat([]byte("x"), 4096))}},
		nil,
	)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

func TestHandler_Inspect(t *testing.T) {
	mux, _ := newMux(t, newService(), 1<<20)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, multipartRequest(t, "/documents/inspect", []upload{{"file", "in.pdf", "pages:4"}}, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var info operations.Info
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.PageCount != 4 || info.Name != "in.pdf" {
		t.Errorf("info = %+v", info)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, multipartRequest(t, "/documents/inspect", nil, nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d, want 400", w.Code)
	}
}

func TestHandler_Spec(t *testing.T) {
	_, spec := newMux(t, newService(), 1<<20)

	for _, path := range []string{"/api/operations", "/api/operations/{name}", "/api/documents/inspect"} {
		if spec.Paths[path] == nil {
			t.Errorf("spec missing path %s", path)
		}
	}

	if spec.Paths["/api/operations/{name}"].Post == nil {
		t.Error("execute should be documented as POST")
	}
	if spec.Components.Schemas["Operation"] == nil {
		t.Error("Operation schema not registered")
	}
}
