// Package pdf adapts pdfcpu to the document model. Parse reads an input into
// a Source; Serialize writes any Document built from those sources by
// collecting page runs, merging them, applying overlays, and rotating pages.
// Every call builds its own pdfcpu configuration, so an Engine is safe for
// concurrent use.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/JaimeStill/pure-pdf/internal/document"
	"github.com/JaimeStill/pure-pdf/internal/staging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// overlayDesc places the overlay page at its natural size on the page
// origin, fully opaque and unrotated.
const overlayDesc = "scalefactor:1 abs, position:bl, offset:0 0, rotation:0, opacity:1"

var disableConfigDir sync.Once

// Engine reads and writes PDF documents.
type Engine struct {
	cfg     Config
	staging staging.System
	logger  *slog.Logger
}

// New creates an engine. Overlays are staged through stage because pdfcpu
// reads watermark pages from disk.
func New(cfg *Config, stage staging.System, logger *slog.Logger) *Engine {
	disableConfigDir.Do(api.DisableConfigDir)

	return &Engine{
		cfg:     *cfg,
		staging: stage,
		logger:  logger.With("system", "pdf"),
	}
}

// Parse reads data as a PDF and returns a document holding all of its pages.
func (e *Engine) Parse(ctx context.Context, name string, data []byte) (document.Document, error) {
	if err := ctx.Err(); err != nil {
		return document.Document{}, err
	}

	if len(data) == 0 {
		return document.Document{}, fmt.Errorf("%w: %s: empty input", ErrParse, name)
	}

	count, err := api.PageCount(bytes.NewReader(data), e.config())
	if err != nil {
		return document.Document{}, fmt.Errorf("%w: %s: %v", ErrParse, name, err)
	}
	if count == 0 {
		return document.Document{}, fmt.Errorf("%w: %s: %v", ErrParse, name, document.ErrEmptyDocument)
	}

	e.logger.Debug("parsed", "name", name, "pages", count, "bytes", len(data))

	return document.New(&document.Source{
		Name:  name,
		Data:  data,
		Pages: count,
	}), nil
}

// Serialize writes doc as a single PDF.
func (e *Engine) Serialize(ctx context.Context, doc document.Document) ([]byte, error) {
	if doc.Len() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrWrite, document.ErrEmptyDocument)
	}

	data, err := e.assemble(ctx, doc)
	if err != nil {
		return nil, err
	}

	if data, err = e.overlay(ctx, data, doc); err != nil {
		return nil, err
	}

	return e.rotate(ctx, data, doc)
}

// Encrypt serializes doc and encrypts it with AES. The password opens the
// document and also grants owner permissions.
func (e *Engine) Encrypt(ctx context.Context, doc document.Document, password string) ([]byte, error) {
	data, err := e.Serialize(ctx, doc)
	if err != nil {
		return nil, err
	}

	conf := model.NewAESConfiguration(password, password, e.cfg.KeyLength)
	conf.ValidationMode = e.cfg.ValidationMode.model()

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncrypt, err)
	}

	return out.Bytes(), nil
}

func (e *Engine) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = e.cfg.ValidationMode.model()
	return conf
}

// assemble collects each run of same-source pages and merges the results in
// order. A run that reproduces its whole source is passed through untouched.
func (e *Engine) assemble(ctx context.Context, doc document.Document) ([]byte, error) {
	runs := doc.Runs()
	chunks := make([][]byte, 0, len(runs))

	for _, run := range runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if run.Identity() {
			chunks = append(chunks, run.Source.Data)
			continue
		}

		var out bytes.Buffer
		if err := api.Collect(bytes.NewReader(run.Source.Data), &out, selection(run.Pages), e.config()); err != nil {
			return nil, fmt.Errorf("%w: collect pages from %s: %v", ErrWrite, run.Source.Name, err)
		}
		chunks = append(chunks, out.Bytes())
	}

	if len(chunks) == 1 {
		return chunks[0], nil
	}

	readers := make([]io.ReadSeeker, len(chunks))
	for i, c := range chunks {
		readers[i] = bytes.NewReader(c)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, e.config()); err != nil {
		return nil, fmt.Errorf("%w: merge: %v", ErrWrite, err)
	}

	e.logger.Debug("assembled", "runs", len(runs), "pages", doc.Len())
	return out.Bytes(), nil
}

type overlayKey struct {
	source *document.Source
	index  int
}

// overlay stamps every page that carries an overlay. Pages sharing the same
// overlay page are stamped in one pass.
func (e *Engine) overlay(ctx context.Context, data []byte, doc document.Document) ([]byte, error) {
	groups := make(map[overlayKey][]int)
	var order []overlayKey

	for i, p := range doc.Pages {
		if p.Overlay == nil {
			continue
		}
		key := overlayKey{p.Overlay.Source, p.Overlay.Index}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i+1)
	}

	if len(order) == 0 {
		return data, nil
	}

	area, err := e.staging.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStaging, err)
	}
	defer area.Release()

	for n, key := range order {
		path, err := area.Write(fmt.Sprintf("overlay-%d.pdf", n), key.source.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStaging, err)
		}

		wm, err := api.PDFWatermark(path+":"+strconv.Itoa(key.index+1), overlayDesc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("%w: prepare overlay from %s: %v", ErrWrite, key.source.Name, err)
		}

		var out bytes.Buffer
		if err := api.AddWatermarks(bytes.NewReader(data), &out, selection(groups[key]), wm, e.config()); err != nil {
			return nil, fmt.Errorf("%w: apply overlay: %v", ErrWrite, err)
		}
		data = out.Bytes()
	}

	return data, nil
}

// rotate applies each page's rotation delta, one pass per distinct angle.
func (e *Engine) rotate(ctx context.Context, data []byte, doc document.Document) ([]byte, error) {
	groups := make(map[int][]int)
	for i, p := range doc.Pages {
		if p.Rotation != 0 {
			groups[p.Rotation] = append(groups[p.Rotation], i+1)
		}
	}

	angles := make([]int, 0, len(groups))
	for a := range groups {
		angles = append(angles, a)
	}
	slices.Sort(angles)

	for _, angle := range angles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var out bytes.Buffer
		if err := api.Rotate(bytes.NewReader(data), &out, angle, selection(groups[angle]), e.config()); err != nil {
			return nil, fmt.Errorf("%w: rotate %d: %v", ErrWrite, angle, err)
		}
		data = out.Bytes()
	}

	return data, nil
}

func selection(pages []int) []string {
	sel := make([]string, len(pages))
	for i, n := range pages {
		sel[i] = strconv.Itoa(n)
	}
	return sel
}
