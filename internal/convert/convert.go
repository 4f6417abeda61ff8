// Package convert turns PDF documents into DOCX word-processing documents.
// Text is extracted page by page with tabula, grouped into lines and
// paragraphs by position, and written out with one page break per source page.
// Layout beyond reading order, font size, and weight is not preserved.
package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pure-pdf/internal/staging"
	"github.com/tsawler/tabula/reader"
)

// Converter converts PDF bytes to DOCX bytes.
type Converter struct {
	staging staging.System
	logger  *slog.Logger
}

// New creates a converter. Input is staged through stage because the
// extractor reads from disk.
func New(stage staging.System, logger *slog.Logger) *Converter {
	return &Converter{
		staging: stage,
		logger:  logger.With("system", "convert"),
	}
}

// Convert extracts the text of every page of data and returns it as a DOCX
// package. It makes a single attempt.
func (c *Converter) Convert(ctx context.Context, data []byte) ([]byte, error) {
	pages, err := c.Extract(ctx, data)
	if err != nil {
		return nil, err
	}

	out, err := writeDOCX(pages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	c.logger.Debug("converted", "pages", len(pages), "bytes", len(out))
	return out, nil
}

// Extract returns the text layout of every page of data.
func (c *Converter) Extract(ctx context.Context, data []byte) ([]Page, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrConversion)
	}

	area, err := c.staging.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStaging, err)
	}
	defer area.Release()

	path, err := area.Write("input.pdf", data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStaging, err)
	}

	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrConversion, err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("%w: page count: %v", ErrConversion, err)
	}

	pages := make([]Page, count)
	for i := range count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := r.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrConversion, i+1, err)
		}

		fragments, err := r.ExtractTextFragments(page)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d text: %v", ErrConversion, i+1, err)
		}

		pages[i] = layout(fragments)
	}

	return pages, nil
}
