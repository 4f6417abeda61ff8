// Package operations implements the named page operations offered to users.
// Every operation validates its parameters, parses its inputs, applies a pure
// document transform, and serializes the result. Failures are returned as
// *Failure values classified by Kind; no operation returns partial output.
package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/JaimeStill/pure-pdf/internal/document"
	"github.com/JaimeStill/pure-pdf/internal/staging"
)

const minPasswordLength = 4

// inspect names the read-only Inspect call in failures and logs.
const inspect Name = "inspect"

// Engine reads and writes PDF documents.
type Engine interface {
	Parse(ctx context.Context, name string, data []byte) (document.Document, error)
	Serialize(ctx context.Context, doc document.Document) ([]byte, error)
	Encrypt(ctx context.Context, doc document.Document, password string) ([]byte, error)
}

// Converter turns PDF bytes into DOCX bytes.
type Converter interface {
	Convert(ctx context.Context, data []byte) ([]byte, error)
}

// System is the operation surface consumed by the HTTP handler and the CLI.
type System interface {
	Execute(ctx context.Context, req Request) (*Result, error)
	Inspect(ctx context.Context, in Input) (*Info, error)

	Merge(ctx context.Context, inputs []Input) (*Result, error)
	DeletePages(ctx context.Context, in Input, sel document.Selection) (*Result, error)
	ReorderPages(ctx context.Context, in Input, sel document.Selection) (*Result, error)
	ExtractPages(ctx context.Context, in Input, sel document.Selection) (*Result, error)
	RotatePages(ctx context.Context, in Input, sel document.Selection, angle document.Angle) (*Result, error)
	ProtectPDF(ctx context.Context, in Input, password string) (*Result, error)
	AddWatermark(ctx context.Context, in Input, mark Input) (*Result, error)
	ConvertToWord(ctx context.Context, in Input) (*Result, error)
}

// Service implements System over a PDF engine and a converter.
type Service struct {
	engine    Engine
	converter Converter
	logger    *slog.Logger
}

// New creates an operation service.
func New(engine Engine, converter Converter, logger *slog.Logger) *Service {
	return &Service{
		engine:    engine,
		converter: converter,
		logger:    logger.With("system", "operations"),
	}
}

// Execute dispatches req to the operation it names.
func (s *Service) Execute(ctx context.Context, req Request) (*Result, error) {
	op := req.Operation
	if _, ok := op.Describe(); !ok {
		return nil, invalid(op, fmt.Sprintf("Unknown operation %q", op), nil)
	}

	if op == Merge {
		return s.Merge(ctx, req.Inputs)
	}

	in, err := single(req)
	if err != nil {
		return nil, err
	}

	switch op {
	case Delete:
		return s.DeletePages(ctx, in, req.Pages)
	case Reorder:
		return s.ReorderPages(ctx, in, req.Pages)
	case Extract:
		return s.ExtractPages(ctx, in, req.Pages)
	case Rotate:
		return s.RotatePages(ctx, in, req.Pages, req.Angle)
	case Protect:
		return s.ProtectPDF(ctx, in, req.Password)
	case Watermark:
		if req.Watermark == nil {
			return nil, invalid(op, "Please upload a watermark PDF", nil)
		}
		return s.AddWatermark(ctx, in, *req.Watermark)
	default:
		return s.ConvertToWord(ctx, in)
	}
}

// Inspect parses in and reports its page count.
func (s *Service) Inspect(ctx context.Context, in Input) (info *Info, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = recovered(inspect, KindParse, r)
		}
		if err != nil {
			s.logger.Warn("inspect failed", "name", in.Name, "error", err)
		}
	}()

	doc, err := s.parse(ctx, inspect, in)
	if err != nil {
		return nil, err
	}

	return &Info{Name: in.Name, PageCount: doc.Len()}, nil
}

// Merge concatenates every input in order.
func (s *Service) Merge(ctx context.Context, inputs []Input) (res *Result, err error) {
	defer s.finish(Merge, &res, &err)

	if len(inputs) < 2 {
		return nil, invalid(Merge, "Please upload at least 2 PDF files to merge", nil)
	}

	docs := make([]document.Document, len(inputs))
	for i, in := range inputs {
		if docs[i], err = s.parse(ctx, Merge, in); err != nil {
			return nil, err
		}
	}

	return s.serialize(ctx, Merge, document.Concat(docs...))
}

// DeletePages removes the pages named by sel and keeps the rest in order.
func (s *Service) DeletePages(ctx context.Context, in Input, sel document.Selection) (res *Result, err error) {
	defer s.finish(Delete, &res, &err)

	doc, err := s.parse(ctx, Delete, in)
	if err != nil {
		return nil, err
	}

	out, err := doc.Delete(sel)
	if err != nil {
		return nil, rejected(Delete, err)
	}

	return s.serialize(ctx, Delete, out)
}

// ReorderPages emits the pages named by sel in selection order.
func (s *Service) ReorderPages(ctx context.Context, in Input, sel document.Selection) (res *Result, err error) {
	defer s.finish(Reorder, &res, &err)
	return s.selectPages(ctx, Reorder, in, sel)
}

// ExtractPages keeps exactly the pages named by sel in selection order.
func (s *Service) ExtractPages(ctx context.Context, in Input, sel document.Selection) (res *Result, err error) {
	defer s.finish(Extract, &res, &err)
	return s.selectPages(ctx, Extract, in, sel)
}

// RotatePages rotates every page named by sel clockwise by angle.
func (s *Service) RotatePages(ctx context.Context, in Input, sel document.Selection, angle document.Angle) (res *Result, err error) {
	defer s.finish(Rotate, &res, &err)

	if err := angle.Validate(); err != nil {
		return nil, rejected(Rotate, err)
	}

	doc, err := s.parse(ctx, Rotate, in)
	if err != nil {
		return nil, err
	}

	out, err := doc.Rotate(sel, angle)
	if err != nil {
		return nil, rejected(Rotate, err)
	}

	return s.serialize(ctx, Rotate, out)
}

// ProtectPDF encrypts in with password as both the user and owner password.
func (s *Service) ProtectPDF(ctx context.Context, in Input, password string) (res *Result, err error) {
	defer s.finish(Protect, &res, &err)

	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, invalid(Protect, "Password must be at least 4 characters", nil)
	}

	doc, err := s.parse(ctx, Protect, in)
	if err != nil {
		return nil, err
	}

	data, err := s.engine.Encrypt(ctx, doc, password)
	if err != nil {
		return nil, fail(Protect, classify(err, KindParse), err)
	}

	return Protect.result(data, doc.Len()), nil
}

// AddWatermark composites the first page of mark onto every page of in.
func (s *Service) AddWatermark(ctx context.Context, in Input, mark Input) (res *Result, err error) {
	defer s.finish(Watermark, &res, &err)

	doc, err := s.parse(ctx, Watermark, in)
	if err != nil {
		return nil, err
	}

	overlay, err := s.parse(ctx, Watermark, mark)
	if err != nil {
		return nil, err
	}

	page, err := overlay.Page(1)
	if err != nil {
		return nil, invalid(Watermark, "The watermark PDF has no pages", err)
	}

	return s.serialize(ctx, Watermark, doc.Stamp(page))
}

// ConvertToWord converts in to a DOCX document.
func (s *Service) ConvertToWord(ctx context.Context, in Input) (res *Result, err error) {
	defer s.finish(Convert, &res, &err)

	data, err := s.converter.Convert(ctx, in.Data)
	if err != nil {
		return nil, fail(Convert, classify(err, KindConversion), err)
	}

	return Convert.result(data, 0), nil
}

func (s *Service) selectPages(ctx context.Context, op Name, in Input, sel document.Selection) (*Result, error) {
	doc, err := s.parse(ctx, op, in)
	if err != nil {
		return nil, err
	}

	out, err := doc.Select(sel)
	if err != nil {
		return nil, rejected(op, err)
	}

	return s.serialize(ctx, op, out)
}

func (s *Service) parse(ctx context.Context, op Name, in Input) (document.Document, error) {
	doc, err := s.engine.Parse(ctx, in.Name, in.Data)
	if err != nil {
		return document.Document{}, fail(op, classify(err, KindParse), err)
	}
	return doc, nil
}

func (s *Service) serialize(ctx context.Context, op Name, doc document.Document) (*Result, error) {
	data, err := s.engine.Serialize(ctx, doc)
	if err != nil {
		return nil, fail(op, classify(err, KindParse), err)
	}
	return op.result(data, doc.Len()), nil
}

// finish runs deferred in every operation. It converts an engine panic into
// a failure and logs the outcome.
func (s *Service) finish(op Name, res **Result, err *error) {
	if r := recover(); r != nil {
		*res = nil
		*err = recovered(op, engineKind(op), r)
		s.logger.Error("engine panic", "operation", op, "panic", r)
	}

	if *err == nil {
		s.logger.Info("operation complete",
			"operation", op,
			"pages", (*res).Pages,
			"bytes", len((*res).Data),
		)
		return
	}

	var f *Failure
	if !errors.As(*err, &f) {
		f = fail(op, KindResource, *err)
		*err = f
	}
	s.logger.Warn("operation failed", "operation", op, "kind", f.Kind, "error", f.Message)
}

func single(req Request) (Input, error) {
	switch len(req.Inputs) {
	case 0:
		return Input{}, invalid(req.Operation, "Please upload a PDF file", nil)
	case 1:
		return req.Inputs[0], nil
	default:
		return Input{}, invalid(req.Operation,
			fmt.Sprintf("The %s operation takes exactly one PDF file", req.Operation), nil)
	}
}

// rejected turns a document transform error into a validation failure.
func rejected(op Name, err error) *Failure {
	var rangeErr *document.RangeError

	switch {
	case errors.As(err, &rangeErr):
		return invalid(op, rangeErr.Error(), err)
	case errors.Is(err, document.ErrEmptyDocument) && op == Delete:
		return invalid(op, "Cannot delete every page of the document", err)
	case errors.Is(err, document.ErrEmptyDocument):
		return invalid(op, "No pages selected", err)
	case errors.Is(err, document.ErrInvalidAngle):
		return invalid(op, "Rotation angle must be 90, 180, or 270", err)
	default:
		return invalid(op, err.Error(), err)
	}
}

// classify reports KindResource for cancellation and staging failures and
// fallback otherwise.
func classify(err error, fallback Kind) Kind {
	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, staging.ErrUnavailable):
		return KindResource
	default:
		return fallback
	}
}

func engineKind(op Name) Kind {
	if op == Convert {
		return KindConversion
	}
	return KindParse
}

func recovered(op Name, kind Kind, r any) *Failure {
	return fail(op, kind, fmt.Errorf("engine failure: %v", r))
}
