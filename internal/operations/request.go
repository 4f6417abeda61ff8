package operations

import (
	"strings"

	"github.com/JaimeStill/pure-pdf/internal/document"
)

// Input is one uploaded document.
type Input struct {
	Name string
	Data []byte
}

// Result is a successful operation's output.
type Result struct {
	Operation   Name   `json:"operation"`
	Data        []byte `json:"-"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Pages       int    `json:"pages,omitempty"`
}

// Info describes a parsed document.
type Info struct {
	Name      string `json:"name,omitempty"`
	PageCount int    `json:"page_count"`
}

// Request names an operation and carries everything it needs. Merge reads
// every entry of Inputs; the other operations read exactly one.
type Request struct {
	Operation Name
	Inputs    []Input
	Watermark *Input
	Pages     document.Selection
	Angle     document.Angle
	Password  string
}

// Params holds the textual parameters collected by a form or command line.
type Params struct {
	Pages    string
	Angle    string
	Password string
}

// NewRequest builds a Request from textual parameters. Only the parameters
// the named operation uses are parsed.
func NewRequest(op string, p Params, inputs []Input, watermark *Input) (Request, error) {
	name, err := ParseName(op)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Operation: name,
		Inputs:    inputs,
		Watermark: watermark,
		Password:  p.Password,
	}

	switch name {
	case Delete, Reorder, Extract, Rotate:
		if strings.TrimSpace(p.Pages) == "" {
			return Request{}, invalid(name, name.pagesHint(), document.ErrInvalidSelection)
		}
		sel, err := document.ParseSelection(p.Pages)
		if err != nil {
			return Request{}, invalid(name, name.pagesHint(), err)
		}
		req.Pages = sel
	}

	if name == Rotate {
		if strings.TrimSpace(p.Angle) == "" {
			p.Angle = "90"
		}
		angle, err := document.ParseAngle(p.Angle)
		if err != nil {
			return Request{}, invalid(name, "Rotation angle must be 90, 180, or 270", err)
		}
		req.Angle = angle
	}

	return req, nil
}
