package operations

import (
	"fmt"
	"strings"
)

// Name identifies an operation.
type Name string

const (
	Merge     Name = "merge"
	Delete    Name = "delete"
	Reorder   Name = "reorder"
	Extract   Name = "extract"
	Rotate    Name = "rotate"
	Protect   Name = "protect"
	Watermark Name = "watermark"
	Convert   Name = "convert"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Descriptor describes an operation to callers that list or render them.
type Descriptor struct {
	Name        Name     `json:"name"`
	Summary     string   `json:"summary"`
	Filename    string   `json:"filename"`
	ContentType string   `json:"content_type"`
	MinInputs   int      `json:"min_inputs"`
	Parameters  []string `json:"parameters,omitempty"`

	prefix      string
	pagesFormat string
}

var descriptors = []Descriptor{
	{
		Name:        Merge,
		Summary:     "Combine two or more PDFs into one, in upload order",
		Filename:    "merged.pdf",
		ContentType: ContentTypePDF,
		MinInputs:   2,
		prefix:      "Error merging PDFs: ",
	},
	{
		Name:        Delete,
		Summary:     "Remove the listed pages",
		Filename:    "deleted_pages.pdf",
		ContentType: ContentTypePDF,
		MinInputs:   1,
		Parameters:  []string{"pages"},
		prefix:      "Error deleting pages: ",
		pagesFormat: "1,3,5",
	},
	{
		Name:        Reorder,
		Summary:     "Emit pages in the listed order",
		Filename:    "reordered.pdf",
		ContentType: ContentTypePDF,
		MinInputs:   1,
		Parameters:  []string{"pages"},
		prefix:      "Error reordering pages: ",
		pagesFormat: "3,1,2,4",
	},
	{
		Name:        Extract,
		Summary:     "Keep only the listed pages, in the listed order",
		Filename:    "extracted.pdf",
		ContentType: ContentTypePDF,
		MinInputs:   1,
		Parameters:  []string{"pages"},
		prefix:      "Error extracting pages: ",
		pagesFormat: "1,3,5",
	},
	{
		Name:        Rotate,
		Summary:     "Rotate the listed pages clockwise by 90, 180, or 270 degrees",
		Filename:    "rotated.pdf",
		ContentType: ContentTypePDF,
		MinInputs:   1,
		Parameters:  []string{"pages", "angle"},
		prefix:      "Error rotating pages: ",
		pagesFormat: "1,3,5",
	},
	{
		Name:        Protect,
		Summary:     "Encrypt the document with a password",
		Filename:    "protected.pdf",
		ContentType: ContentTypePDF,
		MinInputs:   1,
		Parameters:  []string{"password"},
		prefix:      "Error protecting PDF: ",
	},
	{
		Name:        Watermark,
		Summary:     "Overlay the first page of a watermark PDF on every page",
		Filename:    "watermarked.pdf",
		ContentType: ContentTypePDF,
		MinInputs:   1,
		Parameters:  []string{"watermark"},
		prefix:      "Error adding watermark: ",
	},
	{
		Name:        Convert,
		Summary:     "Convert the document's text to a Word document",
		Filename:    "converted.docx",
		ContentType: ContentTypeDOCX,
		MinInputs:   1,
		prefix:      "Error converting to Word: ",
	},
}

// Descriptors returns every operation in presentation order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Names returns every operation name in presentation order.
func Names() []Name {
	names := make([]Name, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.Name
	}
	return names
}

// Describe returns the descriptor for n.
func (n Name) Describe() (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Name == n {
			return d, true
		}
	}
	return Descriptor{}, false
}

// ParseName resolves s to an operation name, ignoring case and surrounding space.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := n.Describe(); !ok {
		return "", invalid(n, fmt.Sprintf("Unknown operation %q", s), nil)
	}
	return n, nil
}

func (n Name) prefix() string {
	if n == inspect {
		return "Error reading PDF: "
	}
	if d, ok := n.Describe(); ok {
		return d.prefix
	}
	return "Error: "
}

// pagesHint is the message shown when a page list cannot be parsed.
func (n Name) pagesHint() string {
	d, _ := n.Describe()
	if n == Reorder {
		return fmt.Sprintf("Invalid page order. Please use comma-separated numbers (e.g., %s)", d.pagesFormat)
	}
	return fmt.Sprintf("Invalid page numbers. Please use comma-separated numbers (e.g., %s)", d.pagesFormat)
}

func (n Name) result(data []byte, pages int) *Result {
	d, _ := n.Describe()
	return &Result{
		Operation:   n,
		Data:        data,
		Filename:    d.Filename,
		ContentType: d.ContentType,
		Pages:       pages,
	}
}
