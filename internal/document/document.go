// Package document models a PDF as an ordered sequence of page references.
// Transforms never mutate their receiver; each returns a new Document that
// shares Source values with its input. Page content is owned by the engine
// that produced the Source and is never inspected here.
package document

// Source is a single parsed input. Data holds the bytes the engine read the
// source from and Pages its page count.
type Source struct {
	Name  string
	Data  []byte
	Pages int
}

// Page references one page of a Source. Index is 0-based within the source.
// Rotation is the clockwise angle added on top of the source page's own
// rotation, normalized to [0, 360). Overlay, when set, is composited on top
// of the page content.
type Page struct {
	Source   *Source
	Index    int
	Rotation int
	Overlay  *Page
}

// Document is an ordered sequence of pages.
type Document struct {
	Pages []Page
}

// New returns a Document holding every page of src in order.
func New(src *Source) Document {
	pages := make([]Page, src.Pages)
	for i := range pages {
		pages[i] = Page{Source: src, Index: i}
	}
	return Document{Pages: pages}
}

// Len returns the page count.
func (d Document) Len() int {
	return len(d.Pages)
}

// Page returns the page at the 1-based position n.
func (d Document) Page(n int) (Page, error) {
	if n < 1 || n > len(d.Pages) {
		return Page{}, outOfRange(n, len(d.Pages))
	}
	return d.Pages[n-1], nil
}

// Concat joins documents in argument order, keeping each document's page order.
func Concat(docs ...Document) Document {
	total := 0
	for _, d := range docs {
		total += len(d.Pages)
	}

	pages := make([]Page, 0, total)
	for _, d := range docs {
		pages = append(pages, d.Pages...)
	}
	return Document{Pages: pages}
}

// Delete returns the pages not named by sel, in their original order.
// An empty selection returns an equal document.
func (d Document) Delete(sel Selection) (Document, error) {
	if err := sel.Validate(len(d.Pages)); err != nil {
		return Document{}, err
	}

	remove := sel.set()
	pages := make([]Page, 0, len(d.Pages))
	for i, p := range d.Pages {
		if !remove[i+1] {
			pages = append(pages, p)
		}
	}

	if len(pages) == 0 {
		return Document{}, ErrEmptyDocument
	}
	return Document{Pages: pages}, nil
}

// Select returns the pages named by sel in selection order. Duplicates
// repeat a page and omitted pages are dropped, so the result has len(sel)
// pages.
func (d Document) Select(sel Selection) (Document, error) {
	if err := sel.Validate(len(d.Pages)); err != nil {
		return Document{}, err
	}
	if len(sel) == 0 {
		return Document{}, ErrEmptyDocument
	}

	pages := make([]Page, len(sel))
	for i, n := range sel {
		pages[i] = d.Pages[n-1]
	}
	return Document{Pages: pages}, nil
}

// Rotate adds angle to every page whose position is in sel. Membership is
// tested once per page, so a position listed twice is rotated once.
func (d Document) Rotate(sel Selection, angle Angle) (Document, error) {
	if err := angle.Validate(); err != nil {
		return Document{}, err
	}
	if err := sel.Validate(len(d.Pages)); err != nil {
		return Document{}, err
	}

	rotate := sel.set()
	pages := make([]Page, len(d.Pages))
	for i, p := range d.Pages {
		if rotate[i+1] {
			p.Rotation = (p.Rotation + int(angle)) % 360
		}
		pages[i] = p
	}
	return Document{Pages: pages}, nil
}

// Stamp returns a document with overlay composited on top of every page.
func (d Document) Stamp(overlay Page) Document {
	pages := make([]Page, len(d.Pages))
	for i, p := range d.Pages {
		o := overlay
		p.Overlay = &o
		pages[i] = p
	}
	return Document{Pages: pages}
}

// Run is a maximal stretch of consecutive pages that come from the same
// source. Pages lists the 1-based source page numbers in output order.
type Run struct {
	Source *Source
	Pages  []int
}

// Identity reports whether the run reproduces its source unchanged.
func (r Run) Identity() bool {
	if len(r.Pages) != r.Source.Pages {
		return false
	}
	for i, n := range r.Pages {
		if n != i+1 {
			return false
		}
	}
	return true
}

// Runs splits the document into runs of same-source pages.
func (d Document) Runs() []Run {
	var runs []Run
	for _, p := range d.Pages {
		if len(runs) > 0 && runs[len(runs)-1].Source == p.Source {
			last := &runs[len(runs)-1]
			last.Pages = append(last.Pages, p.Index+1)
			continue
		}
		runs = append(runs, Run{Source: p.Source, Pages: []int{p.Index + 1}})
	}
	return runs
}
