package convert

import (
	"sort"
	"strings"

	"github.com/tsawler/tabula/text"
)

// Line is a run of fragments sharing a baseline.
type Line struct {
	Text     string
	FontSize float64
	Bold     bool
}

// Paragraph is a group of lines separated from its neighbours by a
// vertical gap wider than one and a half line heights.
type Paragraph struct {
	Lines []Line
}

// Page is the text layout of one source page.
type Page struct {
	Paragraphs []Paragraph
}

// layout orders fragments top to bottom and left to right, then groups them
// into lines and paragraphs. Coordinates are PDF user space, so higher Y is
// nearer the top of the page.
func layout(fragments []text.TextFragment) Page {
	if len(fragments) == 0 {
		return Page{}
	}

	sorted := make([]text.TextFragment, len(fragments))
	copy(sorted, fragments)

	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Y - sorted[j].Y
		if abs(yDiff) > sorted[i].Height*0.5 {
			return yDiff > 0
		}
		return sorted[i].X < sorted[j].X
	})

	var (
		page     Page
		para     Paragraph
		line     strings.Builder
		current  Line
		lastY    float64
		lastEndX float64
	)

	flushLine := func() {
		current.Text = strings.TrimSpace(line.String())
		if current.Text != "" {
			para.Lines = append(para.Lines, current)
		}
		line.Reset()
		current = Line{}
	}

	flushParagraph := func() {
		flushLine()
		if len(para.Lines) > 0 {
			page.Paragraphs = append(page.Paragraphs, para)
		}
		para = Paragraph{}
	}

	for i, frag := range sorted {
		if i > 0 {
			yDiff := abs(frag.Y - lastY)
			switch {
			case yDiff > frag.Height*1.5:
				flushParagraph()
			case yDiff > frag.Height*0.5:
				flushLine()
			case frag.X-lastEndX > frag.FontSize*0.3:
				line.WriteByte(' ')
			}
		}

		if line.Len() == 0 {
			current.FontSize = frag.FontSize
			current.Bold = isBold(frag.FontName)
		}
		line.WriteString(frag.Text)

		lastY = frag.Y
		lastEndX = frag.X + frag.Width
	}
	flushParagraph()

	return page
}

func isBold(fontName string) bool {
	name := strings.ToLower(fontName)
	return strings.Contains(name, "bold") || strings.Contains(name, "black") || strings.Contains(name, "heavy")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
