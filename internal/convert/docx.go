package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	// Letter size in twentieths of a point.
	pageWidthTwips  = 12240
	pageHeightTwips = 15840
	marginTwips     = 1440
)

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/>` +
	`</w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="160"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`</w:styles>`

type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNS   string   `xml:"xmlns:w,attr"`
	Body    bodyXML  `xml:"w:body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"w:p"`
	Section    sectionXML     `xml:"w:sectPr"`
}

type paragraphXML struct {
	Runs []runXML `xml:"w:r"`
}

type runXML struct {
	Props *runPropsXML `xml:"w:rPr,omitempty"`
	Text  *textXML     `xml:"w:t,omitempty"`
	Break *breakXML    `xml:"w:br,omitempty"`
}

type runPropsXML struct {
	Bold *struct{} `xml:"w:b,omitempty"`
	Size *valXML   `xml:"w:sz,omitempty"`
}

type textXML struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type breakXML struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type valXML struct {
	Val string `xml:"w:val,attr"`
}

type sectionXML struct {
	Size   pageSizeXML   `xml:"w:pgSz"`
	Margin pageMarginXML `xml:"w:pgMar"`
}

type pageSizeXML struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pageMarginXML struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

// buildDocument lays pages out one after another with a page break between
// each. Lines within a paragraph are separated by line breaks.
func buildDocument(pages []Page) documentXML {
	var paras []paragraphXML

	for i, page := range pages {
		if i > 0 {
			paras = append(paras, paragraphXML{
				Runs: []runXML{{Break: &breakXML{Type: "page"}}},
			})
		}

		for _, p := range page.Paragraphs {
			runs := make([]runXML, len(p.Lines))
			for j, line := range p.Lines {
				runs[j] = runXML{
					Props: runProps(line),
					Text:  &textXML{Space: "preserve", Value: line.Text},
				}
				if j < len(p.Lines)-1 {
					runs[j].Break = &breakXML{}
				}
			}
			paras = append(paras, paragraphXML{Runs: runs})
		}
	}

	if len(paras) == 0 {
		paras = append(paras, paragraphXML{})
	}

	return documentXML{
		XMLNS: nsW,
		Body: bodyXML{
			Paragraphs: paras,
			Section: sectionXML{
				Size:   pageSizeXML{W: pageWidthTwips, H: pageHeightTwips},
				Margin: pageMarginXML{Top: marginTwips, Right: marginTwips, Bottom: marginTwips, Left: marginTwips},
			},
		},
	}
}

// runProps carries the source font size (in half-points) and weight.
func runProps(line Line) *runPropsXML {
	props := &runPropsXML{}
	if line.Bold {
		props.Bold = &struct{}{}
	}
	if line.FontSize > 0 {
		halfPoints := int(math.Round(line.FontSize * 2))
		props.Size = &valXML{Val: fmt.Sprint(halfPoints)}
	}
	if props.Bold == nil && props.Size == nil {
		return nil
	}
	return props
}

func coreXML() ([]byte, error) {
	type core struct {
		XMLName xml.Name `xml:"cp:coreProperties"`
		CP      string   `xml:"xmlns:cp,attr"`
		DC      string   `xml:"xmlns:dc,attr"`
		Creator string   `xml:"dc:creator"`
	}

	body, err := xml.Marshal(core{
		CP:      "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		DC:      "http://purl.org/dc/elements/1.1/",
		Creator: "pure-pdf",
	})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// writeDOCX packages pages as a WordprocessingML document.
func writeDOCX(pages []Page) ([]byte, error) {
	doc, err := xml.Marshal(buildDocument(pages))
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	core, err := coreXML()
	if err != nil {
		return nil, fmt.Errorf("marshal core properties: %w", err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"docProps/core.xml", core},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", append([]byte(xml.Header), doc...)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	return buf.Bytes(), nil
}
