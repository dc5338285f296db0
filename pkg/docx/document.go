// Package docx writes Word documents in the OOXML wordprocessing format.
// It covers the subset a PDF conversion needs: styled paragraph runs,
// grid tables with horizontally merged cells, and page margins.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
)

// Paragraph alignment values for the w:jc element.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
	AlignBoth   = "both"
)

// Page geometry in twips. Letter size with half-inch margins.
const (
	pageWidthTwips  = 12240
	pageHeightTwips = 15840
	defaultMargin   = 720
)

// Document is an in-memory Word document. Blocks keep insertion order, so
// paragraphs and tables interleave the way they were added.
type Document struct {
	blocks []any // *Paragraph or *Table
	margin int
}

// NewDocument creates an empty document with half-inch margins.
func NewDocument() *Document {
	return &Document{margin: defaultMargin}
}

// SetMargins sets all four page margins, in twips.
func (d *Document) SetMargins(twips int) {
	d.margin = twips
}

// AddParagraph appends an empty paragraph and returns it.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.blocks = append(d.blocks, p)
	return p
}

// AddTable appends a table with the given number of rows and columns.
func (d *Document) AddTable(rows, cols int) *Table {
	t := newTable(rows, cols)
	d.blocks = append(d.blocks, t)
	return t
}

// Paragraph is one block of text made of styled runs.
type Paragraph struct {
	alignment string
	style     string
	runs      []*Run
}

// SetAlignment sets the paragraph justification to one of the Align values.
func (p *Paragraph) SetAlignment(alignment string) {
	p.alignment = alignment
}

// SetStyle sets the paragraph style ID.
func (p *Paragraph) SetStyle(style string) {
	p.style = style
}

// AddRun appends a run with the given text and returns it for styling.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{text: text}
	p.runs = append(p.runs, r)
	return r
}

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var s string
	for _, r := range p.runs {
		s += r.text
	}
	return s
}

// Run is a span of text with uniform character formatting.
type Run struct {
	text string
	bold bool
	font string
	size float64 // points; 0 means inherit
}

// SetBold toggles bold.
func (r *Run) SetBold(bold bool) *Run {
	r.bold = bold
	return r
}

// SetFont sets the run font for the ascii, hAnsi and cs ranges.
func (r *Run) SetFont(name string) *Run {
	r.font = name
	return r
}

// SetSize sets the font size in points.
func (r *Run) SetSize(points float64) *Run {
	r.size = points
	return r
}

// SaveAs writes the document as a .docx file at the given path.
func (d *Document) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	zw := zip.NewWriter(f)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
	}

	documentPart, err := d.marshalDocument()
	if err != nil {
		zw.Close()
		f.Close()
		return err
	}
	parts = append(parts, struct {
		name    string
		content []byte
	}{"word/document.xml", documentPart})

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("failed to create zip entry %s: %w", part.name, err)
		}
		if _, err := w.Write(part.content); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("failed to write zip entry %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return f.Close()
}

// marshalDocument renders word/document.xml.
func (d *Document) marshalDocument() ([]byte, error) {
	body := xmlBody{
		SectPr: xmlSectPr{
			PgSz: xmlPgSz{W: pageWidthTwips, H: pageHeightTwips},
			PgMar: xmlPgMar{
				Top:    d.margin,
				Right:  d.margin,
				Bottom: d.margin,
				Left:   d.margin,
				Header: 720,
				Footer: 720,
				Gutter: 0,
			},
		},
	}

	for _, block := range d.blocks {
		switch b := block.(type) {
		case *Paragraph:
			body.Blocks = append(body.Blocks, b.toXML())
		case *Table:
			body.Blocks = append(body.Blocks, b.toXML())
		}
	}

	doc := xmlDocument{XmlnsW: nsW, Body: body}

	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

func (p *Paragraph) toXML() xmlParagraph {
	xp := xmlParagraph{}

	props := &xmlParaProps{}
	if p.style != "" {
		props.Style = &xmlVal{Val: p.style}
	}
	if p.alignment != "" {
		props.Justification = &xmlVal{Val: p.alignment}
	}
	if props.Style != nil || props.Justification != nil {
		xp.Props = props
	}

	for _, r := range p.runs {
		xp.Runs = append(xp.Runs, r.toXML())
	}

	return xp
}

func (r *Run) toXML() xmlRun {
	xr := xmlRun{Text: xmlText{Space: "preserve", Value: r.text}}

	props := &xmlRunProps{}
	if r.font != "" {
		props.Fonts = &xmlFonts{ASCII: r.font, HAnsi: r.font, CS: r.font}
	}
	if r.bold {
		props.Bold = &xmlEmpty{}
	}
	if r.size > 0 {
		halfPoints := strconv.Itoa(int(r.size * 2))
		props.Size = &xmlVal{Val: halfPoints}
		props.SizeCs = &xmlVal{Val: halfPoints}
	}
	if props.Fonts != nil || props.Bold != nil || props.Size != nil {
		xr.Props = props
	}

	return xr
}
