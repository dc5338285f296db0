package pdf

import (
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// dslipakDocument implements Document using dslipak/pdf, the last-resort
// backend. It tolerates some files the others reject but exposes neither
// graphics nor a MediaBox, so pages assume US Letter dimensions.
type dslipakDocument struct {
	reader   *gopdf.Reader
	filepath string
	pages    []Page
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library.
func OpenWithDslipak(filepath string) (Document, error) {
	r, err := gopdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	doc := &dslipakDocument{
		reader:   r,
		filepath: filepath,
	}

	pageCount := r.NumPage()
	doc.pages = make([]Page, pageCount)
	for i := 1; i <= pageCount; i++ {
		page, err := newDslipakPage(r, i)
		if err != nil {
			return nil, fmt.Errorf("failed to build page %d: %w", i, err)
		}
		doc.pages[i-1] = page
	}

	return doc, nil
}

// GetPage returns the page at the given 0-based index.
func (d *dslipakDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages.
func (d *dslipakDocument) PageCount() int {
	return len(d.pages)
}

// Close releases the document's resources.
func (d *dslipakDocument) Close() error {
	d.reader = nil
	d.pages = nil
	return nil
}

// dslipakPage implements Page using dslipak/pdf.
type dslipakPage struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
}

func newDslipakPage(reader *gopdf.Reader, pageNumber int) (Page, error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	p := &dslipakPage{
		pageNumber: pageNumber,
		width:      612,
		height:     792,
	}
	p.collectChars(reader.Page(pageNumber).Content())

	return p, nil
}

// collectChars converts the library's positioned text into character objects
// in top-left page space.
func (p *dslipakPage) collectChars(content gopdf.Content) {
	for _, item := range content.Text {
		runes := []rune(item.S)
		if len(runes) == 0 {
			continue
		}

		size := item.FontSize
		top := p.height - item.Y - size*0.8
		charWidth := item.W / float64(len(runes))
		x := item.X

		for _, r := range runes {
			if r != ' ' && r != '\n' && r != '\r' {
				p.objects.Chars = append(p.objects.Chars, CharObject{
					Text:   string(r),
					Font:   item.Font,
					Size:   size,
					X0:     x,
					Top:    top,
					X1:     x + charWidth,
					Bottom: top + size,
					Width:  charWidth,
					Height: size,
				})
			}
			x += charWidth
		}
	}
}

// GetPageNumber returns the page number (1-based).
func (p *dslipakPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width in points.
func (p *dslipakPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height in points.
func (p *dslipakPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box in page space.
func (p *dslipakPage) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Top: 0, X1: p.width, Bottom: p.height}
}

// GetObjects returns the page's character objects.
func (p *dslipakPage) GetObjects() Objects {
	return p.objects
}

// ExtractText returns the page text.
func (p *dslipakPage) ExtractText(opts ...TextExtractionOption) string {
	cfg := newTextConfig(opts)
	return extractText(p.objects.Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractWords groups characters into words.
func (p *dslipakPage) ExtractWords(opts ...TextExtractionOption) []Word {
	cfg := newTextConfig(opts)
	return extractWords(p.objects.Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractLines groups characters into visual lines.
func (p *dslipakPage) ExtractLines(opts ...TextExtractionOption) []Line {
	cfg := newTextConfig(opts)
	return extractLines(p.objects.Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractTables detects tables using text alignment.
func (p *dslipakPage) ExtractTables(opts ...TableExtractionOption) []Table {
	return newTableExtractor(p, opts...).extract()
}
