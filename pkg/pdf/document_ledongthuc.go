package pdf

import (
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"
)

// ledongthucDocument implements Document using ledongthuc/pdf. It is the
// first fallback backend: positioned text with font names, but no graphics,
// so tables fall back to the text strategy.
type ledongthucDocument struct {
	file     io.Closer
	reader   *lpdf.Reader
	filepath string
	pages    []Page
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library.
func OpenWithLedongthuc(filepath string) (Document, error) {
	f, r, err := lpdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	doc := &ledongthucDocument{
		file:     f,
		reader:   r,
		filepath: filepath,
	}

	pageCount := r.NumPage()
	doc.pages = make([]Page, pageCount)
	for i := 1; i <= pageCount; i++ {
		page, err := newLedongthucPage(r, i)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to build page %d: %w", i, err)
		}
		doc.pages[i-1] = page
	}

	return doc, nil
}

// GetPage returns the page at the given 0-based index.
func (d *ledongthucDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages.
func (d *ledongthucDocument) PageCount() int {
	return len(d.pages)
}

// Close closes the underlying file.
func (d *ledongthucDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// ledongthucPage implements Page using ledongthuc/pdf.
type ledongthucPage struct {
	pageNumber int
	width      float64
	height     float64
	objects    Objects
}

func newLedongthucPage(reader *lpdf.Reader, pageNumber int) (Page, error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	page := reader.Page(pageNumber)

	width, height := 612.0, 792.0
	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
		width = mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		height = mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
	}

	p := &ledongthucPage{
		pageNumber: pageNumber,
		width:      width,
		height:     height,
	}
	p.collectChars(page.Content())

	return p, nil
}

// collectChars converts the library's positioned text items into character
// objects, flipping Y so the page origin is the top-left corner. Each item's
// width is divided evenly among its runes; real per-glyph metrics are not
// exposed at this level.
func (p *ledongthucPage) collectChars(content lpdf.Content) {
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
			if r != ' ' {
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
func (p *ledongthucPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width in points.
func (p *ledongthucPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height in points.
func (p *ledongthucPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box in page space.
func (p *ledongthucPage) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Top: 0, X1: p.width, Bottom: p.height}
}

// GetObjects returns the page's character objects. This backend produces no
// graphics primitives.
func (p *ledongthucPage) GetObjects() Objects {
	return p.objects
}

// ExtractText returns the page text.
func (p *ledongthucPage) ExtractText(opts ...TextExtractionOption) string {
	cfg := newTextConfig(opts)
	return extractText(p.objects.Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractWords groups characters into words.
func (p *ledongthucPage) ExtractWords(opts ...TextExtractionOption) []Word {
	cfg := newTextConfig(opts)
	return extractWords(p.objects.Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractLines groups characters into visual lines.
func (p *ledongthucPage) ExtractLines(opts ...TextExtractionOption) []Line {
	cfg := newTextConfig(opts)
	return extractLines(p.objects.Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractTables detects tables. Without graphics the extractor uses text
// alignment only.
func (p *ledongthucPage) ExtractTables(opts ...TableExtractionOption) []Table {
	return newTableExtractor(p, opts...).extract()
}
