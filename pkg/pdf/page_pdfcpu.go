package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pdfcpuPage implements Page using pdfcpu. The content stream is decoded at
// construction time; its interpretation into objects happens lazily on the
// first GetObjects call.
type pdfcpuPage struct {
	ctx        *model.Context
	pageNumber int
	pageDict   types.Dict
	width      float64
	height     float64
	content    []byte

	parsed  bool
	objects Objects
}

func newPDFCPUPage(ctx *model.Context, pageNumber int) (*pdfcpuPage, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}
	if pageNumber < 1 || pageNumber > ctx.PageCount {
		return nil, fmt.Errorf("page number %d out of range [1, %d]", pageNumber, ctx.PageCount)
	}

	pageDict, _, attrs, err := ctx.PageDict(pageNumber, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get page dict: %w", err)
	}

	// default to US Letter when no MediaBox is inherited
	width, height := 612.0, 792.0
	if attrs != nil && attrs.MediaBox != nil {
		width = attrs.MediaBox.Width()
		height = attrs.MediaBox.Height()
	}

	page := &pdfcpuPage{
		ctx:        ctx,
		pageNumber: pageNumber,
		pageDict:   pageDict,
		width:      width,
		height:     height,
	}

	if err := page.readContent(); err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	return page, nil
}

// readContent decodes the page's content stream, combining array-valued
// Contents into a single stream.
func (p *pdfcpuPage) readContent() error {
	contents := p.pageDict["Contents"]
	if contents == nil {
		return nil
	}

	var streams [][]byte

	appendStream := func(ref types.IndirectRef) {
		sd, _, err := p.ctx.DereferenceStreamDict(ref)
		if err != nil || sd == nil {
			return
		}
		if err := sd.Decode(); err != nil {
			return
		}
		streams = append(streams, sd.Content)
	}

	switch v := contents.(type) {
	case types.IndirectRef:
		appendStream(v)
	case *types.IndirectRef:
		appendStream(*v)
	case types.Array:
		for _, item := range v {
			switch ref := item.(type) {
			case types.IndirectRef:
				appendStream(ref)
			case *types.IndirectRef:
				appendStream(*ref)
			}
		}
	}

	for i, s := range streams {
		if i > 0 {
			p.content = append(p.content, '\n')
		}
		p.content = append(p.content, s...)
	}

	return nil
}

// GetPageNumber returns the page number (1-based).
func (p *pdfcpuPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width in points.
func (p *pdfcpuPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height in points.
func (p *pdfcpuPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box in page space.
func (p *pdfcpuPage) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Top: 0, X1: p.width, Bottom: p.height}
}

// GetObjects interprets the content stream on first use and returns the
// page's characters, lines and rectangles.
func (p *pdfcpuPage) GetObjects() Objects {
	if !p.parsed {
		if len(p.content) > 0 {
			parser := newContentParser(p.ctx, p.pageDict, p.height)
			p.objects = parser.parse(p.content)
			p.objects.Lines = dedupeLines(p.objects.Lines)
		}
		p.parsed = true
	}
	return p.objects
}

// ExtractText returns the page text with words separated by spaces and lines
// by newlines.
func (p *pdfcpuPage) ExtractText(opts ...TextExtractionOption) string {
	cfg := newTextConfig(opts)
	return extractText(p.GetObjects().Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractWords groups characters into words.
func (p *pdfcpuPage) ExtractWords(opts ...TextExtractionOption) []Word {
	cfg := newTextConfig(opts)
	return extractWords(p.GetObjects().Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractLines groups characters into visual lines, each owning its words.
func (p *pdfcpuPage) ExtractLines(opts ...TextExtractionOption) []Line {
	cfg := newTextConfig(opts)
	return extractLines(p.GetObjects().Chars, cfg.XTolerance, cfg.YTolerance)
}

// ExtractTables detects tables on the page.
func (p *pdfcpuPage) ExtractTables(opts ...TableExtractionOption) []Table {
	return newTableExtractor(p, opts...).extract()
}
