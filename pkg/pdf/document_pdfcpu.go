package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfcpuDocument implements Document on top of a pdfcpu parse context. It is
// the primary backend: the only one that surfaces the graphics primitives
// table detection needs.
type pdfcpuDocument struct {
	ctx      *model.Context
	filepath string
	pages    []Page
}

// Open opens a PDF file via pdfcpu and eagerly builds all pages.
func Open(filepath string) (Document, error) {
	ctx, err := api.ReadContextFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	doc := &pdfcpuDocument{
		ctx:      ctx,
		filepath: filepath,
	}

	doc.pages = make([]Page, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		page, err := newPDFCPUPage(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("failed to build page %d: %w", i, err)
		}
		doc.pages[i-1] = page
	}

	return doc, nil
}

// GetPage returns the page at the given 0-based index.
func (d *pdfcpuDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages.
func (d *pdfcpuDocument) PageCount() int {
	return len(d.pages)
}

// Close releases the document's resources.
func (d *pdfcpuDocument) Close() error {
	d.ctx = nil
	d.pages = nil
	return nil
}
