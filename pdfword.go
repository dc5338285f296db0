// Package pdfword converts the first page of a PDF document into a Word
// document, preserving paragraph alignment and bold styling and rebuilding
// detected tables with merged cells.
package pdfword

import (
	"fmt"

	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/convert"
	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/pdf"
)

// Re-export the extraction types for the public API.
type (
	Document              = pdf.Document
	Page                  = pdf.Page
	Table                 = pdf.Table
	Word                  = pdf.Word
	Line                  = pdf.Line
	Objects               = pdf.Objects
	CharObject            = pdf.CharObject
	LineObject            = pdf.LineObject
	RectObject            = pdf.RectObject
	BoundingBox           = pdf.BoundingBox
	TextExtractionOption  = pdf.TextExtractionOption
	TableExtractionOption = pdf.TableExtractionOption
)

// Conversion types.
type (
	Options = convert.Options
	Result  = convert.Result
)

// Re-export option functions.
var (
	WithXTolerance    = pdf.WithXTolerance
	WithYTolerance    = pdf.WithYTolerance
	WithTableStrategy = pdf.WithTableStrategy
	WithMinTableSize  = pdf.WithMinTableSize
	WithTextTolerance = pdf.WithTextTolerance

	DefaultOptions = convert.DefaultOptions
)

// ErrColumnWidths reports a detected table wider than the configured column
// width list.
var ErrColumnWidths = convert.ErrColumnWidths

// Open opens a PDF file, trying each backend in turn. pdfcpu comes first
// because it is the only backend that surfaces the ruled lines table
// detection relies on; the simpler text-only readers serve as fallbacks for
// files pdfcpu rejects.
func Open(filepath string) (Document, error) {
	doc, pdfcpuErr := pdf.Open(filepath)
	if pdfcpuErr == nil {
		return doc, nil
	}

	doc, err := pdf.OpenWithLedongthuc(filepath)
	if err == nil {
		return doc, nil
	}

	doc, err = pdf.OpenWithDslipak(filepath)
	if err == nil {
		return doc, nil
	}

	return nil, fmt.Errorf("no backend could open %s: %w", filepath, pdfcpuErr)
}

// Convert opens src, converts its first page and writes a Word document at
// dst. It is the one-call form of Open plus convert.Convert.
func Convert(src, dst string, opts Options) (*Result, error) {
	doc, err := Open(src)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return convert.Convert(doc, dst, opts)
}

// ConvertDocument converts an already opened document's first page.
func ConvertDocument(doc Document, dst string, opts Options) (*Result, error) {
	return convert.Convert(doc, dst, opts)
}
