// Package convert renders the first page of a PDF into a Word document,
// preserving alignment and bold styling and rebuilding detected tables with
// merged cells.
package convert

import (
	"fmt"

	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/docx"
	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/pdf"
)

// Result summarizes one conversion.
type Result struct {
	// Paragraphs is the number of text paragraphs written, excluding the
	// spacing paragraphs that follow tables.
	Paragraphs int

	// Tables is the number of tables written.
	Tables int

	// SavedPath is the path the document was written to.
	SavedPath string

	// XLSXPath is the path of the table workbook, when one was requested.
	XLSXPath string
}

// Convert reads the first page of doc and writes a Word document at dst.
// Lines inside detected table regions are rendered as table cells; all other
// lines become paragraphs with per-word bold styling and center or left
// alignment.
func Convert(doc pdf.Document, dst string, opts Options) (*Result, error) {
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	page, err := doc.GetPage(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read first page: %w", err)
	}

	lines := page.ExtractLines(
		pdf.WithXTolerance(opts.LineTolerance),
		pdf.WithYTolerance(opts.LineTolerance),
	)
	words := page.ExtractWords(
		pdf.WithXTolerance(opts.LineTolerance),
		pdf.WithYTolerance(opts.LineTolerance),
	)
	tables := page.ExtractTables()

	out := docx.NewDocument()
	pageCenter := page.GetWidth() / 2

	result := &Result{SavedPath: dst}

	for _, line := range lines {
		if lineInsideAnyTable(line, tables, opts.TableTolerance) {
			continue
		}
		if len(line.Words) == 0 {
			continue
		}
		addLineParagraph(out, line, pageCenter, opts)
		result.Paragraphs++
	}

	tableWords := wordsInsideTables(words, tables, opts.TableTolerance)
	for _, table := range tables {
		if err := addTable(out, table, tableWords, opts); err != nil {
			return nil, err
		}
		// spacing after the table
		out.AddParagraph()
		result.Tables++
	}

	if opts.TablesXLSX != "" && len(tables) > 0 {
		if err := exportTablesXLSX(tables, opts.TablesXLSX); err != nil {
			return nil, fmt.Errorf("failed to export tables: %w", err)
		}
		result.XLSXPath = opts.TablesXLSX
	}

	if err := out.SaveAs(dst); err != nil {
		return nil, err
	}

	return result, nil
}

// addLineParagraph writes one text line as a paragraph. Every word becomes
// its own run so bold spans survive, with a trailing space separating words.
func addLineParagraph(out *docx.Document, line pdf.Line, pageCenter float64, opts Options) {
	p := out.AddParagraph()

	if isCentered(line, pageCenter, opts.CenterTolerance) {
		p.SetAlignment(docx.AlignCenter)
	} else {
		p.SetAlignment(docx.AlignLeft)
	}

	for _, word := range line.Words {
		p.AddRun(word.Text + " ").
			SetBold(word.Bold()).
			SetFont(opts.FontName).
			SetSize(opts.FontSize)
	}
}
