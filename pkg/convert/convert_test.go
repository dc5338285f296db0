package convert

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/pdf"
)

// stubPage is a canned page for pipeline tests.
type stubPage struct {
	width  float64
	height float64
	lines  []pdf.Line
	words  []pdf.Word
	tables []pdf.Table
}

func (p *stubPage) GetPageNumber() int { return 1 }
func (p *stubPage) GetWidth() float64  { return p.width }
func (p *stubPage) GetHeight() float64 { return p.height }
func (p *stubPage) GetBBox() pdf.BoundingBox {
	return pdf.BoundingBox{X1: p.width, Bottom: p.height}
}
func (p *stubPage) GetObjects() pdf.Objects { return pdf.Objects{} }

func (p *stubPage) ExtractText(opts ...pdf.TextExtractionOption) string {
	var lines []string
	for _, l := range p.lines {
		lines = append(lines, l.Text)
	}
	return strings.Join(lines, "\n")
}

func (p *stubPage) ExtractWords(opts ...pdf.TextExtractionOption) []pdf.Word    { return p.words }
func (p *stubPage) ExtractLines(opts ...pdf.TextExtractionOption) []pdf.Line    { return p.lines }
func (p *stubPage) ExtractTables(opts ...pdf.TableExtractionOption) []pdf.Table { return p.tables }

type stubDocument struct {
	page pdf.Page
}

func (d *stubDocument) GetPage(index int) (pdf.Page, error) { return d.page, nil }
func (d *stubDocument) PageCount() int                      { return 1 }
func (d *stubDocument) Close() error                        { return nil }

// makeWord builds a word at the given horizontal span on the line at top.
func makeWord(text, font string, x0, x1, top float64) pdf.Word {
	return pdf.Word{
		Text: text,
		Font: font,
		Size: 11,
		BBox: pdf.BoundingBox{X0: x0, Top: top, X1: x1, Bottom: top + 11},
	}
}

// makeLine assembles a line owning the given words.
func makeLine(words ...pdf.Word) pdf.Line {
	bbox := words[0].BBox
	var texts []string
	for _, w := range words {
		texts = append(texts, w.Text)
		bbox.X0 = min(bbox.X0, w.BBox.X0)
		bbox.Top = min(bbox.Top, w.BBox.Top)
		bbox.X1 = max(bbox.X1, w.BBox.X1)
		bbox.Bottom = max(bbox.Bottom, w.BBox.Bottom)
	}
	return pdf.Line{Text: strings.Join(texts, " "), BBox: bbox, Words: words}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// documentXML converts the page and returns word/document.xml.
func documentXML(t *testing.T, page *stubPage, opts Options) (string, *Result) {
	t.Helper()

	dst := filepath.Join(t.TempDir(), "out.docx")
	result, err := Convert(&stubDocument{page: page}, dst, opts)
	require.NoError(t, err)
	require.Equal(t, dst, result.SavedPath)

	zr, err := zip.OpenReader(dst)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data), result
	}

	t.Fatal("word/document.xml not found")
	return "", nil
}

func TestConvertAlignment(t *testing.T) {
	// page center is 306; the first line straddles it, the second hugs the
	// left margin
	centered := makeLine(makeWord("Title", "Times-Bold", 280, 330, 50))
	left := makeLine(makeWord("Body", "Times-Roman", 40, 90, 80))

	page := &stubPage{width: 612, height: 792, lines: []pdf.Line{centered, left}}

	body, result := documentXML(t, page, DefaultOptions())

	assert.Equal(t, 2, result.Paragraphs)
	assert.Equal(t, 1, strings.Count(body, `<w:jc w:val="center">`))
	assert.Equal(t, 1, strings.Count(body, `<w:jc w:val="left">`))
}

func TestConvertSkipsWordlessLines(t *testing.T) {
	// a line with no owned words carries nothing to render
	empty := pdf.Line{Text: "ghost", BBox: pdf.BoundingBox{X0: 40, Top: 50, X1: 90, Bottom: 61}}
	body := makeLine(makeWord("Body", "Times-Roman", 40, 90, 80))

	page := &stubPage{width: 612, height: 792, lines: []pdf.Line{empty, body}}

	xml, result := documentXML(t, page, DefaultOptions())

	assert.Equal(t, 1, result.Paragraphs)
	assert.NotContains(t, xml, "ghost")
	assert.Contains(t, xml, "Body")
}

func TestConvertBoldPerWord(t *testing.T) {
	line := makeLine(
		makeWord("Note:", "Arial-BoldMT", 40, 80, 50),
		makeWord("details", "ArialMT", 85, 130, 50),
	)
	page := &stubPage{width: 612, height: 792, lines: []pdf.Line{line}}

	body, _ := documentXML(t, page, DefaultOptions())

	assert.Equal(t, 1, strings.Count(body, "<w:b>"))
	assert.Contains(t, body, ">Note: </w:t>")
	assert.Contains(t, body, ">details </w:t>")
	assert.Contains(t, body, `w:ascii="Times New Roman"`)
	assert.Contains(t, body, `<w:sz w:val="22">`)
}

func TestConvertSkipsLinesInsideTables(t *testing.T) {
	tableBBox := pdf.BoundingBox{X0: 40, Top: 100, X1: 500, Bottom: 200}

	outside := makeLine(makeWord("Heading", "Times-Roman", 40, 120, 50))
	inside := makeLine(makeWord("cellword", "Times-Roman", 50, 110, 120))

	page := &stubPage{
		width:  612,
		height: 792,
		lines:  []pdf.Line{outside, inside},
		words:  append(outside.Words, inside.Words...),
		tables: []pdf.Table{{
			Rows:  [][]string{{"cellword"}, {"x"}},
			Cells: [][]pdf.BoundingBox{{{X0: 40, Top: 100, X1: 500, Bottom: 150}}, {{X0: 40, Top: 150, X1: 500, Bottom: 200}}},
			BBox:  tableBBox,
		}},
	}

	opts := DefaultOptions()
	body, result := documentXML(t, page, opts)

	assert.Equal(t, 1, result.Paragraphs)
	assert.Equal(t, 1, result.Tables)
	assert.Contains(t, body, ">Heading </w:t>")
	// the table line appears once, as cell content, not as a paragraph run
	assert.Equal(t, 1, strings.Count(body, "cellword"))
}

func TestConvertTableMerging(t *testing.T) {
	// one row: leading empty cell stays, "A" absorbs the empty cell after it
	table := pdf.Table{
		Rows: [][]string{{"", "A", "", "B"}},
		BBox: pdf.BoundingBox{X0: 40, Top: 100, X1: 500, Bottom: 120},
	}
	page := &stubPage{width: 612, height: 792, tables: []pdf.Table{table}}

	opts := DefaultOptions()
	opts.ColumnWidthsCm = []float64{1, 3, 3, 8}

	body, _ := documentXML(t, page, opts)

	assert.Equal(t, 3, strings.Count(body, "<w:tc>"), "expected leading empty, merged A, and B")
	assert.Contains(t, body, `<w:gridSpan w:val="2">`)
	assert.Contains(t, body, ">A</w:t>")
	assert.Contains(t, body, ">B</w:t>")
}

func TestConvertTableCellStyling(t *testing.T) {
	cellBox := pdf.BoundingBox{X0: 40, Top: 100, X1: 250, Bottom: 120}
	table := pdf.Table{
		Rows:  [][]string{{"Header", "Value"}},
		Cells: [][]pdf.BoundingBox{{cellBox, {X0: 250, Top: 100, X1: 500, Bottom: 120}}},
		BBox:  pdf.BoundingBox{X0: 40, Top: 100, X1: 500, Bottom: 120},
	}

	// bold word centered inside the first cell
	boldWord := makeWord("Header", "Times-Bold", 100, 160, 104)

	page := &stubPage{
		width:  612,
		height: 792,
		words:  []pdf.Word{boldWord},
		tables: []pdf.Table{table},
	}

	opts := DefaultOptions()
	opts.ColumnWidthsCm = []float64{3, 8}

	body, _ := documentXML(t, page, opts)

	assert.Contains(t, body, "<w:b>")
	assert.Contains(t, body, `<w:jc w:val="center">`)
	assert.Contains(t, body, ">Header</w:t>")
}

func TestConvertColumnWidthsError(t *testing.T) {
	table := pdf.Table{
		Rows: [][]string{{"a", "b", "c", "d"}},
		BBox: pdf.BoundingBox{X0: 40, Top: 100, X1: 500, Bottom: 120},
	}
	page := &stubPage{width: 612, height: 792, tables: []pdf.Table{table}}

	dst := filepath.Join(t.TempDir(), "out.docx")
	_, err := Convert(&stubDocument{page: page}, dst, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnWidths)
}

func TestConvertSpacingParagraphAfterTable(t *testing.T) {
	table := pdf.Table{
		Rows: [][]string{{"only"}},
		BBox: pdf.BoundingBox{X0: 40, Top: 100, X1: 500, Bottom: 120},
	}
	page := &stubPage{width: 612, height: 792, tables: []pdf.Table{table}}

	opts := DefaultOptions()
	body, result := documentXML(t, page, opts)

	assert.Equal(t, 0, result.Paragraphs)
	// one paragraph inside the cell, one spacing paragraph after the table
	assert.Equal(t, 2, strings.Count(body, "<w:p>"))
	tblEnd := strings.Index(body, "</w:tbl>")
	require.NotEqual(t, -1, tblEnd)
	assert.Contains(t, body[tblEnd:], "<w:p>")
}

func TestConvertColumnWidthsInTwips(t *testing.T) {
	table := pdf.Table{
		Rows: [][]string{{"a", "b", "c"}},
		BBox: pdf.BoundingBox{X0: 40, Top: 100, X1: 500, Bottom: 120},
	}
	page := &stubPage{width: 612, height: 792, tables: []pdf.Table{table}}

	body, _ := documentXML(t, page, DefaultOptions())

	// defaults are 1, 3 and 15 cm
	assert.Contains(t, body, `<w:gridCol w:w="567">`)
	assert.Contains(t, body, `<w:gridCol w:w="1701">`)
	assert.Contains(t, body, `<w:gridCol w:w="8505">`)
}

func TestConvertXLSXExport(t *testing.T) {
	table := pdf.Table{
		Rows: [][]string{{"name", "age"}, {"bob", "32"}},
		BBox: pdf.BoundingBox{X0: 40, Top: 100, X1: 500, Bottom: 140},
	}
	page := &stubPage{width: 612, height: 792, tables: []pdf.Table{table}}

	dir := t.TempDir()
	opts := DefaultOptions()
	opts.TablesXLSX = filepath.Join(dir, "tables.xlsx")

	result, err := Convert(&stubDocument{page: page}, filepath.Join(dir, "out.docx"), opts)
	require.NoError(t, err)
	require.Equal(t, opts.TablesXLSX, result.XLSXPath)

	f, err := excelize.OpenFile(opts.TablesXLSX)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Table1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "bob", got)

	got, err = f.GetCellValue("Table1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "age", got)
}

func TestConvertEmptyDocument(t *testing.T) {
	page := &stubPage{width: 612, height: 792}
	dst := filepath.Join(t.TempDir(), "out.docx")

	result, err := Convert(&stubDocument{page: page}, dst, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Paragraphs)
	assert.Equal(t, 0, result.Tables)
	assert.Empty(t, result.XLSXPath)
}
