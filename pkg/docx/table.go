package docx

import "fmt"

// Table is a grid of cells. Every cell starts with one empty paragraph, the
// way Word itself creates tables.
type Table struct {
	style     string
	colWidths []int // twips, one per grid column
	rows      [][]*Cell
}

// Cell is one table cell. A cell whose span is zero has been absorbed by a
// horizontal merge to its left and is not written out.
type Cell struct {
	span      int
	width     int // twips
	paragraph *Paragraph
}

func newTable(rows, cols int) *Table {
	t := &Table{style: "TableGrid"}
	t.rows = make([][]*Cell, rows)
	for i := range t.rows {
		t.rows[i] = make([]*Cell, cols)
		for j := range t.rows[i] {
			t.rows[i][j] = &Cell{span: 1, paragraph: &Paragraph{}}
		}
	}
	return t
}

// SetStyle sets the table style ID.
func (t *Table) SetStyle(style string) {
	t.style = style
}

// SetColumnWidths sets the grid column widths in twips. The number of widths
// must match the table's column count.
func (t *Table) SetColumnWidths(twips ...int) error {
	if len(t.rows) > 0 && len(twips) != len(t.rows[0]) {
		return fmt.Errorf("got %d widths for %d columns", len(twips), len(t.rows[0]))
	}
	t.colWidths = twips

	for _, row := range t.rows {
		col := 0
		for _, cell := range row {
			// merged-away cells consume no grid columns of their own
			if cell.span == 0 {
				continue
			}
			w := 0
			for k := 0; k < cell.span && col < len(twips); k++ {
				w += twips[col]
				col++
			}
			cell.width = w
		}
	}

	return nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Cols returns the number of grid columns.
func (t *Table) Cols() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// Cell returns the cell at the given position. Merged-away cells are still
// addressable but will not be written.
func (t *Table) Cell(row, col int) (*Cell, error) {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.rows[row]) {
		return nil, fmt.Errorf("cell (%d, %d) out of range", row, col)
	}
	return t.rows[row][col], nil
}

// MergeRight extends the cell at (row, col) to absorb the n cells to its
// right. The absorbed cells' content is discarded.
func (t *Table) MergeRight(row, col, n int) error {
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	cells := t.rows[row]
	if col < 0 || n < 0 || col+n >= len(cells) {
		return fmt.Errorf("merge of %d cells at (%d, %d) exceeds row width", n, row, col)
	}
	target := cells[col]
	if target.span == 0 {
		return fmt.Errorf("cell (%d, %d) was already merged away", row, col)
	}
	for k := col + 1; k <= col+n; k++ {
		target.span += cells[k].span
		cells[k].span = 0
	}
	return nil
}

// Paragraph returns the cell's paragraph.
func (c *Cell) Paragraph() *Paragraph {
	return c.paragraph
}

// SetText replaces the cell content with a single unstyled run.
func (c *Cell) SetText(text string) *Run {
	c.paragraph = &Paragraph{}
	return c.paragraph.AddRun(text)
}

func (t *Table) toXML() xmlTable {
	xt := xmlTable{
		Props: xmlTableProps{
			Style: &xmlVal{Val: t.style},
			Width: &xmlTableWidth{W: 0, Type: "auto"},
		},
	}

	for _, w := range t.colWidths {
		xt.Grid.Cols = append(xt.Grid.Cols, xmlGridCol{W: w})
	}

	for _, row := range t.rows {
		xr := xmlTableRow{}
		for _, cell := range row {
			if cell.span == 0 {
				continue
			}
			xc := xmlTableCell{Paragraphs: []xmlParagraph{cell.paragraph.toXML()}}

			props := &xmlCellProps{}
			if cell.width > 0 {
				props.Width = &xmlTableWidth{W: cell.width, Type: "dxa"}
			}
			if cell.span > 1 {
				props.GridSpan = &xmlVal{Val: fmt.Sprintf("%d", cell.span)}
			}
			if props.Width != nil || props.GridSpan != nil {
				xc.Props = props
			}

			xr.Cells = append(xr.Cells, xc)
		}
		xt.Rows = append(xt.Rows, xr)
	}

	return xt
}
