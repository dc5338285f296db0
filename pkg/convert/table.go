package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/docx"
	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/pdf"
)

// ErrColumnWidths is returned when a detected table has more columns than
// the configured width list covers.
var ErrColumnWidths = errors.New("table has more columns than configured widths")

// twipsPerCm converts centimeters to twentieths of a point.
const twipsPerCm = 567

// addTable writes one detected table. Empty cells merge into the populated
// cell to their left; a row-leading empty cell stays as it is. Populated
// cells are centered, with bold carried over from the source words.
func addTable(out *docx.Document, table pdf.Table, tableWords []pdf.Word, opts Options) error {
	if len(table.Rows) == 0 || len(table.Rows[0]) == 0 {
		return nil
	}

	rows := len(table.Rows)
	cols := len(table.Rows[0])

	if cols > len(opts.ColumnWidthsCm) {
		return fmt.Errorf("%w: %d columns, %d widths", ErrColumnWidths, cols, len(opts.ColumnWidthsCm))
	}

	wt := out.AddTable(rows, cols)

	widths := make([]int, cols)
	for c := 0; c < cols; c++ {
		widths[c] = int(opts.ColumnWidthsCm[c] * twipsPerCm)
	}
	if err := wt.SetColumnWidths(widths...); err != nil {
		return err
	}

	for r, row := range table.Rows {
		mergeCount := 0
		for c := 0; c < cols && c < len(row); c++ {
			value := strings.TrimSpace(row[c])

			if value == "" {
				// merge into the populated cell on the left; a leading
				// empty cell has nothing to merge into
				if c > 0 {
					anchor := c - 1 - mergeCount
					if err := wt.MergeRight(r, anchor, c-anchor); err != nil {
						return err
					}
					mergeCount++
				}
				continue
			}

			cell, err := wt.Cell(r, c)
			if err != nil {
				return err
			}
			run := cell.SetText(value)

			if cellWords := wordsForCell(table, r, c, value, tableWords); len(cellWords) > 0 {
				run.SetBold(allBold(cellWords))
				cell.Paragraph().SetAlignment(docx.AlignCenter)
			}

			mergeCount = 0
		}
	}

	return nil
}

// wordsForCell finds the source words that carry a cell's styling. Geometry
// wins when the extractor produced cell boxes: every word whose center sits
// inside the cell box. Text equality is the fallback for tables detected
// without geometry.
func wordsForCell(table pdf.Table, r, c int, value string, words []pdf.Word) []pdf.Word {
	if r < len(table.Cells) && c < len(table.Cells[r]) {
		box := table.Cells[r][c]
		if box.Width() > 0 {
			var owned []pdf.Word
			for _, w := range words {
				if box.Contains(w.BBox.MidX(), (w.BBox.Top+w.BBox.Bottom)/2) {
					owned = append(owned, w)
				}
			}
			if len(owned) > 0 {
				return owned
			}
		}
	}

	for _, w := range words {
		if strings.TrimSpace(w.Text) == value {
			return []pdf.Word{w}
		}
	}

	return nil
}

// allBold reports whether every word carries a bold font.
func allBold(words []pdf.Word) bool {
	for _, w := range words {
		if !w.Bold() {
			return false
		}
	}
	return true
}
