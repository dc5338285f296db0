package convert

import "github.com/Priyanshi-Data-Art/PDF-WORD/pkg/pdf"

// isCentered reports whether a line's horizontal midpoint falls within tol
// of the page center.
func isCentered(line pdf.Line, pageCenter, tol float64) bool {
	return abs(line.BBox.MidX()-pageCenter) < tol
}

// insideTable reports whether the vertical span [top, bottom] lies inside
// the table region, with tol units of slack at both edges.
func insideTable(top, bottom float64, table pdf.BoundingBox, tol float64) bool {
	return top >= table.Top-tol && bottom <= table.Bottom+tol
}

// lineInsideAnyTable reports whether a line belongs to one of the tables.
func lineInsideAnyTable(line pdf.Line, tables []pdf.Table, tol float64) bool {
	for _, t := range tables {
		if insideTable(line.BBox.Top, line.BBox.Bottom, t.BBox, tol) {
			return true
		}
	}
	return false
}

// wordsInsideTables returns the words that lie inside any of the tables.
// They carry the font information the table cells were stripped of.
func wordsInsideTables(words []pdf.Word, tables []pdf.Table, tol float64) []pdf.Word {
	var inside []pdf.Word
	for _, w := range words {
		for _, t := range tables {
			if insideTable(w.BBox.Top, w.BBox.Bottom, t.BBox, tol) {
				inside = append(inside, w)
				break
			}
		}
	}
	return inside
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
