package convert

// Options controls how the first PDF page is rendered into a Word document.
type Options struct {
	// FontName is applied to every paragraph run.
	FontName string

	// FontSize is the run font size in points.
	FontSize float64

	// CenterTolerance is the maximum distance, in page units, between a
	// line's midpoint and the page center for the line to count as centered.
	CenterTolerance float64

	// LineTolerance groups characters into words and lines.
	LineTolerance float64

	// TableTolerance is the vertical slack when deciding whether a line or
	// word lies inside a table region.
	TableTolerance float64

	// ColumnWidthsCm sets table column widths, in centimeters, left to
	// right. A table with more columns than widths is an error.
	ColumnWidthsCm []float64

	// TablesXLSX, when non-empty, also exports the detected tables to an
	// XLSX workbook at this path.
	TablesXLSX string
}

// DefaultOptions returns the conversion defaults: Times New Roman 11pt,
// centered within 20 units, and a three-column width profile that suits
// label/key/value tables.
func DefaultOptions() Options {
	return Options{
		FontName:        "Times New Roman",
		FontSize:        11,
		CenterTolerance: 20,
		LineTolerance:   3,
		TableTolerance:  2,
		ColumnWidthsCm:  []float64{1, 3, 15},
	}
}
