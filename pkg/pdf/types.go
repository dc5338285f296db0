package pdf

import "strings"

// BoundingBox is a rectangular page region in page space. The origin is the
// top-left corner of the page and Y grows downward, so Top < Bottom for any
// non-degenerate box.
type BoundingBox struct {
	X0     float64 // Left
	Top    float64
	X1     float64 // Right
	Bottom float64
}

// Width returns the width of the bounding box.
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box.
func (b BoundingBox) Height() float64 {
	return b.Bottom - b.Top
}

// MidX returns the horizontal midpoint of the bounding box.
func (b BoundingBox) MidX() float64 {
	return (b.X0 + b.X1) / 2
}

// Contains checks if a point is within the bounding box.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Top && y <= b.Bottom
}

// Intersects checks if two bounding boxes intersect.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 || b.Bottom < other.Top || b.Top > other.Bottom)
}

// VerticallyInside reports whether the box's vertical extent falls inside
// other's, with a tolerance margin applied to both of other's bounds.
func (b BoundingBox) VerticallyInside(other BoundingBox, tol float64) bool {
	return b.Top >= other.Top-tol && b.Bottom <= other.Bottom+tol
}

// CharObject is a single positioned character with font metadata.
type CharObject struct {
	Text   string
	Font   string // font name as reported by the source, e.g. "Times-Bold"
	Size   float64
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
	Width  float64
	Height float64
}

// GetBBox returns the character's bounding box.
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Top: c.Top, X1: c.X1, Bottom: c.Bottom}
}

// Word is a positioned text token grouped from adjacent characters. Font and
// Size are taken from the word's first character.
type Word struct {
	Text  string
	Font  string
	Size  float64
	BBox  BoundingBox
	Chars []CharObject
}

// Bold reports whether the word's font name carries the "Bold" marker. Fonts
// that convey weight through a distinct family name are not detected.
func (w Word) Bold() bool {
	return strings.Contains(w.Font, "Bold")
}

// Line is a reconstructed horizontal run of text. A line owns the words that
// were grouped into it during extraction, in left-to-right order.
type Line struct {
	Text  string
	BBox  BoundingBox
	Words []Word
}

// LineObject is a stroked line segment, used for table detection.
type LineObject struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
	Width  float64
}

// GetBBox returns the line's bounding box.
func (l LineObject) GetBBox() BoundingBox {
	return BoundingBox{
		X0:     min(l.X0, l.X1),
		Top:    min(l.Top, l.Bottom),
		X1:     max(l.X0, l.X1),
		Bottom: max(l.Top, l.Bottom),
	}
}

// RectObject is a stroked or filled rectangle, used for table detection.
type RectObject struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
	Width  float64
	Filled bool
}

// GetBBox returns the rectangle's bounding box.
func (r RectObject) GetBBox() BoundingBox {
	return BoundingBox{X0: r.X0, Top: r.Top, X1: r.X1, Bottom: r.Bottom}
}

// Objects is the collection of primitives extracted from one page.
type Objects struct {
	Chars []CharObject
	Lines []LineObject
	Rects []RectObject
}

// Table is a detected table: a grid of cell strings plus the region it
// occupies. An empty string in Rows means the cell had no content. Cells
// carries the page-space box of every grid cell so consumers can relate page
// text back to the cell that owns it; it is nil for tables detected from text
// alignment alone.
type Table struct {
	Rows  [][]string
	Cells [][]BoundingBox
	BBox  BoundingBox
}

// TextExtractionOption modifies text extraction behavior.
type TextExtractionOption func(*textExtractionConfig)

type textExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

// WithXTolerance sets the horizontal tolerance for grouping characters into
// words.
func WithXTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithYTolerance sets the vertical tolerance for grouping characters into
// lines.
func WithYTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.YTolerance = tolerance
	}
}

// TableExtractionOption modifies table extraction behavior.
type TableExtractionOption func(*tableExtractionConfig)

type tableExtractionConfig struct {
	Strategy      string // "lines" or "text"
	MinTableSize  int
	TextTolerance float64
}

// WithTableStrategy selects the detection strategy: "lines" uses ruled lines
// and rectangles, "text" uses word alignment only.
func WithTableStrategy(strategy string) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.Strategy = strategy
	}
}

// WithMinTableSize sets the minimum number of rows a region must have to be
// reported as a table.
func WithMinTableSize(size int) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.MinTableSize = size
	}
}

// WithTextTolerance sets the vertical tolerance used when assigning text to
// table cells.
func WithTextTolerance(tolerance float64) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.TextTolerance = tolerance
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
