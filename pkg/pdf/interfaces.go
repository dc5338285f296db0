package pdf

// Document represents an open PDF document. Pages are interpreted lazily;
// Close releases the underlying file handle where the backend holds one.
type Document interface {
	// GetPage returns a specific page by index (0-based).
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages.
	PageCount() int

	// Close releases resources associated with the document.
	Close() error
}

// Page represents a single page of a PDF document.
type Page interface {
	// GetPageNumber returns the page number (1-based).
	GetPageNumber() int

	// GetWidth returns the page width in page units.
	GetWidth() float64

	// GetHeight returns the page height in page units.
	GetHeight() float64

	// GetBBox returns the page bounding box.
	GetBBox() BoundingBox

	// GetObjects returns all primitives on the page.
	GetObjects() Objects

	// ExtractText extracts plain text from the page.
	ExtractText(opts ...TextExtractionOption) string

	// ExtractWords extracts positioned words with font metadata.
	ExtractWords(opts ...TextExtractionOption) []Word

	// ExtractLines extracts reconstructed text lines; each line owns its
	// words.
	ExtractLines(opts ...TextExtractionOption) []Line

	// ExtractTables extracts detected tables.
	ExtractTables(opts ...TableExtractionOption) []Table
}
