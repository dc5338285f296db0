package pdf

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Default tolerances for grouping characters, in page units.
const (
	defaultXTolerance = 3.0
	defaultYTolerance = 3.0
)

// sortChars orders characters top-to-bottom, then left-to-right, treating
// characters whose tops differ by less than yTol as the same line.
func sortChars(chars []CharObject, yTol float64) []CharObject {
	sorted := make([]CharObject, len(chars))
	copy(sorted, chars)

	sort.Slice(sorted, func(i, j int) bool {
		if abs(sorted[i].Top-sorted[j].Top) > yTol {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	return sorted
}

// groupIntoLines splits position-sorted characters into line groups by
// vertical proximity.
func groupIntoLines(chars []CharObject, yTol float64) [][]CharObject {
	if len(chars) == 0 {
		return nil
	}

	var lines [][]CharObject
	currentLine := []CharObject{chars[0]}
	currentY := chars[0].Top

	for _, char := range chars[1:] {
		if abs(char.Top-currentY) > yTol {
			lines = append(lines, currentLine)
			currentLine = []CharObject{char}
			currentY = char.Top
		} else {
			currentLine = append(currentLine, char)
		}
	}
	lines = append(lines, currentLine)

	return lines
}

// wordsFromLineChars splits one line of characters into words on horizontal
// gaps. A gap wider than xTol, or wider than 30% of the next character's
// width, starts a new word.
func wordsFromLineChars(lineChars []CharObject, xTol float64) []Word {
	if len(lineChars) == 0 {
		return nil
	}

	sort.Slice(lineChars, func(i, j int) bool {
		return lineChars[i].X0 < lineChars[j].X0
	})

	var words []Word
	var current []CharObject

	for i, char := range lineChars {
		if i == 0 {
			current = []CharObject{char}
			continue
		}
		gap := char.X0 - lineChars[i-1].X1
		if gap > xTol || gap > char.Width*0.3 {
			if len(current) > 0 {
				words = append(words, newWord(current))
			}
			current = []CharObject{char}
		} else {
			current = append(current, char)
		}
	}
	if len(current) > 0 {
		words = append(words, newWord(current))
	}

	return words
}

// newWord assembles a Word from a run of characters. Text is NFC-normalized
// so combining sequences from CMap-decoded fonts compare cleanly.
func newWord(chars []CharObject) Word {
	var text strings.Builder
	minX, minY := chars[0].X0, chars[0].Top
	maxX, maxY := chars[0].X1, chars[0].Bottom

	for _, char := range chars {
		text.WriteString(char.Text)
		minX = min(minX, char.X0)
		minY = min(minY, char.Top)
		maxX = max(maxX, char.X1)
		maxY = max(maxY, char.Bottom)
	}

	return Word{
		Text:  norm.NFC.String(text.String()),
		Font:  chars[0].Font,
		Size:  chars[0].Size,
		BBox:  BoundingBox{X0: minX, Top: minY, X1: maxX, Bottom: maxY},
		Chars: chars,
	}
}

// extractWords groups characters into words across the whole page.
func extractWords(chars []CharObject, xTol, yTol float64) []Word {
	if len(chars) == 0 {
		return nil
	}

	sorted := sortChars(chars, yTol)

	var words []Word
	for _, line := range groupIntoLines(sorted, yTol) {
		words = append(words, wordsFromLineChars(line, xTol)...)
	}

	return words
}

// extractLines groups characters into structured lines. Each line owns its
// words, so consumers never have to re-derive the word-to-line relation by
// coordinate matching.
func extractLines(chars []CharObject, xTol, yTol float64) []Line {
	if len(chars) == 0 {
		return nil
	}

	sorted := sortChars(chars, yTol)

	var lines []Line
	for _, lineChars := range groupIntoLines(sorted, yTol) {
		words := wordsFromLineChars(lineChars, xTol)
		if len(words) == 0 {
			continue
		}

		bbox := words[0].BBox
		var text strings.Builder
		for i, word := range words {
			if i > 0 {
				text.WriteString(" ")
			}
			text.WriteString(word.Text)

			bbox.X0 = min(bbox.X0, word.BBox.X0)
			bbox.Top = min(bbox.Top, word.BBox.Top)
			bbox.X1 = max(bbox.X1, word.BBox.X1)
			bbox.Bottom = max(bbox.Bottom, word.BBox.Bottom)
		}

		lines = append(lines, Line{Text: text.String(), BBox: bbox, Words: words})
	}

	return lines
}

// extractText renders characters as plain text, one output line per detected
// line, with spaces inserted at word gaps.
func extractText(chars []CharObject, xTol, yTol float64) string {
	var sb strings.Builder
	for i, line := range extractLines(chars, xTol, yTol) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line.Text)
	}
	return sb.String()
}

func newTextConfig(opts []TextExtractionOption) *textExtractionConfig {
	config := &textExtractionConfig{
		XTolerance: defaultXTolerance,
		YTolerance: defaultYTolerance,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}
