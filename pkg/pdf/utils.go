package pdf

import (
	"math"
	"sort"
)

const floatTolerance = 0.1

// dedupeLines removes duplicate graphics lines. Content streams often draw
// the same rule twice, once per adjoining cell.
func dedupeLines(lines []LineObject) []LineObject {
	if len(lines) == 0 {
		return lines
	}

	sorted := make([]LineObject, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Top-sorted[j].Top) > floatTolerance {
			return sorted[i].Top < sorted[j].Top
		}
		if math.Abs(sorted[i].X0-sorted[j].X0) > floatTolerance {
			return sorted[i].X0 < sorted[j].X0
		}
		if math.Abs(sorted[i].Bottom-sorted[j].Bottom) > floatTolerance {
			return sorted[i].Bottom < sorted[j].Bottom
		}
		return sorted[i].X1 < sorted[j].X1
	})

	result := sorted[:1]
	for _, line := range sorted[1:] {
		if !linesEqual(result[len(result)-1], line) {
			result = append(result, line)
		}
	}

	return result
}

// linesEqual treats a line and its reverse as the same rule.
func linesEqual(a, b LineObject) bool {
	same := math.Abs(a.X0-b.X0) < floatTolerance &&
		math.Abs(a.Top-b.Top) < floatTolerance &&
		math.Abs(a.X1-b.X1) < floatTolerance &&
		math.Abs(a.Bottom-b.Bottom) < floatTolerance

	reversed := math.Abs(a.X0-b.X1) < floatTolerance &&
		math.Abs(a.Top-b.Bottom) < floatTolerance &&
		math.Abs(a.X1-b.X0) < floatTolerance &&
		math.Abs(a.Bottom-b.Top) < floatTolerance

	return same || reversed
}
