package pdf

import (
	"math"
	"sort"
	"strings"
)

// tableExtractor detects tables on a page. The lines strategy builds a grid
// from ruled lines and rectangle edges; the text strategy falls back to
// column alignment when the page carries no usable graphics.
type tableExtractor struct {
	page          Page
	strategy      string
	minTableSize  int
	textTolerance float64
	snapTolerance float64
}

func newTableExtractor(page Page, opts ...TableExtractionOption) *tableExtractor {
	config := &tableExtractionConfig{
		Strategy:      "lines",
		MinTableSize:  2,
		TextTolerance: 3.0,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &tableExtractor{
		page:          page,
		strategy:      config.Strategy,
		minTableSize:  config.MinTableSize,
		textTolerance: config.TextTolerance,
		snapTolerance: 3.0,
	}
}

func (te *tableExtractor) extract() []Table {
	var tables []Table

	objects := te.page.GetObjects()

	if te.strategy == "lines" {
		tables = te.extractFromLines(objects)
	}

	if len(tables) == 0 {
		tables = te.extractFromText()
	}

	return tables
}

// extractFromLines builds tables from ruled lines and rectangle edges.
func (te *tableExtractor) extractFromLines(objects Objects) []Table {
	hLines, vLines := te.collectRuleLines(objects)
	if len(hLines) < 2 || len(vLines) < 2 {
		return nil
	}

	var tables []Table
	for _, region := range te.findGridRegions(hLines, vLines) {
		table := te.tableFromRegion(region, objects.Chars)
		if len(table.Rows) >= te.minTableSize {
			tables = append(tables, table)
		}
	}

	return tables
}

// collectRuleLines splits graphics into horizontal and vertical rule
// candidates. Rectangle edges contribute four rules each.
func (te *tableExtractor) collectRuleLines(objects Objects) (hLines, vLines []LineObject) {
	for _, line := range objects.Lines {
		switch {
		case math.Abs(line.Bottom-line.Top) < te.snapTolerance:
			hLines = append(hLines, line)
		case math.Abs(line.X1-line.X0) < te.snapTolerance:
			vLines = append(vLines, line)
		}
	}

	for _, rect := range objects.Rects {
		hLines = append(hLines,
			LineObject{X0: rect.X0, Top: rect.Top, X1: rect.X1, Bottom: rect.Top},
			LineObject{X0: rect.X0, Top: rect.Bottom, X1: rect.X1, Bottom: rect.Bottom},
		)
		vLines = append(vLines,
			LineObject{X0: rect.X0, Top: rect.Top, X1: rect.X0, Bottom: rect.Bottom},
			LineObject{X0: rect.X1, Top: rect.Top, X1: rect.X1, Bottom: rect.Bottom},
		)
	}

	return hLines, vLines
}

// gridRegion is one candidate table: sorted rule positions and the cell
// boxes between them.
type gridRegion struct {
	bbox  BoundingBox
	cells [][]BoundingBox
}

// findGridRegions pairs horizontal and vertical rule groups and builds a
// cell grid from the rules that actually cross each other. Horizontal rules
// are grouped by their X spans and vertical rules by their Y spans, so
// side-by-side and stacked tables come out as separate grids.
func (te *tableExtractor) findGridRegions(hLines, vLines []LineObject) []gridRegion {
	var regions []gridRegion

	for _, hGroup := range te.groupRules(hLines, true) {
		hLo, hHi := rulesExtent(hGroup, true)
		for _, vGroup := range te.groupRules(vLines, false) {
			vLo, vHi := rulesExtent(vGroup, false)

			hSel := te.rulesWithin(hGroup, true, vLo, vHi)
			vSel := te.rulesWithin(vGroup, false, hLo, hHi)
			if len(hSel) < 2 || len(vSel) < 2 {
				continue
			}
			if region := te.buildRegion(hSel, vSel); region != nil {
				regions = append(regions, *region)
			}
		}
	}

	return regions
}

// ruleSpan returns a rule's extent along its own axis.
func ruleSpan(l LineObject, horizontal bool) (float64, float64) {
	if horizontal {
		return min(l.X0, l.X1), max(l.X0, l.X1)
	}
	return min(l.Top, l.Bottom), max(l.Top, l.Bottom)
}

// rulePos returns a rule's coordinate on the axis perpendicular to it.
func rulePos(l LineObject, horizontal bool) float64 {
	if horizontal {
		return l.Top
	}
	return l.X0
}

// rulesExtent returns the combined span of a rule group along its own axis.
func rulesExtent(lines []LineObject, horizontal bool) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		s, e := ruleSpan(l, horizontal)
		lo = min(lo, s)
		hi = max(hi, e)
	}
	return lo, hi
}

// rulesWithin keeps the rules positioned inside [lo, hi] on the
// perpendicular axis, within the snap tolerance.
func (te *tableExtractor) rulesWithin(lines []LineObject, horizontal bool, lo, hi float64) []LineObject {
	var out []LineObject
	for _, l := range lines {
		if p := rulePos(l, horizontal); p >= lo-te.snapTolerance && p <= hi+te.snapTolerance {
			out = append(out, l)
		}
	}
	return out
}

// groupRules clusters rules whose spans along their own axis overlap, so a
// rule lands in a group with the rules it can form a grid with. Horizontal
// rules of side-by-side tables have disjoint X spans and split apart;
// vertical rules of stacked tables split the same way on their Y spans. A
// rule's position on the perpendicular axis plays no part here.
func (te *tableExtractor) groupRules(lines []LineObject, horizontal bool) [][]LineObject {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]LineObject, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		si, _ := ruleSpan(sorted[i], horizontal)
		sj, _ := ruleSpan(sorted[j], horizontal)
		return si < sj
	})

	var groups [][]LineObject
	current := []LineObject{sorted[0]}
	_, reach := ruleSpan(sorted[0], horizontal)

	for _, l := range sorted[1:] {
		s, e := ruleSpan(l, horizontal)
		if s > reach+te.snapTolerance {
			groups = append(groups, current)
			current = nil
			reach = e
		} else if e > reach {
			reach = e
		}
		current = append(current, l)
	}
	groups = append(groups, current)

	return groups
}

// buildRegion snaps rule positions to a grid and derives the cell boxes.
func (te *tableExtractor) buildRegion(hGroup, vGroup []LineObject) *gridRegion {
	rowEdges := te.snapPositions(hGroup, true)
	colEdges := te.snapPositions(vGroup, false)
	if len(rowEdges) < 2 || len(colEdges) < 2 {
		return nil
	}

	cells := make([][]BoundingBox, len(rowEdges)-1)
	for i := 0; i < len(rowEdges)-1; i++ {
		cells[i] = make([]BoundingBox, len(colEdges)-1)
		for j := 0; j < len(colEdges)-1; j++ {
			cells[i][j] = BoundingBox{
				X0:     colEdges[j],
				Top:    rowEdges[i],
				X1:     colEdges[j+1],
				Bottom: rowEdges[i+1],
			}
		}
	}

	return &gridRegion{
		bbox: BoundingBox{
			X0:     colEdges[0],
			Top:    rowEdges[0],
			X1:     colEdges[len(colEdges)-1],
			Bottom: rowEdges[len(rowEdges)-1],
		},
		cells: cells,
	}
}

// snapPositions rounds rule positions to the snap tolerance and returns the
// sorted unique values.
func (te *tableExtractor) snapPositions(lines []LineObject, horizontal bool) []float64 {
	seen := make(map[float64]bool)
	for _, line := range lines {
		p := line.X0
		if horizontal {
			p = line.Top
		}
		seen[math.Round(p/te.snapTolerance)*te.snapTolerance] = true
	}

	positions := make([]float64, 0, len(seen))
	for p := range seen {
		positions = append(positions, p)
	}
	sort.Float64s(positions)

	return positions
}

// tableFromRegion fills the region's cells with the text of the characters
// whose centers fall inside each cell.
func (te *tableExtractor) tableFromRegion(region gridRegion, chars []CharObject) Table {
	rows := make([][]string, len(region.cells))
	for i, cellRow := range region.cells {
		rows[i] = make([]string, len(cellRow))
		for j, cell := range cellRow {
			rows[i][j] = te.cellText(cell, chars)
		}
	}

	return Table{
		Rows:  rows,
		Cells: region.cells,
		BBox:  region.bbox,
	}
}

// cellText joins the text of characters centered inside the cell, with
// spaces between words and newlines between wrapped lines.
func (te *tableExtractor) cellText(cell BoundingBox, chars []CharObject) string {
	var cellChars []CharObject
	for _, char := range chars {
		b := char.GetBBox()
		if cell.Contains((b.X0+b.X1)/2, (b.Top+b.Bottom)/2) {
			cellChars = append(cellChars, char)
		}
	}
	if len(cellChars) == 0 {
		return ""
	}

	sort.Slice(cellChars, func(i, j int) bool {
		if math.Abs(cellChars[i].Top-cellChars[j].Top) > te.textTolerance {
			return cellChars[i].Top < cellChars[j].Top
		}
		return cellChars[i].X0 < cellChars[j].X0
	})

	var sb strings.Builder
	lastTop, lastX1 := math.Inf(-1), math.Inf(-1)
	for _, char := range cellChars {
		switch {
		case sb.Len() > 0 && math.Abs(char.Top-lastTop) > te.textTolerance:
			sb.WriteByte('\n')
		case sb.Len() > 0 && char.X0-lastX1 > te.textTolerance:
			sb.WriteByte(' ')
		}
		sb.WriteString(char.Text)
		lastTop, lastX1 = char.Top, char.X1
	}

	return sb.String()
}

// extractFromText detects a table from word column alignment when no ruled
// grid exists. Cells carry approximate boxes derived from the column spans.
func (te *tableExtractor) extractFromText() []Table {
	words := te.page.ExtractWords()
	if len(words) == 0 {
		return nil
	}

	lines := te.groupWordRows(words)
	columns := te.alignedColumns(lines)
	if len(columns) < 2 || len(lines) < te.minTableSize {
		return nil
	}

	table := te.tableFromWordRows(lines, columns)
	if len(table.Rows) < te.minTableSize {
		return nil
	}

	return []Table{table}
}

type wordRow struct {
	words []Word
	bbox  BoundingBox
}

// groupWordRows clusters words into rows by vertical proximity.
func (te *tableExtractor) groupWordRows(words []Word) []wordRow {
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].BBox.Top < sorted[j].BBox.Top })

	var rows []wordRow
	current := wordRow{words: []Word{sorted[0]}, bbox: sorted[0].BBox}

	for _, w := range sorted[1:] {
		if math.Abs(w.BBox.Top-current.bbox.Top) < te.textTolerance {
			current.words = append(current.words, w)
			current.bbox = unionBBox(current.bbox, w.BBox)
		} else {
			rows = append(rows, finalizeWordRow(current))
			current = wordRow{words: []Word{w}, bbox: w.BBox}
		}
	}
	rows = append(rows, finalizeWordRow(current))

	return rows
}

func finalizeWordRow(row wordRow) wordRow {
	sort.Slice(row.words, func(i, j int) bool { return row.words[i].BBox.X0 < row.words[j].BBox.X0 })
	return row
}

func unionBBox(a, b BoundingBox) BoundingBox {
	return BoundingBox{
		X0:     min(a.X0, b.X0),
		Top:    min(a.Top, b.Top),
		X1:     max(a.X1, b.X1),
		Bottom: max(a.Bottom, b.Bottom),
	}
}

// alignedColumns finds X positions where word starts repeat across rows.
func (te *tableExtractor) alignedColumns(rows []wordRow) []float64 {
	if len(rows) < 2 {
		return nil
	}

	counts := make(map[float64]int)
	for _, row := range rows {
		for _, w := range row.words {
			x := math.Round(w.BBox.X0/te.snapTolerance) * te.snapTolerance
			counts[x]++
		}
	}

	minCount := len(rows) * 3 / 10
	if minCount < 2 {
		minCount = 2
	}

	var columns []float64
	for x, count := range counts {
		if count >= minCount {
			columns = append(columns, x)
		}
	}
	sort.Float64s(columns)

	return columns
}

// tableFromWordRows assigns each word to its nearest column and joins cell
// text with spaces.
func (te *tableExtractor) tableFromWordRows(rows []wordRow, columns []float64) Table {
	bbox := rows[0].bbox
	for _, row := range rows[1:] {
		bbox = unionBBox(bbox, row.bbox)
	}

	colRight := func(j int) float64 {
		if j+1 < len(columns) {
			return columns[j+1]
		}
		return bbox.X1
	}

	textRows := make([][]string, len(rows))
	cells := make([][]BoundingBox, len(rows))

	for i, row := range rows {
		textRows[i] = make([]string, len(columns))
		cells[i] = make([]BoundingBox, len(columns))
		for j := range columns {
			cells[i][j] = BoundingBox{
				X0:     columns[j],
				Top:    row.bbox.Top,
				X1:     colRight(j),
				Bottom: row.bbox.Bottom,
			}
		}

		for _, w := range row.words {
			j := te.nearestColumn(w.BBox.X0, columns)
			if j < 0 {
				continue
			}
			if textRows[i][j] != "" {
				textRows[i][j] += " "
			}
			textRows[i][j] += w.Text
		}
	}

	return Table{Rows: textRows, Cells: cells, BBox: bbox}
}

// nearestColumn returns the index of the column closest to x, or -1 when no
// column is within three snap tolerances.
func (te *tableExtractor) nearestColumn(x float64, columns []float64) int {
	best, bestDist := -1, math.MaxFloat64
	for i, colX := range columns {
		if d := math.Abs(x - colX); d < bestDist && d < te.snapTolerance*3 {
			best, bestDist = i, d
		}
	}
	return best
}
