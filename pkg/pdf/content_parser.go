package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// contentParser interprets a page content stream and collects characters and
// graphics primitives. Coordinates are converted from PDF space (bottom-left
// origin, Y up) to page space (top-left origin, Y down) as objects are
// emitted.
type contentParser struct {
	ctx        *model.Context
	pageHeight float64

	fonts map[string]*fontInfo

	gs      graphicsState
	gsStack []graphicsState

	text textState

	textMatrix matrix
	lineMatrix matrix

	path []pathElement

	objects Objects
}

// graphicsState is the subset of the PDF graphics state the converter needs.
type graphicsState struct {
	ctm       matrix
	lineWidth float64
}

// textState is the subset of the PDF text state the converter needs.
type textState struct {
	font      *fontInfo
	fontSize  float64
	charSpace float64
	wordSpace float64
	scale     float64
	leading   float64
	rise      float64
}

// fontInfo describes one font from the page resources.
type fontInfo struct {
	resourceName string
	baseFont     string
	encoding     string
	toUnicode    *toUnicodeCMap
}

// name returns the font name used for style heuristics: the real BaseFont
// when the font dictionary carries one, the resource key otherwise.
func (f *fontInfo) name() string {
	if f.baseFont != "" {
		return f.baseFont
	}
	return f.resourceName
}

type pathElement struct {
	op string // "move", "line", "close"
	x  float64
	y  float64
}

type matrix struct {
	a, b, c, d, e, f float64
}

func identityMatrix() matrix {
	return matrix{a: 1, d: 1}
}

func translationMatrix(tx, ty float64) matrix {
	return matrix{a: 1, d: 1, e: tx, f: ty}
}

func mulMatrix(m1, m2 matrix) matrix {
	return matrix{
		a: m1.a*m2.a + m1.b*m2.c,
		b: m1.a*m2.b + m1.b*m2.d,
		c: m1.c*m2.a + m1.d*m2.c,
		d: m1.c*m2.b + m1.d*m2.d,
		e: m1.e*m2.a + m1.f*m2.c + m2.e,
		f: m1.e*m2.b + m1.f*m2.d + m2.f,
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func newContentParser(ctx *model.Context, pageDict types.Dict, pageHeight float64) *contentParser {
	p := &contentParser{
		ctx:        ctx,
		pageHeight: pageHeight,
		fonts:      make(map[string]*fontInfo),
		gs:         graphicsState{ctm: identityMatrix(), lineWidth: 1.0},
		text:       textState{fontSize: 12, scale: 100},
		textMatrix: identityMatrix(),
		lineMatrix: identityMatrix(),
	}

	if res := pageDict["Resources"]; res != nil {
		if resDict := p.dereferenceDict(res); resDict != nil {
			p.loadFonts(resDict)
		}
	}

	return p
}

// dereferenceDict resolves a possibly indirect object to a dictionary.
func (p *contentParser) dereferenceDict(obj types.Object) types.Dict {
	switch v := obj.(type) {
	case types.Dict:
		return v
	case types.IndirectRef:
		d, err := p.ctx.DereferenceDict(v)
		if err != nil {
			return nil
		}
		return d
	case *types.IndirectRef:
		d, err := p.ctx.DereferenceDict(*v)
		if err != nil {
			return nil
		}
		return d
	default:
		return nil
	}
}

// loadFonts reads the Font entry of the page resources into the parser's
// font table, including each font's ToUnicode CMap when present.
func (p *contentParser) loadFonts(resources types.Dict) {
	fonts := p.dereferenceDict(resources["Font"])
	if fonts == nil {
		return
	}

	for name, ref := range fonts {
		fontDict := p.dereferenceDict(ref)
		if fontDict == nil {
			continue
		}

		info := &fontInfo{resourceName: name}

		if bf, ok := fontDict["BaseFont"].(types.Name); ok {
			info.baseFont = string(bf)
		}
		if enc, ok := fontDict["Encoding"].(types.Name); ok {
			info.encoding = string(enc)
		}
		if data := p.streamContent(fontDict["ToUnicode"]); len(data) > 0 {
			info.toUnicode = parseToUnicodeCMap(data)
		}

		p.fonts[name] = info
	}
}

// streamContent resolves and decodes an indirect stream object.
func (p *contentParser) streamContent(obj types.Object) []byte {
	var ref types.IndirectRef
	switch v := obj.(type) {
	case types.IndirectRef:
		ref = v
	case *types.IndirectRef:
		ref = *v
	default:
		return nil
	}

	sd, _, err := p.ctx.DereferenceStreamDict(ref)
	if err != nil || sd == nil {
		return nil
	}
	if err := sd.Decode(); err != nil {
		return nil
	}
	return sd.Content
}

// parse tokenizes and interprets the content stream, returning the collected
// page objects.
func (p *contentParser) parse(content []byte) Objects {
	tokens := tokenize(content)

	var operands []string
	for _, token := range tokens {
		if isOperator(token) {
			p.apply(token, operands)
			operands = operands[:0]
		} else {
			operands = append(operands, token)
		}
	}

	return p.objects
}

var operators = map[string]struct{}{
	"BT": {}, "ET": {}, "Td": {}, "TD": {}, "Tm": {}, "T*": {}, "Tj": {}, "TJ": {}, "'": {}, "\"": {},
	"Tc": {}, "Tw": {}, "Tz": {}, "TL": {}, "Tf": {}, "Tr": {}, "Ts": {},
	"q": {}, "Q": {}, "cm": {}, "w": {}, "J": {}, "j": {}, "M": {}, "d": {}, "ri": {}, "i": {}, "gs": {},
	"m": {}, "l": {}, "c": {}, "v": {}, "y": {}, "h": {}, "re": {},
	"S": {}, "s": {}, "f": {}, "F": {}, "f*": {}, "B": {}, "B*": {}, "b": {}, "b*": {}, "n": {},
	"CS": {}, "cs": {}, "SC": {}, "SCN": {}, "sc": {}, "scn": {}, "G": {}, "g": {}, "RG": {}, "rg": {}, "K": {}, "k": {},
	"W": {}, "W*": {}, "BX": {}, "EX": {}, "Do": {}, "MP": {}, "DP": {}, "BMC": {}, "BDC": {}, "EMC": {},
	"BI": {}, "ID": {}, "EI": {}, "sh": {}, "d0": {}, "d1": {},
}

func isOperator(token string) bool {
	_, ok := operators[token]
	return ok
}

// apply executes one operator. Operators the converter does not care about
// (color, clipping, XObjects, marked content) are consumed without effect.
func (p *contentParser) apply(op string, operands []string) {
	switch op {
	case "BT":
		p.textMatrix = identityMatrix()
		p.lineMatrix = identityMatrix()
	case "ET":
		// text object closed; nothing to finalize

	case "Td":
		p.textMove(operands)
	case "TD":
		if len(operands) == 2 {
			p.text.leading = -parseFloat(operands[1])
		}
		p.textMove(operands)
	case "Tm":
		if len(operands) == 6 {
			p.textMatrix = matrix{
				a: parseFloat(operands[0]), b: parseFloat(operands[1]),
				c: parseFloat(operands[2]), d: parseFloat(operands[3]),
				e: parseFloat(operands[4]), f: parseFloat(operands[5]),
			}
			p.lineMatrix = p.textMatrix
		}
	case "T*":
		p.nextLine()

	case "Tj":
		if len(operands) == 1 {
			p.showString(operands[0])
		}
	case "TJ":
		p.showArray(operands)
	case "'":
		p.nextLine()
		if len(operands) == 1 {
			p.showString(operands[0])
		}
	case "\"":
		if len(operands) == 3 {
			p.text.wordSpace = parseFloat(operands[0])
			p.text.charSpace = parseFloat(operands[1])
			p.nextLine()
			p.showString(operands[2])
		}

	case "Tc":
		if len(operands) == 1 {
			p.text.charSpace = parseFloat(operands[0])
		}
	case "Tw":
		if len(operands) == 1 {
			p.text.wordSpace = parseFloat(operands[0])
		}
	case "Tz":
		if len(operands) == 1 {
			p.text.scale = parseFloat(operands[0])
		}
	case "TL":
		if len(operands) == 1 {
			p.text.leading = parseFloat(operands[0])
		}
	case "Tf":
		if len(operands) == 2 {
			name := strings.TrimPrefix(operands[0], "/")
			if font, ok := p.fonts[name]; ok {
				p.text.font = font
			}
			p.text.fontSize = parseFloat(operands[1])
		}
	case "Ts":
		if len(operands) == 1 {
			p.text.rise = parseFloat(operands[0])
		}

	case "q":
		p.gsStack = append(p.gsStack, p.gs)
	case "Q":
		if n := len(p.gsStack); n > 0 {
			p.gs = p.gsStack[n-1]
			p.gsStack = p.gsStack[:n-1]
		}
	case "cm":
		if len(operands) == 6 {
			m := matrix{
				a: parseFloat(operands[0]), b: parseFloat(operands[1]),
				c: parseFloat(operands[2]), d: parseFloat(operands[3]),
				e: parseFloat(operands[4]), f: parseFloat(operands[5]),
			}
			p.gs.ctm = mulMatrix(m, p.gs.ctm)
		}
	case "w":
		if len(operands) == 1 {
			p.gs.lineWidth = parseFloat(operands[0])
		}

	case "m":
		if len(operands) == 2 {
			p.path = append(p.path, pathElement{op: "move", x: parseFloat(operands[0]), y: parseFloat(operands[1])})
		}
	case "l":
		if len(operands) == 2 {
			p.path = append(p.path, pathElement{op: "line", x: parseFloat(operands[0]), y: parseFloat(operands[1])})
		}
	case "c", "v", "y":
		// curve endpoints are enough for table rules; control points dropped
		if len(operands) >= 2 {
			p.path = append(p.path, pathElement{
				op: "line",
				x:  parseFloat(operands[len(operands)-2]),
				y:  parseFloat(operands[len(operands)-1]),
			})
		}
	case "h":
		p.path = append(p.path, pathElement{op: "close"})
	case "re":
		if len(operands) == 4 {
			x, y := parseFloat(operands[0]), parseFloat(operands[1])
			w, h := parseFloat(operands[2]), parseFloat(operands[3])
			p.path = append(p.path,
				pathElement{op: "move", x: x, y: y},
				pathElement{op: "line", x: x + w, y: y},
				pathElement{op: "line", x: x + w, y: y + h},
				pathElement{op: "line", x: x, y: y + h},
				pathElement{op: "close"},
			)
		}

	case "S", "s":
		p.strokePath()
		p.path = nil
	case "f", "F", "f*":
		p.fillPath()
		p.path = nil
	case "B", "B*", "b", "b*":
		p.fillPath()
		p.strokePath()
		p.path = nil
	case "n":
		p.path = nil
	}
}

func (p *contentParser) textMove(operands []string) {
	if len(operands) != 2 {
		return
	}
	t := translationMatrix(parseFloat(operands[0]), parseFloat(operands[1]))
	p.lineMatrix = mulMatrix(t, p.lineMatrix)
	p.textMatrix = p.lineMatrix
}

func (p *contentParser) nextLine() {
	t := translationMatrix(0, -p.text.leading)
	p.lineMatrix = mulMatrix(t, p.lineMatrix)
	p.textMatrix = p.lineMatrix
}

// showString decodes one string operand and emits its characters.
func (p *contentParser) showString(operand string) {
	text, isHex := decodeStringOperand(operand)
	p.emitChars(p.decodeText(text, isHex))
}

// showArray handles the TJ operator: alternating strings and kerning
// adjustments in thousandths of text space.
func (p *contentParser) showArray(operands []string) {
	joined := strings.Join(operands, " ")
	if !strings.HasPrefix(joined, "[") || !strings.HasSuffix(joined, "]") {
		return
	}
	joined = strings.TrimSuffix(strings.TrimPrefix(joined, "["), "]")

	for _, elem := range splitTextArray(joined) {
		if strings.HasPrefix(elem, "(") || strings.HasPrefix(elem, "<") {
			text, isHex := decodeStringOperand(elem)
			p.emitChars(p.decodeText(text, isHex))
			continue
		}
		adjust := parseFloat(elem) / 1000.0 * p.text.fontSize
		p.textMatrix.e -= adjust * p.textMatrix.a
		p.textMatrix.f -= adjust * p.textMatrix.b
	}
}

// decodeText applies the current font's ToUnicode CMap to raw string bytes.
func (p *contentParser) decodeText(raw string, isHex bool) string {
	font := p.text.font
	if font == nil || font.toUnicode == nil {
		return raw
	}
	twoByte := strings.HasPrefix(font.encoding, "Identity") || isHex && font.toUnicode.hasWideCIDs()
	return font.toUnicode.Decode([]byte(raw), twoByte)
}

// emitChars lays out decoded text character by character, advancing the text
// matrix with approximate widths the way a viewer would. The page has no
// embedded metrics at this level, so widths are estimated per glyph class.
func (p *contentParser) emitChars(text string) {
	if text == "" {
		return
	}

	fontName := ""
	if p.text.font != nil {
		fontName = p.text.font.name()
	}

	for _, r := range text {
		ch := string(r)
		charWidth := glyphWidthFactor(ch) * p.text.fontSize

		tx, ty := p.textMatrix.e, p.textMatrix.f+p.text.rise
		x, y := p.gs.ctm.apply(tx, ty)

		if ch != " " && ch != "\t" {
			size := p.text.fontSize
			p.objects.Chars = append(p.objects.Chars, CharObject{
				Text:   ch,
				Font:   fontName,
				Size:   size,
				X0:     x,
				Top:    p.pageHeight - y - size*0.8,
				X1:     x + charWidth,
				Bottom: p.pageHeight - y + size*0.2,
				Width:  charWidth,
				Height: size,
			})
		}

		advance := charWidth + p.text.charSpace
		if ch == " " {
			advance += p.text.wordSpace
		}
		advance *= p.text.scale / 100.0

		p.textMatrix.e += advance * p.textMatrix.a
		p.textMatrix.f += advance * p.textMatrix.b
	}
}

// glyphWidthFactor estimates a glyph's advance as a fraction of the font
// size. Real widths live in the font program; this approximation is good
// enough for word grouping and alignment checks.
func glyphWidthFactor(ch string) float64 {
	switch ch {
	case " ":
		return 0.25
	case "i", "l", "I", "j", "!", ".", ",", ";", ":", "'", "\"", "|":
		return 0.3
	case "m", "M", "W", "w":
		return 0.8
	default:
		return 0.5
	}
}

// strokePath converts the current path into line objects.
func (p *contentParser) strokePath() {
	var curX, curY, startX, startY float64

	emit := func(x0, y0, x1, y1 float64) {
		px0, py0 := p.gs.ctm.apply(x0, y0)
		px1, py1 := p.gs.ctm.apply(x1, y1)
		p.objects.Lines = append(p.objects.Lines, LineObject{
			X0:     px0,
			Top:    p.pageHeight - py0,
			X1:     px1,
			Bottom: p.pageHeight - py1,
			Width:  p.gs.lineWidth,
		})
	}

	for _, elem := range p.path {
		switch elem.op {
		case "move":
			curX, curY = elem.x, elem.y
			startX, startY = elem.x, elem.y
		case "line":
			emit(curX, curY, elem.x, elem.y)
			curX, curY = elem.x, elem.y
		case "close":
			if curX != startX || curY != startY {
				emit(curX, curY, startX, startY)
				curX, curY = startX, startY
			}
		}
	}
}

// fillPath records rectangle-shaped filled paths; anything more complex is
// irrelevant to table detection.
func (p *contentParser) fillPath() {
	if !isRectPath(p.path) {
		return
	}

	minX, minY, maxX, maxY := pathBounds(p.path)
	x0, y0 := p.gs.ctm.apply(minX, minY)
	x1, y1 := p.gs.ctm.apply(maxX, maxY)

	p.objects.Rects = append(p.objects.Rects, RectObject{
		X0:     min(x0, x1),
		Top:    p.pageHeight - max(y0, y1),
		X1:     max(x0, x1),
		Bottom: p.pageHeight - min(y0, y1),
		Filled: true,
	})
}

func isRectPath(path []pathElement) bool {
	lines, closed := 0, false
	for _, elem := range path {
		switch elem.op {
		case "line":
			lines++
		case "close":
			closed = true
		}
	}
	return lines == 3 && closed || lines == 4
}

func pathBounds(path []pathElement) (minX, minY, maxX, maxY float64) {
	first := true
	for _, elem := range path {
		if elem.op == "close" {
			continue
		}
		if first {
			minX, maxX = elem.x, elem.x
			minY, maxY = elem.y, elem.y
			first = false
			continue
		}
		minX = min(minX, elem.x)
		maxX = max(maxX, elem.x)
		minY = min(minY, elem.y)
		maxY = max(maxY, elem.y)
	}
	return
}

// tokenize splits a content stream into operand and operator tokens.
func tokenize(content []byte) []string {
	var tokens []string
	reader := bytes.NewReader(content)

	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		if isWhitespace(b) {
			continue
		}

		switch b {
		case '(':
			tokens = append(tokens, "("+readStringLiteral(reader)+")")
		case '<':
			next, _ := reader.ReadByte()
			if next == '<' {
				tokens = append(tokens, "<<")
			} else {
				reader.UnreadByte()
				tokens = append(tokens, "<"+readHexLiteral(reader)+">")
			}
		case '>':
			next, _ := reader.ReadByte()
			if next == '>' {
				tokens = append(tokens, ">>")
			} else {
				reader.UnreadByte()
			}
		case '[':
			tokens = append(tokens, "[")
		case ']':
			tokens = append(tokens, "]")
		case '/':
			tokens = append(tokens, "/"+readRegular(reader))
		case '%':
			skipComment(reader)
		default:
			reader.UnreadByte()
			if tok := readRegular(reader); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}

	return tokens
}

func readStringLiteral(reader *bytes.Reader) string {
	var out []byte
	depth := 1

	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		switch b {
		case '\\':
			next, _ := reader.ReadByte()
			out = append(out, '\\', next)
		case '(':
			depth++
			out = append(out, b)
		case ')':
			depth--
			if depth == 0 {
				return string(out)
			}
			out = append(out, b)
		default:
			out = append(out, b)
		}
	}
	return string(out)
}

func readHexLiteral(reader *bytes.Reader) string {
	var out []byte
	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil || b == '>' {
			break
		}
		if !isWhitespace(b) {
			out = append(out, b)
		}
	}
	return string(out)
}

func readRegular(reader *bytes.Reader) string {
	var out []byte
	for reader.Len() > 0 {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}
		if isDelimiter(b) || isWhitespace(b) {
			reader.UnreadByte()
			break
		}
		out = append(out, b)
	}
	return string(out)
}

func skipComment(reader *bytes.Reader) {
	for reader.Len() > 0 {
		b, _ := reader.ReadByte()
		if b == '\n' || b == '\r' {
			break
		}
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

// decodeStringOperand turns a tokenized string operand into raw bytes,
// reporting whether the source was a hex string.
func decodeStringOperand(operand string) (string, bool) {
	if strings.HasPrefix(operand, "(") && strings.HasSuffix(operand, ")") {
		return unescapeLiteral(strings.TrimSuffix(strings.TrimPrefix(operand, "("), ")")), false
	}
	if strings.HasPrefix(operand, "<") && strings.HasSuffix(operand, ">") {
		return decodeHexOperand(strings.TrimSuffix(strings.TrimPrefix(operand, "<"), ">")), true
	}
	return operand, false
}

// unescapeLiteral resolves PDF string escape sequences.
func unescapeLiteral(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			out.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case '(', ')', '\\':
			out.WriteByte(s[i])
		default:
			if s[i] >= '0' && s[i] <= '7' {
				end := i + 3
				if end > len(s) {
					end = len(s)
				}
				j := i
				for j < end && s[j] >= '0' && s[j] <= '7' {
					j++
				}
				if v, err := strconv.ParseInt(s[i:j], 8, 16); err == nil {
					out.WriteByte(byte(v))
					i = j - 1
				} else {
					out.WriteByte(s[i])
				}
			} else {
				out.WriteByte(s[i])
			}
		}
	}
	return out.String()
}

func decodeHexOperand(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i += 2 {
		pair := s[i:min(i+2, len(s))]
		if len(pair) == 1 {
			pair += "0"
		}
		if v, err := strconv.ParseInt(pair, 16, 16); err == nil {
			out.WriteByte(byte(v))
		}
	}
	return out.String()
}

// splitTextArray splits the inside of a TJ array into string and number
// elements, respecting nested parentheses and hex strings.
func splitTextArray(s string) []string {
	var elements []string
	var current strings.Builder
	inString, inHex := false, false
	depth := 0

	flush := func() {
		if current.Len() > 0 {
			elements = append(elements, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if !inString && !inHex && isWhitespace(ch) {
			flush()
			continue
		}

		switch {
		case ch == '(' && !inHex:
			if inString && i > 0 && s[i-1] != '\\' {
				depth++
			} else if !inString {
				inString = true
				depth = 1
			}
			current.WriteByte(ch)
		case ch == ')' && inString:
			current.WriteByte(ch)
			if i > 0 && s[i-1] == '\\' {
				continue
			}
			depth--
			if depth == 0 {
				inString = false
				flush()
			}
		case ch == '<' && !inString:
			inHex = true
			current.WriteByte(ch)
		case ch == '>' && inHex:
			current.WriteByte(ch)
			inHex = false
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	return elements
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
