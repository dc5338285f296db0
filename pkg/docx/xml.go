package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// xmlDocument is the root of word/document.xml.
type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	Body    xmlBody  `xml:"w:body"`
}

// xmlBody holds the document blocks in insertion order followed by the
// section properties. Paragraphs and tables interleave, so marshaling is
// manual.
type xmlBody struct {
	Blocks []any
	SectPr xmlSectPr
}

func (b xmlBody) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:body"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, block := range b.Blocks {
		if err := e.Encode(block); err != nil {
			return err
		}
	}
	if err := e.Encode(b.SectPr); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

// xmlVal is the generic single-attribute element (<w:jc w:val="..."/>).
type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

// xmlEmpty marks toggle properties such as <w:b/>.
type xmlEmpty struct{}

// xmlParagraph represents a paragraph element (<w:p>).
type xmlParagraph struct {
	XMLName xml.Name      `xml:"w:p"`
	Props   *xmlParaProps `xml:"w:pPr,omitempty"`
	Runs    []xmlRun
}

// xmlParaProps represents paragraph properties (<w:pPr>).
type xmlParaProps struct {
	Style         *xmlVal `xml:"w:pStyle,omitempty"`
	Justification *xmlVal `xml:"w:jc,omitempty"`
}

// xmlRun represents a text run (<w:r>).
type xmlRun struct {
	XMLName xml.Name     `xml:"w:r"`
	Props   *xmlRunProps `xml:"w:rPr,omitempty"`
	Text    xmlText      `xml:"w:t"`
}

// xmlRunProps represents run properties (<w:rPr>). Field order follows the
// schema sequence: rFonts, b, sz, szCs.
type xmlRunProps struct {
	Fonts  *xmlFonts `xml:"w:rFonts,omitempty"`
	Bold   *xmlEmpty `xml:"w:b,omitempty"`
	Size   *xmlVal   `xml:"w:sz,omitempty"`
	SizeCs *xmlVal   `xml:"w:szCs,omitempty"`
}

// xmlFonts represents font settings (<w:rFonts>).
type xmlFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

// xmlText represents text content (<w:t>).
type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

// xmlTable represents a table (<w:tbl>).
type xmlTable struct {
	XMLName xml.Name      `xml:"w:tbl"`
	Props   xmlTableProps `xml:"w:tblPr"`
	Grid    xmlTableGrid  `xml:"w:tblGrid"`
	Rows    []xmlTableRow
}

// xmlTableProps represents table properties (<w:tblPr>).
type xmlTableProps struct {
	Style *xmlVal        `xml:"w:tblStyle,omitempty"`
	Width *xmlTableWidth `xml:"w:tblW,omitempty"`
}

// xmlTableWidth represents table and cell widths (<w:tblW>, <w:tcW>).
type xmlTableWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

// xmlTableGrid represents the grid definition (<w:tblGrid>).
type xmlTableGrid struct {
	Cols []xmlGridCol
}

func (g xmlTableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblGrid"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, col := range g.Cols {
		if err := e.Encode(col); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// xmlGridCol represents a grid column (<w:gridCol>).
type xmlGridCol struct {
	XMLName xml.Name `xml:"w:gridCol"`
	W       int      `xml:"w:w,attr"`
}

// xmlTableRow represents a table row (<w:tr>).
type xmlTableRow struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []xmlTableCell
}

// xmlTableCell represents a table cell (<w:tc>).
type xmlTableCell struct {
	XMLName    xml.Name      `xml:"w:tc"`
	Props      *xmlCellProps `xml:"w:tcPr,omitempty"`
	Paragraphs []xmlParagraph
}

// xmlCellProps represents cell properties (<w:tcPr>).
type xmlCellProps struct {
	Width    *xmlTableWidth `xml:"w:tcW,omitempty"`
	GridSpan *xmlVal        `xml:"w:gridSpan,omitempty"`
}

// xmlSectPr represents section properties (<w:sectPr>).
type xmlSectPr struct {
	XMLName xml.Name `xml:"w:sectPr"`
	PgSz    xmlPgSz  `xml:"w:pgSz"`
	PgMar   xmlPgMar `xml:"w:pgMar"`
}

// xmlPgSz represents the page size in twips (<w:pgSz>).
type xmlPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

// xmlPgMar represents page margins in twips (<w:pgMar>).
type xmlPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}
