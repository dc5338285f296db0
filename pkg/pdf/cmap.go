package pdf

import (
	"encoding/hex"
	"regexp"
	"strings"
)

// toUnicodeCMap maps character codes to Unicode text, parsed from a font's
// ToUnicode stream. Codes are treated as 16-bit CIDs, which covers both
// single-byte simple fonts and Identity-H composite fonts.
type toUnicodeCMap struct {
	direct map[uint16]string
	ranges []cmapRange
}

// cmapRange is one beginbfrange entry: either a contiguous offset mapping or
// an explicit destination array.
type cmapRange struct {
	startCID uint16
	endCID   uint16
	startUni rune
	array    []string
}

var (
	bfCharSection  = regexp.MustCompile(`beginbfchar\s*((?:<[0-9A-Fa-f]+>\s*<[0-9A-Fa-f]+>\s*)+)endbfchar`)
	bfCharMapping  = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>`)
	bfRangeSection = regexp.MustCompile(`beginbfrange\s*((?:<[0-9A-Fa-f]+>\s*<[0-9A-Fa-f]+>\s*(?:<[0-9A-Fa-f]+>|\[[^\]]*\])\s*)+)endbfrange`)
	bfRangeMapping = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*<([0-9A-Fa-f]+)>\s*(<[0-9A-Fa-f]+>|\[[^\]]*\])`)
	bfArrayItem    = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// parseToUnicodeCMap parses the bfchar and bfrange sections of a ToUnicode
// CMap stream. Unrecognized content is ignored; the zero map is still usable
// and simply reports no mappings.
func parseToUnicodeCMap(data []byte) *toUnicodeCMap {
	cmap := &toUnicodeCMap{direct: make(map[uint16]string)}
	content := string(data)

	for _, section := range bfCharSection.FindAllStringSubmatch(content, -1) {
		for _, m := range bfCharMapping.FindAllStringSubmatch(section[1], -1) {
			src, ok := hexToCID(m[1])
			if !ok {
				continue
			}
			if dst := hexToUnicode(m[2]); dst != "" {
				cmap.direct[src] = dst
			}
		}
	}

	for _, section := range bfRangeSection.FindAllStringSubmatch(content, -1) {
		for _, m := range bfRangeMapping.FindAllStringSubmatch(section[1], -1) {
			start, ok1 := hexToCID(m[1])
			end, ok2 := hexToCID(m[2])
			if !ok1 || !ok2 || end < start {
				continue
			}

			dst := m[3]
			if strings.HasPrefix(dst, "[") {
				var array []string
				for _, item := range bfArrayItem.FindAllStringSubmatch(dst, -1) {
					array = append(array, hexToUnicode(item[1]))
				}
				cmap.ranges = append(cmap.ranges, cmapRange{startCID: start, endCID: end, array: array})
				continue
			}

			uni := hexToUnicode(strings.Trim(dst, "<>"))
			if uni == "" {
				continue
			}
			cmap.ranges = append(cmap.ranges, cmapRange{
				startCID: start,
				endCID:   end,
				startUni: []rune(uni)[0],
			})
		}
	}

	return cmap
}

// Lookup maps a CID to its Unicode string.
func (c *toUnicodeCMap) Lookup(cid uint16) (string, bool) {
	if s, ok := c.direct[cid]; ok {
		return s, true
	}
	for _, r := range c.ranges {
		if cid < r.startCID || cid > r.endCID {
			continue
		}
		offset := cid - r.startCID
		if r.array != nil {
			if int(offset) < len(r.array) {
				return r.array[offset], true
			}
			return "", false
		}
		return string(r.startUni + rune(offset)), true
	}
	return "", false
}

// Decode maps a raw string of code bytes to Unicode. twoByte selects 2-byte
// CIDs (Identity-H style); otherwise each byte is a code on its own.
func (c *toUnicodeCMap) Decode(data []byte, twoByte bool) string {
	var sb strings.Builder

	if twoByte {
		for i := 0; i < len(data); i += 2 {
			var cid uint16
			if i+1 < len(data) {
				cid = uint16(data[i])<<8 | uint16(data[i+1])
			} else {
				cid = uint16(data[i])
			}
			if s, ok := c.Lookup(cid); ok {
				sb.WriteString(s)
			} else {
				sb.WriteByte(byte(cid))
			}
		}
		return sb.String()
	}

	for _, b := range data {
		if s, ok := c.Lookup(uint16(b)); ok {
			sb.WriteString(s)
		} else {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// Len returns the number of mapped codes.
func (c *toUnicodeCMap) Len() int {
	n := len(c.direct)
	for _, r := range c.ranges {
		if r.array != nil {
			n += len(r.array)
		} else {
			n += int(r.endCID-r.startCID) + 1
		}
	}
	return n
}

// hasWideCIDs reports whether any mapped code exceeds one byte, which marks
// the CMap as two-byte keyed.
func (c *toUnicodeCMap) hasWideCIDs() bool {
	for cid := range c.direct {
		if cid > 0xFF {
			return true
		}
	}
	for _, r := range c.ranges {
		if r.endCID > 0xFF {
			return true
		}
	}
	return false
}

// hexToCID parses a hex code as a 16-bit CID. Codes longer than two bytes
// keep their low-order two bytes.
func hexToCID(s string) (uint16, bool) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return 0, false
	}
	switch len(b) {
	case 1:
		return uint16(b[0]), true
	default:
		return uint16(b[len(b)-2])<<8 | uint16(b[len(b)-1]), true
	}
}

// hexToUnicode parses a hex destination as UTF-16BE text.
func hexToUnicode(s string) string {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return ""
	}

	switch {
	case len(b) == 1:
		return string(rune(b[0]))
	case len(b)%2 == 0:
		var sb strings.Builder
		for i := 0; i < len(b); i += 2 {
			unit := uint16(b[i])<<8 | uint16(b[i+1])
			if unit == 0xFEFF {
				continue
			}
			if unit >= 0xD800 && unit <= 0xDBFF && i+3 < len(b) {
				low := uint16(b[i+2])<<8 | uint16(b[i+3])
				if low >= 0xDC00 && low <= 0xDFFF {
					cp := 0x10000 + (uint32(unit)&0x3FF)<<10 + uint32(low)&0x3FF
					sb.WriteRune(rune(cp))
					i += 2
					continue
				}
			}
			sb.WriteRune(rune(unit))
		}
		return sb.String()
	default:
		return string(b)
	}
}
