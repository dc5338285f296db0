package pdf

import (
	"testing"
)

func TestParseBFChar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[uint16]string
	}{
		{
			name: "Single mapping",
			input: `
				beginbfchar
				<0001> <0041>
				endbfchar
			`,
			expected: map[uint16]string{
				0x0001: "A",
			},
		},
		{
			name: "Multiple mappings",
			input: `
				beginbfchar
				<0001> <0041>
				<0002> <0042>
				<0003> <0043>
				endbfchar
			`,
			expected: map[uint16]string{
				0x0001: "A",
				0x0002: "B",
				0x0003: "C",
			},
		},
		{
			name: "Korean characters",
			input: `
				beginbfchar
				<0001> <AC00>
				<0002> <AC01>
				endbfchar
			`,
			expected: map[uint16]string{
				0x0001: "가",
				0x0002: "각",
			},
		},
		{
			name: "BOM-prefixed destinations",
			input: `
				beginbfchar
				<0001> <FEFF0041>
				<0002> <FEFF0042>
				endbfchar
			`,
			expected: map[uint16]string{
				0x0001: "A",
				0x0002: "B",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmap := parseToUnicodeCMap([]byte(tt.input))

			for cid, want := range tt.expected {
				got, ok := cmap.Lookup(cid)
				if !ok {
					t.Errorf("CID %04X not found in mapping", cid)
					continue
				}
				if got != want {
					t.Errorf("CID %04X: expected %q, got %q", cid, want, got)
				}
			}
		})
	}
}

func TestParseBFRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		testCIDs map[uint16]string
	}{
		{
			name: "Contiguous range",
			input: `
				beginbfrange
				<0001> <0005> <0041>
				endbfrange
			`,
			testCIDs: map[uint16]string{
				0x0001: "A",
				0x0002: "B",
				0x0003: "C",
				0x0004: "D",
				0x0005: "E",
			},
		},
		{
			name: "Array mapping",
			input: `
				beginbfrange
				<0001> <0003> [<0041> <0043> <0045>]
				endbfrange
			`,
			testCIDs: map[uint16]string{
				0x0001: "A",
				0x0002: "C",
				0x0003: "E",
			},
		},
		{
			name: "Multiple ranges",
			input: `
				beginbfrange
				<0001> <0003> <0041>
				<0010> <0012> <0061>
				endbfrange
			`,
			testCIDs: map[uint16]string{
				0x0001: "A",
				0x0002: "B",
				0x0003: "C",
				0x0010: "a",
				0x0011: "b",
				0x0012: "c",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmap := parseToUnicodeCMap([]byte(tt.input))

			for cid, want := range tt.testCIDs {
				got, ok := cmap.Lookup(cid)
				if !ok {
					t.Errorf("CID %04X not found in mapping", cid)
					continue
				}
				if got != want {
					t.Errorf("CID %04X: expected %q, got %q", cid, want, got)
				}
			}
		})
	}
}

func TestCMapDecode(t *testing.T) {
	cmap := parseToUnicodeCMap([]byte(`
		beginbfrange
		<0020> <007E> <0020>
		endbfrange
	`))

	tests := []struct {
		name     string
		input    []byte
		twoByte  bool
		expected string
	}{
		{
			name:     "Two-byte codes",
			input:    []byte{0x00, 0x48, 0x00, 0x65, 0x00, 0x6C, 0x00, 0x6C, 0x00, 0x6F},
			twoByte:  true,
			expected: "Hello",
		},
		{
			name:     "Single-byte codes",
			input:    []byte{0x48, 0x65, 0x6C, 0x6C, 0x6F},
			twoByte:  false,
			expected: "Hello",
		},
		{
			name:     "Unmapped bytes preserved",
			input:    []byte{0x48, 0x01, 0x65},
			twoByte:  false,
			expected: "H\x01e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmap.Decode(tt.input, tt.twoByte); got != tt.expected {
				t.Errorf("Decode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCMapLen(t *testing.T) {
	cmap := parseToUnicodeCMap(nil)
	if n := cmap.Len(); n != 0 {
		t.Errorf("empty CMap has %d mappings, expected 0", n)
	}

	cmap = parseToUnicodeCMap([]byte(`
		beginbfchar
		<0001> <0041>
		<0002> <0042>
		<0003> <0043>
		endbfchar
		beginbfrange
		<0010> <0015> <0061>
		endbfrange
	`))

	// 3 direct mappings + 6 range mappings (0010-0015 inclusive)
	if n := cmap.Len(); n != 9 {
		t.Errorf("CMap has %d mappings, expected 9", n)
	}
}

func TestHasWideCIDs(t *testing.T) {
	narrow := parseToUnicodeCMap([]byte(`
		beginbfrange
		<20> <7E> <0020>
		endbfrange
	`))
	if narrow.hasWideCIDs() {
		t.Error("single-byte CMap reported wide CIDs")
	}

	wide := parseToUnicodeCMap([]byte(`
		beginbfchar
		<0148> <AC00>
		endbfchar
	`))
	if !wide.hasWideCIDs() {
		t.Error("two-byte CMap not reported as wide")
	}
}

func TestRealWorldCMap(t *testing.T) {
	cmapData := `
		/CIDInit /ProcSet findresource begin
		12 dict begin
		begincmap
		/CIDSystemInfo
		<< /Registry (Adobe)
		/Ordering (UCS)
		/Supplement 0
		>> def
		/CMapName /Adobe-Identity-UCS def
		/CMapType 2 def
		1 begincodespacerange
		<0000> <FFFF>
		endcodespacerange
		3 beginbfchar
		<0003> <0020>
		<0048> <AC00>
		<0049> <AC01>
		endbfchar
		2 beginbfrange
		<004A> <004C> <AC02>
		<0050> <0052> [<AC10> <AC11> <AC12>]
		endbfrange
		endcmap
		CMapName currentdict /CMap defineresource pop
		end
		end
	`

	cmap := parseToUnicodeCMap([]byte(cmapData))

	// the contiguous range starts at U+AC02, so 4A..4C follow in sequence
	tests := map[uint16]string{
		0x0003: " ",
		0x0048: "가",
		0x0049: "각",
		0x004A: "갂",
		0x004B: "갃",
		0x004C: "간",
		0x0050: "감",
		0x0051: "갑",
		0x0052: "값",
	}

	for cid, want := range tests {
		got, ok := cmap.Lookup(cid)
		if !ok {
			t.Errorf("CID %04X not found", cid)
			continue
		}
		if got != want {
			t.Errorf("CID %04X: expected %q, got %q", cid, want, got)
		}
	}
}

func BenchmarkCMapLookup(b *testing.B) {
	cmap := parseToUnicodeCMap([]byte(`
		beginbfchar
		<0001> <0041>
		endbfchar
		beginbfrange
		<0010> <00FF> <0061>
		endbfrange
	`))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = cmap.Lookup(0x0001)
		_, _ = cmap.Lookup(0x0050)
	}
}
