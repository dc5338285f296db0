package pdf

import (
	"testing"
)

// charAt builds a character with a fixed 5-unit advance on the given line.
func charAt(text string, x, top float64) CharObject {
	return CharObject{
		Text:   text,
		Font:   "Helvetica",
		Size:   10,
		X0:     x,
		Top:    top,
		X1:     x + 5,
		Bottom: top + 10,
		Width:  5,
		Height: 10,
	}
}

func TestExtractWords(t *testing.T) {
	tests := []struct {
		name     string
		chars    []CharObject
		expected []string
	}{
		{
			name:     "Empty page",
			chars:    nil,
			expected: nil,
		},
		{
			name: "Single word",
			chars: []CharObject{
				charAt("H", 10, 100),
				charAt("i", 15, 100),
			},
			expected: []string{"Hi"},
		},
		{
			name: "Gap splits words",
			chars: []CharObject{
				charAt("a", 10, 100),
				charAt("b", 15, 100),
				charAt("c", 30, 100),
			},
			expected: []string{"ab", "c"},
		},
		{
			name: "Separate lines",
			chars: []CharObject{
				charAt("a", 10, 100),
				charAt("b", 10, 120),
			},
			expected: []string{"a", "b"},
		},
		{
			name: "Same line within tolerance",
			chars: []CharObject{
				charAt("a", 10, 100),
				charAt("b", 15, 102),
			},
			expected: []string{"ab"},
		},
		{
			name: "Unsorted input",
			chars: []CharObject{
				charAt("c", 30, 100),
				charAt("a", 10, 100),
				charAt("b", 15, 100),
			},
			expected: []string{"ab", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := extractWords(tt.chars, defaultXTolerance, defaultYTolerance)
			if len(words) != len(tt.expected) {
				t.Fatalf("got %d words, want %d", len(words), len(tt.expected))
			}
			for i, want := range tt.expected {
				if words[i].Text != want {
					t.Errorf("word %d = %q, want %q", i, words[i].Text, want)
				}
			}
		})
	}
}

func TestWordBBox(t *testing.T) {
	words := extractWords([]CharObject{
		charAt("a", 10, 100),
		charAt("b", 15, 100),
		charAt("c", 20, 100),
	}, defaultXTolerance, defaultYTolerance)

	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}

	bbox := words[0].BBox
	if bbox.X0 != 10 || bbox.X1 != 25 {
		t.Errorf("word X span = [%.1f, %.1f], want [10, 25]", bbox.X0, bbox.X1)
	}
	if bbox.Top != 100 || bbox.Bottom != 110 {
		t.Errorf("word Y span = [%.1f, %.1f], want [100, 110]", bbox.Top, bbox.Bottom)
	}
}

func TestWordBold(t *testing.T) {
	tests := []struct {
		font string
		bold bool
	}{
		{"Helvetica", false},
		{"Helvetica-Bold", true},
		{"ABCDEF+Arial-BoldMT", true},
		{"Times-Italic", false},
		{"", false},
	}

	for _, tt := range tests {
		w := Word{Font: tt.font}
		if got := w.Bold(); got != tt.bold {
			t.Errorf("Bold() for font %q = %v, want %v", tt.font, got, tt.bold)
		}
	}
}

func TestExtractLines(t *testing.T) {
	chars := []CharObject{
		charAt("H", 10, 100),
		charAt("i", 15, 100),
		charAt("y", 40, 100),
		charAt("o", 45, 100),
		charAt("b", 10, 130),
		charAt("y", 15, 130),
		charAt("e", 20, 130),
	}

	lines := extractLines(chars, defaultXTolerance, defaultYTolerance)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	if lines[0].Text != "Hi yo" {
		t.Errorf("line 0 text = %q, want %q", lines[0].Text, "Hi yo")
	}
	if len(lines[0].Words) != 2 {
		t.Errorf("line 0 has %d words, want 2", len(lines[0].Words))
	}
	if lines[1].Text != "bye" {
		t.Errorf("line 1 text = %q, want %q", lines[1].Text, "bye")
	}

	// line bbox spans all its words
	if lines[0].BBox.X0 != 10 || lines[0].BBox.X1 != 50 {
		t.Errorf("line 0 X span = [%.1f, %.1f], want [10, 50]", lines[0].BBox.X0, lines[0].BBox.X1)
	}
}

func TestExtractText(t *testing.T) {
	chars := []CharObject{
		charAt("a", 10, 100),
		charAt("b", 30, 100),
		charAt("c", 10, 130),
	}

	got := extractText(chars, defaultXTolerance, defaultYTolerance)
	want := "a b\nc"
	if got != want {
		t.Errorf("extractText() = %q, want %q", got, want)
	}
}

func TestWordNormalization(t *testing.T) {
	// e followed by combining acute accent should normalize to a single rune
	chars := []CharObject{
		charAt("e", 10, 100),
		charAt("́", 14, 100),
	}
	chars[1].X1 = 16

	words := extractWords(chars, defaultXTolerance, defaultYTolerance)
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].Text != "é" {
		t.Errorf("word text = %q, want %q", words[0].Text, "é")
	}
}
