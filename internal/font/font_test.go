package font

import "testing"

func TestLookupSupportedCharacters(t *testing.T) {
	supported := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 !?.,-'#"
	for _, r := range supported {
		if _, ok := Lookup(r); !ok {
			t.Errorf("Expected %q to be in the font", r)
		}
	}
}

func TestLookupUnsupportedCharacters(t *testing.T) {
	for _, r := range "abz@%$€한" {
		if _, ok := Lookup(r); ok {
			t.Errorf("Expected %q to not be in the font", r)
		}
	}
}

func TestGlyphLit(t *testing.T) {
	g, ok := Lookup('T')
	if !ok {
		t.Fatal("Expected 'T' to be in the font")
	}

	// Top row of 'T' is fully lit
	for x := 0; x < Width; x++ {
		if !g.Lit(x, 0) {
			t.Errorf("Expected T pixel (%d, 0) to be lit", x)
		}
	}

	// The stem occupies only the middle column below the top row
	for y := 1; y < Height; y++ {
		for x := 0; x < Width; x++ {
			want := x == 2
			if got := g.Lit(x, y); got != want {
				t.Errorf("T pixel (%d, %d): got lit=%t, want %t", x, y, got, want)
			}
		}
	}
}

func TestGlyphLitOutOfRange(t *testing.T) {
	g, _ := Lookup('A')
	cases := [][2]int{{-1, 0}, {0, -1}, {Width, 0}, {0, Height}}
	for _, c := range cases {
		if g.Lit(c[0], c[1]) {
			t.Errorf("Expected out-of-range pixel (%d, %d) to be unlit", c[0], c[1])
		}
	}
}

func TestLitCount(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{' ', 0},
		{'I', 15}, // two full rows of 5 plus a 5-pixel stem
		{'H', 17}, // six rows of 2 plus one full row
		{'L', 11},
		{'.', 1},
		{'-', 5},
	}

	for _, tt := range tests {
		g, ok := Lookup(tt.r)
		if !ok {
			t.Fatalf("Expected %q to be in the font", tt.r)
		}
		if got := g.LitCount(); got != tt.want {
			t.Errorf("LitCount(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestBlankIsEmpty(t *testing.T) {
	if Blank.LitCount() != 0 {
		t.Errorf("Expected blank glyph to have no lit pixels, got %d", Blank.LitCount())
	}
}
