package expr

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"x",
		"x+1",
		"(a+b)*c",
		`\frac{a}{b}`,
		`\frac{x+1}{2}`,
		`x^{2}`,
		`x_{i}`,
		`x^{2}+\frac{1}{y}`,
		`{a+b}`,
		`\alpha+\beta`,
		`\frac{\frac{a}{b}}{c}`,
	}

	for _, src := range tests {
		row, err := Parse(src)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", src, err)
			continue
		}
		if got := Serialize(row); got != src {
			t.Errorf("round trip %q = %q", src, got)
		}
	}
}

func TestParseNormalizesScripts(t *testing.T) {
	// Unbraced single-symbol scripts serialize in braced form.
	row, err := Parse("x^2")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := Serialize(row); got != "x^{2}" {
		t.Errorf("got %q, want %q", got, "x^{2}")
	}
}

func TestParseSkipsWhitespace(t *testing.T) {
	row, err := Parse("x + 1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := Serialize(row); got != "x+1" {
		t.Errorf("got %q, want %q", got, "x+1")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated group", "{a"},
		{"unmatched close", "a}"},
		{"missing frac args", `\frac{a}`},
		{"missing frac braces", `\frac ab`},
		{"dangling script", "x^"},
		{"empty command", `\`},
		{"bad rune", "a#b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.src); !errors.Is(err, ErrParse) {
				t.Errorf("Parse(%q) = %v, want ErrParse", tt.src, err)
			}
		})
	}
}

func TestParseFracStructure(t *testing.T) {
	row, err := Parse(`\frac{a+b}{c}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(row) != 1 || row[0].Kind != KindFrac {
		t.Fatalf("expected single frac node, got %v", row)
	}
	if len(row[0].Args) != 2 {
		t.Fatalf("frac args = %d, want 2", len(row[0].Args))
	}
	if len(row[0].Args[0]) != 3 {
		t.Errorf("numerator nodes = %d, want 3", len(row[0].Args[0]))
	}
}

func TestCloneIndependence(t *testing.T) {
	row, err := Parse(`\frac{a}{b}+c`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	clone := Clone(row)
	row[0].Args[0][0].Text = "z"

	if clone[0].Args[0][0].Text != "a" {
		t.Error("clone was modified through original")
	}
}

func TestResolve(t *testing.T) {
	row, err := Parse(`\frac{a+b}{c}+x`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		name    string
		path    Path
		wantErr bool
	}{
		{"root start", RootPath(), false},
		{"root end", EndPath(row), false},
		{"numerator", Path{0, 0, 1}, false},
		{"denominator end", Path{0, 1, 1}, false},
		{"offset past end", Path{4}, true},
		{"node index out of range", Path{3, 0, 0}, true},
		{"arg index out of range", Path{0, 2, 0}, true},
		{"even length", Path{0, 0}, true},
		{"empty", Path{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(row, tt.path)
			if tt.wantErr && !errors.Is(err, ErrBadPath) {
				t.Errorf("Resolve(%v) = %v, want ErrBadPath", tt.path, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Resolve(%v) failed: %v", tt.path, err)
			}
		})
	}
}

func TestPathEqual(t *testing.T) {
	if !(Path{0, 1, 2}).Equal(Path{0, 1, 2}) {
		t.Error("equal paths reported unequal")
	}
	if (Path{0}).Equal(Path{0, 0, 0}) {
		t.Error("different lengths reported equal")
	}
	if (Path{1}).Equal(Path{2}) {
		t.Error("different offsets reported equal")
	}
}
