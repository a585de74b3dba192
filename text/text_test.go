package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/compose"
)

func TestParseFont(t *testing.T) {
	src, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	if src.Name() == "" {
		t.Error("font name is empty")
	}

	if _, err := ParseFont(nil); err == nil {
		t.Error("empty data did not fail")
	}
	if _, err := ParseFont([]byte("not a font")); err == nil {
		t.Error("garbage data did not fail")
	}
}

func TestCachedSourceReuses(t *testing.T) {
	a, err := CachedSource(goregular.TTF)
	if err != nil {
		t.Fatalf("CachedSource: %v", err)
	}
	b, err := CachedSource(goregular.TTF)
	if err != nil {
		t.Fatalf("CachedSource: %v", err)
	}
	if a != b {
		t.Error("same font data parsed twice")
	}
}

func TestLayoutHeuristicExtents(t *testing.T) {
	tests := []struct {
		name       string
		layer      compose.TextLayer
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "single line",
			layer:      compose.TextLayer{Content: "Hello", FontSize: 10},
			wantWidth:  5 * 0.6 * 10,
			wantHeight: 10 * 1.2,
		},
		{
			name:       "multi line takes longest",
			layer:      compose.TextLayer{Content: "Hi\nLonger", FontSize: 10},
			wantWidth:  6 * 0.6 * 10,
			wantHeight: 2 * 10 * 1.2,
		},
		{
			name:       "explicit line height",
			layer:      compose.TextLayer{Content: "Hi", FontSize: 10, LineHeight: 2},
			wantWidth:  2 * 0.6 * 10,
			wantHeight: 10 * 2,
		},
		{
			name: "vertical swaps axes",
			layer: compose.TextLayer{
				Content: "Hi\nLonger", FontSize: 10,
				Writing: compose.WritingVerticalRL,
			},
			wantWidth:  2 * 10 * 1.2,
			wantHeight: 6 * 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LayoutLayer(&tt.layer, nil)
			if l.Width != tt.wantWidth || l.Height != tt.wantHeight {
				t.Errorf("extents = (%v, %v), want (%v, %v)",
					l.Width, l.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestLayoutBoxWrapping(t *testing.T) {
	layer := compose.TextLayer{
		Content:  "aa bb cc",
		FontSize: 10,
		Box:      &compose.TextBox{Width: 30, Height: 100},
	}

	// Heuristic advance: each rune is 6px, so "aa bb" is 30px and the
	// next word overflows the 30px box.
	l := LayoutLayer(&layer, nil)
	if len(l.Lines) != 2 {
		t.Fatalf("lines = %q, want 2 lines", l.Lines)
	}
	if l.Lines[0] != "aa bb" || l.Lines[1] != "cc" {
		t.Errorf("lines = %q", l.Lines)
	}
	if l.Width != 30 || l.Height != 100 {
		t.Errorf("box extents = (%v, %v), want (30, 100)", l.Width, l.Height)
	}
}

func TestLayoutOversizedWordGetsOwnLine(t *testing.T) {
	layer := compose.TextLayer{
		Content:  "a extraordinarily b",
		FontSize: 10,
		Box:      &compose.TextBox{Width: 40, Height: 100},
	}
	l := LayoutLayer(&layer, nil)
	if len(l.Lines) != 3 {
		t.Fatalf("lines = %q, want 3 lines", l.Lines)
	}
	if l.Lines[1] != "extraordinarily" {
		t.Errorf("long word line = %q", l.Lines[1])
	}
}

func TestRenderProducesGlyphCoverage(t *testing.T) {
	layer := compose.TextLayer{
		Content:  "Hg",
		FontData: goregular.TTF,
		FontSize: 24,
		Color:    compose.Black,
	}

	out, err := Render(&layer)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out == nil {
		t.Fatal("no output")
	}

	covered := 0
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if out.AlphaAt(x, y) > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("rendered text has no coverage")
	}
}

func TestRenderVerticalProducesCoverage(t *testing.T) {
	layer := compose.TextLayer{
		Content:  "AB\nCD",
		FontData: goregular.TTF,
		FontSize: 20,
		Color:    compose.Black,
		Writing:  compose.WritingVerticalRL,
	}

	out, err := Render(&layer)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out == nil {
		t.Fatal("no output")
	}

	// Two columns at line height 1.2 and two glyph cells per column.
	if out.Width() != 48 || out.Height() != 40 {
		t.Errorf("extents = (%d, %d), want (48, 40)", out.Width(), out.Height())
	}
	covered := 0
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if out.AlphaAt(x, y) > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Error("rendered text has no coverage")
	}
}

func TestRenderSkipsWithoutContentOrFont(t *testing.T) {
	tests := []struct {
		name  string
		layer compose.TextLayer
	}{
		{name: "empty content", layer: compose.TextLayer{FontData: goregular.TTF, FontSize: 12}},
		{name: "no font data", layer: compose.TextLayer{Content: "hi", FontSize: 12}},
		{name: "zero size", layer: compose.TextLayer{Content: "hi", FontData: goregular.TTF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(&tt.layer)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if out != nil {
				t.Error("expected nil output")
			}
		})
	}
}

func TestRenderBadFontData(t *testing.T) {
	layer := compose.TextLayer{Content: "hi", FontData: []byte("junk"), FontSize: 12}
	if _, err := Render(&layer); err == nil {
		t.Error("bad font data did not fail")
	}
}
