package compose

import (
	"math"
	"testing"
)

func colorsClose(a, b RGBA) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#fff", White},
		{"000", Black},
		{"#f00", Red},
		{"#ff0000", Red},
		{"#ff000080", RGBA{R: 1, A: 128.0 / 255}},
		{"#f008", RGBA{R: 1, A: 136.0 / 255}},
		{"336699", RGBA{R: 0x33 / 255.0, G: 0x66 / 255.0, B: 0x99 / 255.0, A: 1}},
		{"", Black},       // malformed falls back to opaque black
		{"#12345", Black}, // odd length
	}
	for _, tt := range tests {
		if got := Hex(tt.in); !colorsClose(got, tt.want) {
			t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPremultiplyRoundTrip(t *testing.T) {
	c := RGBA{R: 0.8, G: 0.4, B: 0.2, A: 0.5}
	p := c.Premultiply()
	if !colorsClose(p, RGBA{R: 0.4, G: 0.2, B: 0.1, A: 0.5}) {
		t.Errorf("Premultiply() = %+v", p)
	}
	if back := p.Unpremultiply(); !colorsClose(back, c) {
		t.Errorf("round trip = %+v, want %+v", back, c)
	}
	if z := (RGBA{R: 0.5, A: 0}).Premultiply().Unpremultiply(); !colorsClose(z, Transparent) {
		t.Errorf("zero alpha round trip = %+v", z)
	}
}

func TestLerp(t *testing.T) {
	a := RGBA{R: 0, G: 1, B: 0.5, A: 1}
	b := RGBA{R: 1, G: 0, B: 0.5, A: 0}

	if got := a.Lerp(b, 0); !colorsClose(got, a) {
		t.Errorf("t=0: %+v", got)
	}
	if got := a.Lerp(b, 1); !colorsClose(got, b) {
		t.Errorf("t=1: %+v", got)
	}
	mid := a.Lerp(b, 0.5)
	if !colorsClose(mid, RGBA{R: 0.5, G: 0.5, B: 0.5, A: 0.5}) {
		t.Errorf("t=0.5: %+v", mid)
	}
}

func TestColorConversionRoundTrip(t *testing.T) {
	orig := RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}
	back := FromColor(orig.Color())
	const eps = 1.0 / 255
	if math.Abs(back.R-orig.R) > eps || math.Abs(back.G-orig.G) > eps ||
		math.Abs(back.B-orig.B) > eps || math.Abs(back.A-orig.A) > eps {
		t.Errorf("round trip %+v -> %+v", orig, back)
	}
}

func TestWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.25)
	if c.R != 1 || c.A != 0.25 {
		t.Errorf("WithAlpha = %+v", c)
	}
	if Red.A != 1 {
		t.Error("WithAlpha must not mutate the receiver")
	}
}
