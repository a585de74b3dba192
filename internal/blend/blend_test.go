package blend

import (
	"math"
	"testing"

	"github.com/gogpu/compose"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBlendSeparableModes(t *testing.T) {
	backdrop := compose.RGBA{R: 0.5, G: 0.25, B: 1, A: 1}
	source := compose.RGBA{R: 0.5, G: 0.5, B: 0.25, A: 1}

	tests := []struct {
		mode    compose.BlendMode
		r, g, b float64
	}{
		{compose.BlendNormal, 0.5, 0.5, 0.25},
		{compose.BlendMultiply, 0.25, 0.125, 0.25},
		{compose.BlendScreen, 0.75, 0.625, 1},
		{compose.BlendDarken, 0.5, 0.25, 0.25},
		{compose.BlendLighten, 0.5, 0.5, 1},
		{compose.BlendDifference, 0, 0.25, 0.75},
		// exclusion: b + s - 2bs
		{compose.BlendExclusion, 0.5, 0.5, 0.75},
	}
	for _, tt := range tests {
		got := Blend(tt.mode, backdrop, source)
		if !approx(got.R, tt.r) || !approx(got.G, tt.g) || !approx(got.B, tt.b) {
			t.Errorf("%v: got (%v, %v, %v), want (%v, %v, %v)",
				tt.mode, got.R, got.G, got.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestBlendEdgeCases(t *testing.T) {
	// Color-dodge at Cs=1 and color-burn at Cs=0 hit their guard clauses.
	if got := Blend(compose.BlendColorDodge, compose.RGBA{R: 0.5}, compose.RGBA{R: 1}); !approx(got.R, 1) {
		t.Errorf("dodge(0.5, 1) = %v", got.R)
	}
	if got := Blend(compose.BlendColorBurn, compose.RGBA{R: 0.5}, compose.RGBA{R: 0}); !approx(got.R, 0) {
		t.Errorf("burn(0.5, 0) = %v", got.R)
	}
	// Hard-light splits at 0.5: below multiplies, above screens.
	if got := blendHardLight(0.5, 0.25); !approx(got, 0.25) {
		t.Errorf("hardlight(0.5, 0.25) = %v", got)
	}
	if got := blendHardLight(0.5, 0.75); !approx(got, 0.75) {
		t.Errorf("hardlight(0.5, 0.75) = %v", got)
	}
	// Soft-light uses the polynomial ramp below backdrop 0.25.
	if got := blendSoftLight(0.25, 1); !approx(got, 0.5) {
		t.Errorf("softlight(0.25, 1) = %v", got)
	}
}

// An out-of-range mode behaves as normal.
func TestBlendUnknownMode(t *testing.T) {
	src := compose.RGBA{R: 0.3, G: 0.6, B: 0.9, A: 1}
	for _, mode := range []compose.BlendMode{compose.BlendNormal, compose.BlendMode(99)} {
		r, g, b := blendRGB(mode, 0.1, 0.2, 0.3, src.R, src.G, src.B)
		if !approx(r, src.R) || !approx(g, src.G) || !approx(b, src.B) {
			t.Errorf("mode %d: (%v, %v, %v)", mode, r, g, b)
		}
	}
}

func TestHSLModes(t *testing.T) {
	// Luminosity keeps the source's luma, color keeps the backdrop's.
	b := compose.RGBA{R: 1, G: 0, B: 0, A: 1}
	s := compose.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}

	out := Blend(compose.BlendLuminosity, b, s)
	if !approx(Lum(out.R, out.G, out.B), Lum(s.R, s.G, s.B)) {
		t.Errorf("luminosity luma = %v, want %v", Lum(out.R, out.G, out.B), Lum(s.R, s.G, s.B))
	}

	out = Blend(compose.BlendColor, b, s)
	if !approx(Lum(out.R, out.G, out.B), Lum(b.R, b.G, b.B)) {
		t.Errorf("color luma = %v, want %v", Lum(out.R, out.G, out.B), Lum(b.R, b.G, b.B))
	}

	// Hue of a gray source leaves saturation at zero.
	out = Blend(compose.BlendHue, b, s)
	if !approx(out.R, out.G) || !approx(out.G, out.B) {
		t.Errorf("hue with gray source not achromatic: %+v", out)
	}
}

func TestOverAlpha(t *testing.T) {
	dst := compose.RGBA{R: 0, G: 0, B: 1, A: 0.5}
	src := compose.RGBA{R: 1, G: 0, B: 0, A: 0.5}

	out := Over(compose.BlendNormal, dst, src)
	if !approx(out.A, 0.75) {
		t.Errorf("outA = %v, want 0.75", out.A)
	}
	// Premultiplied sum: 0.5*1 + 0.25*0 = 0.5, un-premultiplied by 0.75.
	if !approx(out.R, 0.5/0.75) {
		t.Errorf("outR = %v, want %v", out.R, 0.5/0.75)
	}

	// Compositing onto nothing yields the source verbatim.
	out = Over(compose.BlendMultiply, compose.RGBA{}, src)
	if !approx(out.R, 1) || !approx(out.A, 0.5) {
		t.Errorf("over transparent = %+v", out)
	}

	// Nothing onto nothing stays nothing.
	if out := Over(compose.BlendNormal, compose.RGBA{}, compose.RGBA{}); out != (compose.RGBA{}) {
		t.Errorf("empty over = %+v", out)
	}
}

func TestDrawPositionAndClipping(t *testing.T) {
	dst := compose.NewPixmap(8, 8)
	src := compose.NewPixmap(4, 4)
	src.Fill(compose.Red)

	// Partially off the bottom-right corner.
	Draw(dst, src, 6, 6, compose.BlendNormal, 1)
	if dst.AlphaAt(7, 7) != 255 {
		t.Error("overlap region not drawn")
	}
	if dst.AlphaAt(5, 5) != 0 {
		t.Error("pixel outside source drawn")
	}

	// Fully outside: no-op, no panic.
	Draw(dst, src, -10, -10, compose.BlendNormal, 1)
	Draw(dst, src, 100, 100, compose.BlendNormal, 1)
}

func TestDrawOpacity(t *testing.T) {
	dst := compose.NewPixmap(2, 2)
	src := compose.NewPixmap(2, 2)
	src.Fill(compose.Red)

	Draw(dst, src, 0, 0, compose.BlendNormal, 0.5)
	if a := dst.AlphaAt(0, 0); a != 128 {
		t.Errorf("alpha = %d, want 128", a)
	}

	// Zero opacity is a no-op.
	dst.Clear()
	Draw(dst, src, 0, 0, compose.BlendNormal, 0)
	if dst.AlphaAt(0, 0) != 0 {
		t.Error("zero opacity drew pixels")
	}
}

func TestDrawMultiplyOverWhite(t *testing.T) {
	dst := compose.NewPixmap(1, 1)
	dst.Fill(compose.White)
	src := compose.NewPixmap(1, 1)
	src.Fill(compose.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})

	Draw(dst, src, 0, 0, compose.BlendMultiply, 1)
	got := dst.GetPixel(0, 0)
	if got.A != 1 {
		t.Fatalf("alpha = %v", got.A)
	}
	if math.Abs(got.R-0.5) > 2.0/255 {
		t.Errorf("multiply over white = %v, want ~0.5", got.R)
	}
}

func TestDrawClippedConfinement(t *testing.T) {
	dst := compose.NewPixmap(4, 4)
	// Only the left half has alpha.
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			dst.SetPixel(x, y, compose.Blue)
		}
	}
	src := compose.NewPixmap(4, 4)
	src.Fill(compose.Red)

	DrawClipped(dst, src, 0, 0, compose.BlendNormal, 1)

	if got := dst.GetPixel(0, 0); got.R != 1 {
		t.Errorf("clipped pixel inside footprint = %+v", got)
	}
	if a := dst.AlphaAt(3, 0); a != 0 {
		t.Errorf("pixel outside footprint deposited alpha %d", a)
	}
}

func TestDrawClippedKeepsBackdropAlpha(t *testing.T) {
	dst := compose.NewPixmap(1, 1)
	dst.SetPixel(0, 0, compose.Blue.WithAlpha(0.5))
	src := compose.NewPixmap(1, 1)
	src.Fill(compose.Red)

	DrawClipped(dst, src, 0, 0, compose.BlendNormal, 1)
	// Source-atop: an opaque clip replaces the color but the footprint's
	// coverage stays at the backdrop's 0.5.
	got := dst.GetPixel(0, 0)
	if math.Abs(got.A-0.5) > 2.0/255 {
		t.Errorf("alpha = %v, want ~0.5", got.A)
	}
	if got.R < 0.99 {
		t.Errorf("color = %+v, want red", got)
	}
}

func TestAtopHalfCoverSource(t *testing.T) {
	dst := compose.NewPixmap(1, 1)
	dst.SetPixel(0, 0, compose.Blue.WithAlpha(0.5))
	src := compose.NewPixmap(1, 1)
	src.SetPixel(0, 0, compose.Red.WithAlpha(0.5))

	DrawClipped(dst, src, 0, 0, compose.BlendNormal, 1)
	// Half-alpha source atop: color mixes 50/50, coverage unchanged.
	got := dst.GetPixel(0, 0)
	if math.Abs(got.A-0.5) > 2.0/255 {
		t.Errorf("alpha = %v, want ~0.5", got.A)
	}
	if math.Abs(got.R-0.5) > 2.0/255 || math.Abs(got.B-0.5) > 2.0/255 {
		t.Errorf("color = %+v, want half red half blue", got)
	}
}

func TestDrawMasked(t *testing.T) {
	dst := compose.NewPixmap(4, 1)
	src := compose.NewPixmap(4, 1)
	src.Fill(compose.Red)

	mask := &compose.AlphaMask{
		Data:   []uint8{255, 128, 0},
		Width:  3,
		Height: 1,
	}
	DrawMasked(dst, src, 0, 0, compose.BlendNormal, 1, mask)

	if a := dst.AlphaAt(0, 0); a != 255 {
		t.Errorf("full mask: alpha %d", a)
	}
	if a := dst.AlphaAt(1, 0); a != 128 {
		t.Errorf("half mask: alpha %d", a)
	}
	if a := dst.AlphaAt(2, 0); a != 0 {
		t.Errorf("zero mask: alpha %d", a)
	}
	// x=3 is outside the mask entirely: treated as zero coverage.
	if a := dst.AlphaAt(3, 0); a != 0 {
		t.Errorf("beyond mask: alpha %d", a)
	}
}
