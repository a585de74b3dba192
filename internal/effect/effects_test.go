package effect

import (
	"math"
	"testing"

	"github.com/gogpu/compose"
)

// squareContent returns a w x h surface with an opaque colored square at
// [x0, x1) x [y0, y1).
func squareContent(w, h, x0, y0, x1, y1 int) *compose.Pixmap {
	p := compose.NewPixmap(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.SetPixel(x, y, compose.RGB(0.2, 0.4, 0.6))
		}
	}
	return p
}

func TestGaussianKernel(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		taps   int
	}{
		{name: "identity", radius: 0, taps: 1},
		{name: "radius 1", radius: 1, taps: 7},
		{name: "radius 2.5", radius: 2.5, taps: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := GaussianKernel(tt.radius)
			if len(k) != tt.taps {
				t.Fatalf("taps = %d, want %d", len(k), tt.taps)
			}
			sum := 0.0
			for _, v := range k {
				sum += float64(v)
			}
			if math.Abs(sum-1) > 1e-4 {
				t.Errorf("kernel sum = %v, want 1", sum)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	shadow := &compose.DropShadowEffect{Enabled: true}
	glow := &compose.OuterGlowEffect{Enabled: true}
	stroke := &compose.StrokeEffect{Enabled: true}
	overlay := &compose.ColorOverlayEffect{Enabled: true}
	disabled := &compose.BevelEmbossEffect{Enabled: false}

	behind, front := Partition([]compose.Effect{stroke, shadow, disabled, overlay, glow})

	if len(behind) != 2 || behind[0] != shadow || behind[1] != glow {
		t.Errorf("behind = %v, want [shadow, glow]", behind)
	}
	if len(front) != 2 || front[0] != stroke || front[1] != overlay {
		t.Errorf("front = %v, want [stroke, overlay]", front)
	}
}

func TestRenderDisabledEffect(t *testing.T) {
	content := squareContent(8, 8, 2, 2, 6, 6)
	if got := Render(&compose.StrokeEffect{Enabled: false, Size: 2}, content); got != nil {
		t.Errorf("disabled effect rendered a contribution")
	}
	if got := Render(nil, content); got != nil {
		t.Errorf("nil effect rendered a contribution")
	}
}

func TestStrokeOutside(t *testing.T) {
	content := squareContent(16, 16, 6, 6, 10, 10)
	fx := &compose.StrokeEffect{
		Enabled:  true,
		Color:    compose.Red,
		Opacity:  1,
		Size:     2,
		Position: compose.StrokeOutside,
	}

	out := Render(fx, content)
	if out == nil {
		t.Fatal("no contribution")
	}

	// Band just outside the square edge.
	if a := out.AlphaAt(4, 8); a == 0 {
		t.Errorf("no stroke outside the left edge")
	}
	// Interior is untouched for an outside stroke.
	if a := out.AlphaAt(8, 8); a != 0 {
		t.Errorf("outside stroke covered the interior, alpha = %d", a)
	}
	if c := out.GetPixel(4, 8); c.R < 0.99 || c.G > 0.01 {
		t.Errorf("stroke color = %+v, want red", c)
	}
}

func TestStrokeInsideStaysWithinShape(t *testing.T) {
	content := squareContent(16, 16, 6, 6, 10, 10)
	fx := &compose.StrokeEffect{
		Enabled:  true,
		Color:    compose.Red,
		Opacity:  1,
		Size:     1,
		Position: compose.StrokeInside,
	}

	out := Render(fx, content)
	if out == nil {
		t.Fatal("no contribution")
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			inside := x >= 6 && x < 10 && y >= 6 && y < 10
			if !inside && out.AlphaAt(x, y) != 0 {
				t.Fatalf("inside stroke leaked to (%d, %d)", x, y)
			}
		}
	}
}

func TestDropShadowOffset(t *testing.T) {
	content := squareContent(16, 16, 4, 4, 8, 8)
	fx := &compose.DropShadowEffect{
		Enabled:  true,
		Color:    compose.Black,
		Opacity:  0.5,
		Angle:    90, // light from above, shadow falls straight down
		Distance: 4,
		Blur:     0,
	}

	out := Render(fx, content)
	if out == nil {
		t.Fatal("no contribution")
	}

	// Shadow body: square shifted down by 4.
	if a := out.AlphaAt(6, 10); a != 128 {
		t.Errorf("shadow alpha = %d, want 128", a)
	}
	// Nothing above the original square.
	if a := out.AlphaAt(6, 2); a != 0 {
		t.Errorf("shadow appeared above the shape, alpha = %d", a)
	}
}

func TestInnerEffectsConfinedToShape(t *testing.T) {
	content := squareContent(16, 16, 5, 5, 11, 11)
	tests := []struct {
		name string
		fx   compose.Effect
	}{
		{
			name: "inner shadow",
			fx: &compose.InnerShadowEffect{
				Enabled: true, Color: compose.Black, Opacity: 1,
				Angle: 120, Distance: 3, Blur: 2,
			},
		},
		{
			name: "inner glow edge",
			fx: &compose.InnerGlowEffect{
				Enabled: true, Color: compose.White, Opacity: 1,
				Size: 3, Source: compose.GlowEdge,
			},
		},
		{
			name: "inner glow center",
			fx: &compose.InnerGlowEffect{
				Enabled: true, Color: compose.White, Opacity: 1,
				Size: 3, Source: compose.GlowCenter,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.fx, content)
			if out == nil {
				t.Fatal("no contribution")
			}
			for y := 0; y < 16; y++ {
				for x := 0; x < 16; x++ {
					inside := x >= 5 && x < 11 && y >= 5 && y < 11
					if !inside && out.AlphaAt(x, y) != 0 {
						t.Fatalf("contribution leaked to (%d, %d)", x, y)
					}
				}
			}
		})
	}
}

func TestColorOverlay(t *testing.T) {
	content := squareContent(8, 8, 2, 2, 6, 6)
	fx := &compose.ColorOverlayEffect{Enabled: true, Color: compose.Green, Opacity: 1}

	out := Render(fx, content)
	if out == nil {
		t.Fatal("no contribution")
	}
	if c := out.GetPixel(4, 4); c.G < 0.99 || c.R > 0.01 || c.A < 0.99 {
		t.Errorf("overlay pixel = %+v, want opaque green", c)
	}
	if a := out.AlphaAt(0, 0); a != 0 {
		t.Errorf("overlay leaked outside the silhouette")
	}
}

func TestGradientOverlayLinear(t *testing.T) {
	content := squareContent(8, 8, 0, 0, 8, 8)
	fx := &compose.GradientOverlayEffect{
		Enabled: true,
		Opacity: 1,
		Angle:   0,
		Style:   compose.GradientLinear,
	}

	out := Render(fx, content)
	if out == nil {
		t.Fatal("no contribution")
	}

	// Default ramp is black to white along +x.
	if c := out.GetPixel(0, 4); c.R > 0.01 {
		t.Errorf("gradient start = %+v, want black", c)
	}
	if c := out.GetPixel(7, 4); c.R < 0.99 {
		t.Errorf("gradient end = %+v, want white", c)
	}

	fx.Reverse = true
	out = Render(fx, content)
	if c := out.GetPixel(0, 4); c.R < 0.99 {
		t.Errorf("reversed gradient start = %+v, want white", c)
	}
}

func TestGradientOverlayStopsSorted(t *testing.T) {
	content := squareContent(8, 8, 0, 0, 8, 8)
	fx := &compose.GradientOverlayEffect{
		Enabled: true,
		Opacity: 1,
		Style:   compose.GradientLinear,
		Stops: []compose.GradientStop{
			{Position: 1, Color: compose.Blue},
			{Position: 0, Color: compose.Red},
		},
	}

	out := Render(fx, content)
	if c := out.GetPixel(0, 4); c.R < 0.99 || c.B > 0.01 {
		t.Errorf("unsorted stops: start = %+v, want red", c)
	}
	if c := out.GetPixel(7, 4); c.B < 0.99 || c.R > 0.01 {
		t.Errorf("unsorted stops: end = %+v, want blue", c)
	}
}

// Pillow emboss flips only the outer band's polarity and the down
// direction flips everything, so combining the two restores the outer
// band while flipping the inner one.
func TestBevelPolarity(t *testing.T) {
	content := squareContent(20, 20, 6, 6, 14, 14)
	newFx := func(style compose.BevelStyle, dir compose.BevelDirection) *compose.BevelEmbossEffect {
		return &compose.BevelEmbossEffect{
			Enabled:          true,
			Style:            style,
			Depth:            100,
			Direction:        dir,
			Size:             2,
			Soften:           0,
			Angle:            180, // light from the left
			Altitude:         0,
			HighlightColor:   compose.White,
			HighlightOpacity: 1,
			ShadowColor:      compose.Black,
			ShadowOpacity:    1,
		}
	}

	// Left inner rim pixel, mid height.
	const rimX, rimY = 6, 10

	up := Render(newFx(compose.BevelInner, compose.BevelUp), content)
	if up == nil {
		t.Fatal("no contribution")
	}
	if c := up.GetPixel(rimX, rimY); c.R < 0.99 {
		t.Errorf("up bevel lit rim = %+v, want highlight", c)
	}

	down := Render(newFx(compose.BevelInner, compose.BevelDown), content)
	if c := down.GetPixel(rimX, rimY); c.R > 0.01 {
		t.Errorf("down bevel lit rim = %+v, want shadow", c)
	}
}
