package effect

import "github.com/gogpu/compose"

// silhouette is a single-channel coverage buffer in [0, 1] matching the
// working surface's dimensions. Every effect renderer starts from the
// layer content's silhouette and reshapes it (offset, grow, shrink,
// blur) before tinting it into a pixel contribution.
type silhouette struct {
	w, h int
	a    []float32
}

func newSilhouette(w, h int) *silhouette {
	return &silhouette{w: w, h: h, a: make([]float32, w*h)}
}

// silhouetteOf extracts the alpha channel of a pixmap.
func silhouetteOf(src *compose.Pixmap) *silhouette {
	s := newSilhouette(src.Width(), src.Height())
	data := src.Data()
	for i := range s.a {
		s.a[i] = float32(data[i*4+3]) / 255
	}
	return s
}

func (s *silhouette) clone() *silhouette {
	c := &silhouette{w: s.w, h: s.h, a: make([]float32, len(s.a))}
	copy(c.a, s.a)
	return c
}

// invert replaces every sample with its complement.
func (s *silhouette) invert() {
	for i, v := range s.a {
		s.a[i] = 1 - v
	}
}

// blur applies a Gaussian blur in place.
func (s *silhouette) blur(radius float64) {
	blurAlpha(s.a, s.w, s.h, radius)
}

// shifted returns a copy of s translated by (dx, dy). Samples shifted in
// from outside the buffer are zero.
func (s *silhouette) shifted(dx, dy int) *silhouette {
	out := newSilhouette(s.w, s.h)
	for y := 0; y < s.h; y++ {
		sy := y - dy
		if sy < 0 || sy >= s.h {
			continue
		}
		for x := 0; x < s.w; x++ {
			sx := x - dx
			if sx < 0 || sx >= s.w {
				continue
			}
			out.a[y*s.w+x] = s.a[sy*s.w+sx]
		}
	}
	return out
}

// sample returns the coverage at (x, y), zero outside the buffer.
func (s *silhouette) sample(x, y int) float32 {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return 0
	}
	return s.a[y*s.w+x]
}

// subtract removes other's coverage: a = max(0, a - other).
func (s *silhouette) subtract(other *silhouette) {
	for i, v := range other.a {
		d := s.a[i] - v
		if d < 0 {
			d = 0
		}
		s.a[i] = d
	}
}

// intersect keeps coverage only where other also covers: a = a * other.
func (s *silhouette) intersect(other *silhouette) {
	for i, v := range other.a {
		s.a[i] *= v
	}
}

// tint renders the silhouette as a solid-color contribution, scaling
// coverage by opacity.
func (s *silhouette) tint(color compose.RGBA, opacity float64) *compose.Pixmap {
	out := compose.NewPixmap(s.w, s.h)
	data := out.Data()

	r := uint8(clamp01f(color.R)*255 + 0.5)
	g := uint8(clamp01f(color.G)*255 + 0.5)
	b := uint8(clamp01f(color.B)*255 + 0.5)
	alphaScale := clamp01f(color.A * opacity)

	for i, v := range s.a {
		av := clamp01f(float64(v)) * alphaScale
		if av <= 0 {
			continue
		}
		di := i * 4
		data[di+0] = r
		data[di+1] = g
		data[di+2] = b
		data[di+3] = uint8(av*255 + 0.5)
	}
	return out
}

func clamp01f(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
