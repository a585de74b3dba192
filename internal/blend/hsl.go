// Non-separable blend modes (Hue, Saturation, Color, Luminosity) per W3C
// Compositing and Blending Level 1, section 8. These require operating on
// the entire RGB triplet rather than individual channels.
package blend

// Lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(r, g, b) = 0.30*r + 0.59*g + 0.11*b
func Lum(r, g, b float64) float64 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns the saturation (max - min) of a color.
func Sat(r, g, b float64) float64 {
	return max3(r, g, b) - min3(r, g, b)
}

// ClipColor clips color components to [0, 1] while preserving luminance.
//
// If any component is outside [0, 1], the color is rescaled around its
// luminosity to bring it back into gamut while maintaining the relative
// relationships between channels.
func ClipColor(r, g, b float64) (float64, float64, float64) {
	l := Lum(r, g, b)
	n := min3(r, g, b)
	x := max3(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}

	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}

	return r, g, b
}

// SetLum sets the luminance of a color, then gamut-clips the result.
func SetLum(r, g, b, l float64) (float64, float64, float64) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat sets the saturation of a color while preserving its hue and the
// relative ordering of its components.
func SetSat(r, g, b, s float64) (float64, float64, float64) {
	minPtr, midPtr, maxPtr := sortRGB(&r, &g, &b)

	if *maxPtr > *minPtr {
		*midPtr = ((*midPtr - *minPtr) * s) / (*maxPtr - *minPtr)
		*maxPtr = s
	} else {
		// Grayscale: saturation is 0 regardless.
		*midPtr = 0
		*maxPtr = 0
	}
	*minPtr = 0

	return r, g, b
}

// sortRGB returns pointers to r, g, b ordered by value.
func sortRGB(r, g, b *float64) (minPtr, midPtr, maxPtr *float64) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// blendHue: SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
func blendHue(br, bg, bb, sr, sg, sb float64) (float64, float64, float64) {
	r, g, b := SetSat(sr, sg, sb, Sat(br, bg, bb))
	return SetLum(r, g, b, Lum(br, bg, bb))
}

// blendSaturation: SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
func blendSaturation(br, bg, bb, sr, sg, sb float64) (float64, float64, float64) {
	r, g, b := SetSat(br, bg, bb, Sat(sr, sg, sb))
	return SetLum(r, g, b, Lum(br, bg, bb))
}

// blendColor: SetLum(Cs, Lum(Cb))
func blendColor(br, bg, bb, sr, sg, sb float64) (float64, float64, float64) {
	return SetLum(sr, sg, sb, Lum(br, bg, bb))
}

// blendLuminosity: SetLum(Cb, Lum(Cs))
func blendLuminosity(br, bg, bb, sr, sg, sb float64) (float64, float64, float64) {
	return SetLum(br, bg, bb, Lum(sr, sg, sb))
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func max3(a, b, c float64) float64 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}
