// Package blend implements the 16-mode blend table shared by both
// rendering backends, following the W3C Compositing and Blending Level 1
// specification (separable modes per channel, non-separable HSL modes on
// the whole triplet).
//
// All functions operate on non-premultiplied channels in [0, 1]. The
// compositing entry points premultiply internally and divide alpha back
// out of the result, so callers keep working with straight-alpha pixels.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
//   - PDF Blend Modes: Addendum (ISO 32000-1:2008)
package blend

import (
	"math"

	"github.com/gogpu/compose"
)

// channelFunc is a separable per-channel blend function B(Cb, Cs)
// operating on non-premultiplied values in [0, 1].
type channelFunc func(b, s float64) float64

// tripletFunc is a non-separable blend function B(Cb, Cs) on whole RGB
// triplets.
type tripletFunc func(br, bg, bb, sr, sg, sb float64) (float64, float64, float64)

// Blend applies the named mode to a backdrop and source color and returns
// the blended (still non-premultiplied, alpha-free) color. This is B(Cb,
// Cs) only; use Over for full Porter-Duff compositing.
func Blend(mode compose.BlendMode, backdrop, source compose.RGBA) compose.RGBA {
	r, g, b := blendRGB(mode, backdrop.R, backdrop.G, backdrop.B, source.R, source.G, source.B)
	return compose.RGBA{R: r, G: g, B: b, A: source.A}
}

func blendRGB(mode compose.BlendMode, br, bg, bb, sr, sg, sb float64) (float64, float64, float64) {
	if !mode.Valid() {
		mode = compose.BlendNormal
	}
	if f := separableFuncs[mode]; f != nil {
		return f(br, sr), f(bg, sg), f(bb, sb)
	}
	if f := tripletFuncs[mode]; f != nil {
		return f(br, bg, bb, sr, sg, sb)
	}
	// Normal and any unknown mode: source wins.
	return sr, sg, sb
}

// separableFuncs indexes the per-channel modes; nil entries are either
// normal (index 0) or non-separable.
var separableFuncs = [16]channelFunc{
	compose.BlendMultiply:   blendMultiply,
	compose.BlendScreen:     blendScreen,
	compose.BlendOverlay:    blendOverlay,
	compose.BlendDarken:     math.Min,
	compose.BlendLighten:    math.Max,
	compose.BlendColorDodge: blendColorDodge,
	compose.BlendColorBurn:  blendColorBurn,
	compose.BlendHardLight:  blendHardLight,
	compose.BlendSoftLight:  blendSoftLight,
	compose.BlendDifference: blendDifference,
	compose.BlendExclusion:  blendExclusion,
}

// tripletFuncs indexes the non-separable HSL modes.
var tripletFuncs = [16]tripletFunc{
	compose.BlendHue:        blendHue,
	compose.BlendSaturation: blendSaturation,
	compose.BlendColor:      blendColor,
	compose.BlendLuminosity: blendLuminosity,
}

// Over composites src onto dst with the given mode and returns the
// result, all colors non-premultiplied.
//
// The math is standard Porter-Duff source-over using the blended color as
// the source, with premultiplication handled explicitly:
//
//	outA  = srcA + dstA*(1-srcA)
//	out.C = (srcA*(1-dstA)*Cs + srcA*dstA*B(Cd,Cs) + (1-srcA)*dstA*Cd) / outA
func Over(mode compose.BlendMode, dst, src compose.RGBA) compose.RGBA {
	sa := clamp01(src.A)
	da := clamp01(dst.A)

	outA := sa + da*(1-sa)
	if outA == 0 {
		return compose.RGBA{}
	}

	br, bg, bb := blendRGB(mode, dst.R, dst.G, dst.B, src.R, src.G, src.B)

	invSa := 1 - sa
	invDa := 1 - da
	outR := (sa*invDa*src.R + sa*da*br + invSa*da*dst.R) / outA
	outG := (sa*invDa*src.G + sa*da*bg + invSa*da*dst.G) / outA
	outB := (sa*invDa*src.B + sa*da*bb + invSa*da*dst.B) / outA

	return compose.RGBA{
		R: clamp01(outR),
		G: clamp01(outG),
		B: clamp01(outB),
		A: outA,
	}
}

// Atop composites src onto dst confined to dst's coverage (Porter-Duff
// source-atop with the blended color as the source). The result keeps
// the destination alpha exactly, so a clipping group can never add
// coverage to a semi-transparent base:
//
//	outA  = dstA
//	out.C = srcA*((1-dstA)*Cs + dstA*B(Cd,Cs)) + (1-srcA)*Cd
func Atop(mode compose.BlendMode, dst, src compose.RGBA) compose.RGBA {
	sa := clamp01(src.A)
	da := clamp01(dst.A)
	if da == 0 {
		return compose.RGBA{}
	}

	br, bg, bb := blendRGB(mode, dst.R, dst.G, dst.B, src.R, src.G, src.B)

	invDa := 1 - da
	cr := invDa*src.R + da*br
	cg := invDa*src.G + da*bg
	cb := invDa*src.B + da*bb

	invSa := 1 - sa
	return compose.RGBA{
		R: clamp01(sa*cr + invSa*dst.R),
		G: clamp01(sa*cg + invSa*dst.G),
		B: clamp01(sa*cb + invSa*dst.B),
		A: da,
	}
}

// Separable blend mode implementations. Parameters are (backdrop, source)
// non-premultiplied channels in [0, 1].

// blendMultiply: B(Cb, Cs) = Cb * Cs
func blendMultiply(b, s float64) float64 {
	return b * s
}

// blendScreen: B(Cb, Cs) = 1 - (1-Cb)*(1-Cs)
func blendScreen(b, s float64) float64 {
	return 1 - (1-b)*(1-s)
}

// blendOverlay: HardLight with swapped operands.
func blendOverlay(b, s float64) float64 {
	return blendHardLight(s, b)
}

// blendColorDodge: B(Cb, Cs) = if Cs == 1: 1, else min(1, Cb/(1-Cs))
func blendColorDodge(b, s float64) float64 {
	if s >= 1 {
		return 1
	}
	return math.Min(1, b/(1-s))
}

// blendColorBurn: B(Cb, Cs) = if Cs == 0: 0, else 1 - min(1, (1-Cb)/Cs)
func blendColorBurn(b, s float64) float64 {
	if s <= 0 {
		return 0
	}
	return 1 - math.Min(1, (1-b)/s)
}

// blendHardLight: Multiply or Screen depending on the source.
func blendHardLight(b, s float64) float64 {
	if s <= 0.5 {
		return blendMultiply(b, 2*s)
	}
	return blendScreen(b, 2*s-1)
}

// blendSoftLight per the W3C piecewise formula with the D(x) ramp.
func blendSoftLight(b, s float64) float64 {
	if s <= 0.5 {
		return b - (1-2*s)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*s-1)*(d-b)
}

// blendDifference: B(Cb, Cs) = |Cb - Cs|
func blendDifference(b, s float64) float64 {
	return math.Abs(b - s)
}

// blendExclusion: B(Cb, Cs) = Cb + Cs - 2*Cb*Cs
func blendExclusion(b, s float64) float64 {
	return b + s - 2*b*s
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
