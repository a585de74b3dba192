package effect

import (
	"math"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/blend"
)

// renderBevel simulates raised or carved edges with a highlight pass on
// the lit side and a shadow pass on the far side.
//
// The edge masks come from shifted-silhouette differences: shifting the
// silhouette away from the light and subtracting isolates the far edge,
// shifting toward the light isolates the lit edge. The style selects
// whether those edges are taken inside the shape (inner bevel), outside
// it (outer bevel), or both (emboss). Pillow emboss flips the outer
// band's polarity so the shape appears stamped into the backdrop; the
// down direction flips polarity globally. The two flips compose as an
// exclusive-or: pillow emboss with direction down has a normal-polarity
// outer band again.
func renderBevel(fx *compose.BevelEmbossEffect, content *compose.Pixmap) *compose.Pixmap {
	if fx.Size <= 0 {
		return nil
	}

	base := silhouetteOf(content)

	// Light altitude flattens the apparent offset; overhead light
	// (90 degrees) produces no relief at all.
	dist := fx.Size * math.Cos(fx.Altitude*math.Pi/180)
	if dist < 1 {
		dist = 1
	}
	dx, dy := lightOffset(fx.Angle, dist)

	away := base.shifted(dx, dy)     // cast away from the light
	toward := base.shifted(-dx, -dy) // cast toward the light

	// Inner rims: lit side and far side inside the shape.
	innerHi := base.clone()
	innerHi.subtract(away)
	innerSh := base.clone()
	innerSh.subtract(toward)

	// Outer rims: lit side and far side outside the shape.
	outerHi := toward.clone()
	outerHi.subtract(base)
	outerSh := away.clone()
	outerSh.subtract(base)

	flipAll := fx.Direction == compose.BevelDown

	var hi, sh *silhouette
	switch fx.Style {
	case compose.BevelInner:
		hi, sh = innerHi, innerSh
	case compose.BevelOuter:
		hi, sh = outerHi, outerSh
	case compose.BevelPillowEmboss:
		// Outer band carved: its polarity is flipped relative to the
		// inner band.
		hi = merged(innerHi, outerSh)
		sh = merged(innerSh, outerHi)
	default: // BevelEmboss
		hi = merged(innerHi, outerHi)
		sh = merged(innerSh, outerSh)
	}
	if flipAll {
		hi, sh = sh, hi
	}

	soften := fx.Soften + fx.Size*0.25
	hi.blur(soften)
	sh.blur(soften)

	depthScale := fx.Depth / 100
	if depthScale > 1 {
		depthScale = 1
	}

	out := hi.tint(fx.HighlightColor, fx.HighlightOpacity*depthScale)
	shadowPass := sh.tint(fx.ShadowColor, fx.ShadowOpacity*depthScale)
	blend.Draw(out, shadowPass, 0, 0, compose.BlendNormal, 1)
	return out
}

// merged returns the pointwise maximum of two silhouettes.
func merged(a, b *silhouette) *silhouette {
	out := a.clone()
	for i, v := range b.a {
		if v > out.a[i] {
			out.a[i] = v
		}
	}
	return out
}
