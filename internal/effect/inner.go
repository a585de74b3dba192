package effect

import "github.com/gogpu/compose"

// renderInnerShadow darkens the inside of the shape along the edge
// facing the light. It is the drop shadow of the silhouette's
// complement, confined to the shape: invert, offset, choke+blur,
// intersect with the original coverage.
func renderInnerShadow(fx *compose.InnerShadowEffect, content *compose.Pixmap) *compose.Pixmap {
	base := silhouetteOf(content)
	dx, dy := lightOffset(fx.Angle, fx.Distance)

	s := base.clone()
	s.invert()
	s = s.shifted(dx, dy)

	choke := clamp01f(fx.Choke / 100)
	if grow := fx.Blur * choke; grow > 0 {
		s.grow(grow)
	}
	if soft := fx.Blur * (1 - choke); soft > 0 {
		s.blur(soft)
	}

	s.intersect(base)
	return s.tint(fx.Color, fx.Opacity)
}

// renderInnerGlow lights the inside of the shape. Edge-sourced glow is
// the chocked, blurred complement confined to the shape (strongest at
// the rim); center-sourced glow is its complement within the shape
// (strongest in the middle).
func renderInnerGlow(fx *compose.InnerGlowEffect, content *compose.Pixmap) *compose.Pixmap {
	if fx.Size <= 0 {
		return nil
	}

	base := silhouetteOf(content)

	s := base.clone()
	s.invert()

	choke := clamp01f(fx.Choke / 100)
	if grow := fx.Size * choke; grow > 0 {
		s.grow(grow)
	}
	if soft := fx.Size * (1 - choke); soft > 0 {
		s.blur(soft)
	}

	if fx.Source == compose.GlowCenter {
		s.invert()
	}

	s.intersect(base)
	return s.tint(fx.Color, fx.Opacity)
}
