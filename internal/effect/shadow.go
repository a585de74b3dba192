package effect

import "github.com/gogpu/compose"

// renderDropShadow casts the content silhouette away from the light
// angle, softens it and tints it with the shadow color. Spread converts
// part of the blur budget into a hard dilation, so a 100% spread yields
// a fully hard-edged shadow.
func renderDropShadow(fx *compose.DropShadowEffect, content *compose.Pixmap) *compose.Pixmap {
	dx, dy := lightOffset(fx.Angle, fx.Distance)

	s := silhouetteOf(content).shifted(dx, dy)

	spread := clamp01f(fx.Spread / 100)
	if grow := fx.Blur * spread; grow > 0 {
		s.grow(grow)
	}
	if soft := fx.Blur * (1 - spread); soft > 0 {
		s.blur(soft)
	}

	return s.tint(fx.Color, fx.Opacity)
}

// renderOuterGlow is a centered drop shadow: the silhouette grows by the
// spread fraction of the glow size, the remainder becomes blur, and the
// result sits beneath the content so only the halo outside the shape is
// visible.
func renderOuterGlow(fx *compose.OuterGlowEffect, content *compose.Pixmap) *compose.Pixmap {
	if fx.Size <= 0 {
		return nil
	}

	s := silhouetteOf(content)

	spread := clamp01f(fx.Spread / 100)
	if grow := fx.Size * spread; grow > 0 {
		s.grow(grow)
	}
	if soft := fx.Size * (1 - spread); soft > 0 {
		s.blur(soft)
	}

	return s.tint(fx.Color, fx.Opacity)
}
