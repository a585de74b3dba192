// Package effect renders layer effect contributions: stroke, shadows,
// glows, overlays and bevel/emboss. Each renderer takes the layer
// content already placed on a working surface and produces a same-sized
// contribution pixmap for the compositor to blend beneath or above the
// content.
package effect

import (
	"math"

	"github.com/gogpu/compose"
)

// Partition splits the active effects of a layer into those composited
// beneath the content (drop shadow, outer glow) and those composited
// above it. Relative order within each group is preserved.
func Partition(effects []compose.Effect) (behind, front []compose.Effect) {
	for _, e := range effects {
		if e == nil || !e.Active() {
			continue
		}
		switch e.(type) {
		case *compose.DropShadowEffect, *compose.OuterGlowEffect:
			behind = append(behind, e)
		default:
			front = append(front, e)
		}
	}
	return behind, front
}

// Render produces the contribution pixmap for a single effect, sized
// like content. Inactive effects yield nil.
func Render(e compose.Effect, content *compose.Pixmap) *compose.Pixmap {
	if e == nil || !e.Active() || content.Empty() {
		return nil
	}
	switch fx := e.(type) {
	case *compose.StrokeEffect:
		return renderStroke(fx, content)
	case *compose.DropShadowEffect:
		return renderDropShadow(fx, content)
	case *compose.OuterGlowEffect:
		return renderOuterGlow(fx, content)
	case *compose.InnerShadowEffect:
		return renderInnerShadow(fx, content)
	case *compose.InnerGlowEffect:
		return renderInnerGlow(fx, content)
	case *compose.ColorOverlayEffect:
		return renderColorOverlay(fx, content)
	case *compose.GradientOverlayEffect:
		return renderGradientOverlay(fx, content)
	case *compose.BevelEmbossEffect:
		return renderBevel(fx, content)
	}
	return nil
}

// lightOffset converts an effect light angle (degrees, counterclockwise
// from +x, light shining FROM that direction) and a distance into a
// screen-space pixel offset for the cast shadow.
func lightOffset(angleDeg, distance float64) (dx, dy int) {
	rad := angleDeg * math.Pi / 180
	dx = int(math.Round(-math.Cos(rad) * distance))
	dy = int(math.Round(math.Sin(rad) * distance))
	return dx, dy
}
