package effect

import "github.com/gogpu/compose"

// renderStroke outlines the content silhouette with a solid band of the
// configured width. The band is the set difference between a grown and a
// shrunk silhouette; the stroke position decides how the width straddles
// the edge.
func renderStroke(fx *compose.StrokeEffect, content *compose.Pixmap) *compose.Pixmap {
	if fx.Size <= 0 {
		return nil
	}

	base := silhouetteOf(content)

	var outer, inner *silhouette
	switch fx.Position {
	case compose.StrokeInside:
		outer = base.clone()
		inner = base.clone()
		inner.shrink(fx.Size)
	case compose.StrokeCenter:
		outer = base.clone()
		outer.grow(fx.Size / 2)
		inner = base.clone()
		inner.shrink(fx.Size / 2)
	default: // StrokeOutside
		outer = base.clone()
		outer.grow(fx.Size)
		inner = base
	}

	outer.subtract(inner)
	return outer.tint(fx.Color, fx.Opacity)
}
