package effect

import (
	"math"
	"sort"

	"github.com/gogpu/compose"
)

// renderColorOverlay paints the content silhouette in a single color.
func renderColorOverlay(fx *compose.ColorOverlayEffect, content *compose.Pixmap) *compose.Pixmap {
	return silhouetteOf(content).tint(fx.Color, fx.Opacity)
}

// renderGradientOverlay fills the content silhouette with a gradient
// spanning the content's bounding box. Linear gradients run along the
// configured angle; radial gradients emanate from the box center.
func renderGradientOverlay(fx *compose.GradientOverlayEffect, content *compose.Pixmap) *compose.Pixmap {
	base := silhouetteOf(content)

	minX, minY, maxX, maxY, ok := bounds(base)
	if !ok {
		return nil
	}

	stops := normalizeStops(fx.Stops)

	cx := float64(minX+maxX) / 2
	cy := float64(minY+maxY) / 2

	scale := fx.Scale / 100
	if scale <= 0 {
		scale = 1
	}

	// Linear: project positions onto the gradient axis and normalize the
	// projection over the box corners, so the gradient always spans the
	// content regardless of angle.
	rad := fx.Angle * math.Pi / 180
	ux, uy := math.Cos(rad), -math.Sin(rad)
	projMin, projMax := math.Inf(1), math.Inf(-1)
	for _, corner := range [4][2]float64{
		{float64(minX), float64(minY)},
		{float64(maxX), float64(minY)},
		{float64(minX), float64(maxY)},
		{float64(maxX), float64(maxY)},
	} {
		p := corner[0]*ux + corner[1]*uy
		projMin = math.Min(projMin, p)
		projMax = math.Max(projMax, p)
	}
	projSpan := projMax - projMin
	if projSpan <= 0 {
		projSpan = 1
	}

	// Radial: full intensity span reaches the farthest box corner.
	radius := math.Hypot(float64(maxX)-cx, float64(maxY)-cy)
	if radius <= 0 {
		radius = 1
	}

	out := compose.NewPixmap(base.w, base.h)
	data := out.Data()
	opacity := clamp01f(fx.Opacity)

	for y := 0; y < base.h; y++ {
		for x := 0; x < base.w; x++ {
			idx := y*base.w + x
			cov := float64(base.a[idx])
			if cov <= 0 {
				continue
			}

			var t float64
			if fx.Style == compose.GradientRadial {
				t = math.Hypot(float64(x)-cx, float64(y)-cy) / radius
			} else {
				t = (float64(x)*ux + float64(y)*uy - projMin) / projSpan
			}
			t = 0.5 + (t-0.5)/scale
			if fx.Reverse {
				t = 1 - t
			}

			c := sampleStops(stops, t)
			av := cov * c.A * opacity
			if av <= 0 {
				continue
			}
			di := idx * 4
			data[di+0] = uint8(clamp01f(c.R)*255 + 0.5)
			data[di+1] = uint8(clamp01f(c.G)*255 + 0.5)
			data[di+2] = uint8(clamp01f(c.B)*255 + 0.5)
			data[di+3] = uint8(clamp01f(av)*255 + 0.5)
		}
	}
	return out
}

// bounds returns the inclusive bounding box of non-zero coverage.
func bounds(s *silhouette) (minX, minY, maxX, maxY int, ok bool) {
	minX, minY = s.w, s.h
	maxX, maxY = -1, -1
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			if s.a[y*s.w+x] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	return minX, minY, maxX, maxY, maxX >= 0
}

// normalizeStops returns the stops sorted by position, substituting the
// default black-to-white ramp when none are configured.
func normalizeStops(stops []compose.GradientStop) []compose.GradientStop {
	if len(stops) == 0 {
		return []compose.GradientStop{
			{Position: 0, Color: compose.RGB(0, 0, 0)},
			{Position: 1, Color: compose.RGB(1, 1, 1)},
		}
	}
	sorted := make([]compose.GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// sampleStops evaluates the gradient at t, clamping outside the first
// and last stop.
func sampleStops(stops []compose.GradientStop, t float64) compose.RGBA {
	if t <= stops[0].Position {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Position {
			lo, hi := stops[i-1], stops[i]
			span := hi.Position - lo.Position
			if span <= 0 {
				return hi.Color
			}
			return lo.Color.Lerp(hi.Color, (t-lo.Position)/span)
		}
	}
	return last.Color
}
