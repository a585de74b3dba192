package effect

import "math"

// Morphology by angular shifts: growing (dilating) a silhouette by
// radius r takes the pointwise maximum of copies shifted along evenly
// spaced directions on the radius-r circle, plus the original. The
// direction count scales with the radius (at least 8, at least 2 per
// pixel of radius) so large strokes stay round instead of polygonal.
// Shrinking is the dual: minimum over the same shifts.

func shiftCount(radius float64) int {
	n := int(math.Ceil(radius)) * 2
	if n < 8 {
		n = 8
	}
	return n
}

// grow dilates the silhouette by radius pixels.
func (s *silhouette) grow(radius float64) {
	if radius <= 0 {
		return
	}
	src := s.clone()
	n := shiftCount(radius)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		dx := int(math.Round(radius * math.Cos(theta)))
		dy := int(math.Round(radius * math.Sin(theta)))
		if dx == 0 && dy == 0 {
			continue
		}
		for y := 0; y < s.h; y++ {
			for x := 0; x < s.w; x++ {
				v := src.sample(x-dx, y-dy)
				if idx := y*s.w + x; v > s.a[idx] {
					s.a[idx] = v
				}
			}
		}
	}
}

// shrink erodes the silhouette by radius pixels.
func (s *silhouette) shrink(radius float64) {
	if radius <= 0 {
		return
	}
	src := s.clone()
	n := shiftCount(radius)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		dx := int(math.Round(radius * math.Cos(theta)))
		dy := int(math.Round(radius * math.Sin(theta)))
		if dx == 0 && dy == 0 {
			continue
		}
		for y := 0; y < s.h; y++ {
			for x := 0; x < s.w; x++ {
				// Outside the buffer counts as empty, so shapes
				// erode away from the surface edge too.
				v := src.sample(x-dx, y-dy)
				if idx := y*s.w + x; v < s.a[idx] {
					s.a[idx] = v
				}
			}
		}
	}
}
