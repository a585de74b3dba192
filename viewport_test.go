package compose

import (
	"math"
	"testing"
)

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(800, 600)
	v.SetZoom(2.5)
	v.SetOffset(-120.25, 33.5)

	points := []Point{
		{0, 0},
		{100, 200},
		{-55.5, 400.125},
		{12345.678, -9876.543},
	}
	for _, p := range points {
		back := v.ScreenToDocument(v.DocumentToScreen(p))
		if !pointsClose(back, p) {
			t.Errorf("round trip %v -> %v", p, back)
		}
		back = v.DocumentToScreen(v.ScreenToDocument(p))
		if !pointsClose(back, p) {
			t.Errorf("inverse round trip %v -> %v", p, back)
		}
	}
}

func TestViewportZoomClamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.001, MinZoom},
		{0.01, 0.01},
		{1, 1},
		{64, 64},
		{1000, MaxZoom},
		{-3, MinZoom},
	}
	for _, tt := range tests {
		v := NewViewport(100, 100)
		v.SetZoom(tt.in)
		if v.Zoom() != tt.want {
			t.Errorf("SetZoom(%v): zoom = %v, want %v", tt.in, v.Zoom(), tt.want)
		}
	}
}

// Zooming toward an anchor must keep the document point under the anchor
// fixed on screen.
func TestViewportZoomAnchor(t *testing.T) {
	v := NewViewport(800, 600)
	v.SetZoom(1.5)
	v.SetOffset(40, -20)

	anchor := Point{X: 350, Y: 275}
	before := v.ScreenToDocument(anchor)

	for _, zoom := range []float64{0.25, 1, 3, 7.75} {
		v.SetZoom(zoom, anchor)
		after := v.ScreenToDocument(anchor)
		if !pointsClose(before, after) {
			t.Errorf("zoom %v: anchor document point moved %v -> %v", zoom, before, after)
		}
	}
}

func TestViewportFitToWindow(t *testing.T) {
	v := NewViewport(1600, 900)
	v.FitToWindow(800, 600)

	if v.Zoom() != 1.5 {
		t.Errorf("zoom = %v, want 1.5", v.Zoom())
	}
	// 800*1.5 = 1200 wide in a 1600 window: centered at x=200.
	off := v.Offset()
	if off.X != 200 || off.Y != 0 {
		t.Errorf("offset = %v, want (200, 0)", off)
	}
}

func TestViewportFitToWindowClampsZoom(t *testing.T) {
	v := NewViewport(100, 100)
	v.FitToWindow(1, 1) // would be zoom 100
	if v.Zoom() != MaxZoom {
		t.Errorf("zoom = %v, want %v", v.Zoom(), MaxZoom)
	}

	v.FitToWindow(1e6, 1e6) // would be zoom 0.0001
	if v.Zoom() != MinZoom {
		t.Errorf("zoom = %v, want %v", v.Zoom(), MinZoom)
	}
}

func TestViewportFitToWindowDegenerate(t *testing.T) {
	v := NewViewport(800, 600)
	v.SetZoom(3)
	v.SetOffset(10, 20)
	v.FitToWindow(0, 600)
	if v.Zoom() != 3 || v.Offset() != (Point{X: 10, Y: 20}) {
		t.Error("degenerate document size must leave the viewport untouched")
	}
}

func TestViewportZoomToActual(t *testing.T) {
	v := NewViewport(1000, 800)
	v.SetZoom(4)
	v.ZoomToActual(600, 400)
	if v.Zoom() != 1 {
		t.Errorf("zoom = %v, want 1", v.Zoom())
	}
	if off := v.Offset(); off.X != 200 || off.Y != 200 {
		t.Errorf("offset = %v, want (200, 200)", off)
	}
}

func TestViewportVisibleArea(t *testing.T) {
	v := NewViewport(800, 600)
	v.SetZoom(2)
	v.SetOffset(-100, 50)

	area := v.VisibleArea()
	want := Rect{X: 50, Y: -25, W: 400, H: 300}
	if math.Abs(area.X-want.X) > 1e-9 || math.Abs(area.Y-want.Y) > 1e-9 ||
		math.Abs(area.W-want.W) > 1e-9 || math.Abs(area.H-want.H) > 1e-9 {
		t.Errorf("VisibleArea() = %+v, want %+v", area, want)
	}
}

func TestViewportPan(t *testing.T) {
	v := NewViewport(800, 600)
	v.Pan(15, -7.5)
	v.Pan(5, 2.5)
	if off := v.Offset(); off.X != 20 || off.Y != -5 {
		t.Errorf("offset = %v, want (20, -5)", off)
	}
}

func TestViewportTransform(t *testing.T) {
	v := NewViewport(800, 600)
	v.SetZoom(2)
	v.SetOffset(30, -10)

	m := v.Transform(1)
	doc := Point{X: 7, Y: 11}
	if got, want := m.TransformPoint(doc), v.DocumentToScreen(doc); !pointsClose(got, want) {
		t.Errorf("Transform(1) maps %v to %v, DocumentToScreen gives %v", doc, got, want)
	}

	// Device pixel ratio scales both zoom and offset.
	m2 := v.Transform(2)
	got := m2.TransformPoint(doc)
	want := Point{X: (7*2 + 30) * 2, Y: (11*2 - 10) * 2}
	if !pointsClose(got, want) {
		t.Errorf("Transform(2) maps %v to %v, want %v", doc, got, want)
	}

	// Non-positive ratios behave as 1.
	if m3 := v.Transform(0); m3 != m {
		t.Errorf("Transform(0) = %+v, want %+v", m3, m)
	}
}
