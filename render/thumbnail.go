package render

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compose"
)

// RenderLayerThumbnail implements compose.Renderer. The layer renders
// alone at canvas size, its visible extent is cropped, and the crop is
// scaled to fit inside maxSize x maxSize preserving aspect ratio.
// Unknown ids and layers with no coverage yield nil without an error.
func (b *Backend) RenderLayerThumbnail(doc *compose.Document, id compose.LayerID, maxSize int) (*compose.Pixmap, error) {
	if b.disposed {
		return nil, compose.ErrDisposed
	}
	if doc == nil || maxSize <= 0 || doc.Width <= 0 || doc.Height <= 0 {
		return nil, nil
	}
	layer := doc.FindLayer(id)
	if layer == nil {
		return nil, nil
	}

	w, h := doc.Width, doc.Height
	surf, handle, err := b.acquire(w, h)
	if err != nil {
		return nil, err
	}
	defer b.release(handle)

	// Thumbnails preview the layer itself: its visibility toggle and
	// opacity are overridden, its blend mode is irrelevant without a
	// backdrop.
	opts := compose.DefaultRenderOptions()
	if err := b.renderLayerTo(thumbnailTarget(layer), pixmapSink{surf}, w, h, &opts, compose.BlendNormal, 1); err != nil {
		return nil, err
	}

	box, ok := coverageBounds(surf, w, h)
	if !ok {
		return nil, nil
	}

	return scaleToFit(surf, box, maxSize), nil
}

// thumbnailTarget returns a shallow copy of the layer forced visible at
// full opacity. The document itself is never mutated.
func thumbnailTarget(layer compose.Layer) compose.Layer {
	switch l := layer.(type) {
	case *compose.RasterLayer:
		c := *l
		c.Visible, c.Opacity = true, 1
		return &c
	case *compose.TextLayer:
		c := *l
		c.Visible, c.Opacity = true, 1
		return &c
	case *compose.GroupLayer:
		c := *l
		c.Visible, c.Opacity = true, 1
		return &c
	}
	return layer
}

// coverageBounds returns the bounding box of non-transparent pixels
// within the (w, h) region of surf.
func coverageBounds(surf *compose.Pixmap, w, h int) (image.Rectangle, bool) {
	data := surf.Data()
	stride := surf.Width() * 4

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := y * stride
		for x := 0; x < w; x++ {
			if data[row+x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// scaleToFit resamples a region of surf into a thumbnail no larger than
// maxSize on either axis.
func scaleToFit(surf *compose.Pixmap, box image.Rectangle, maxSize int) *compose.Pixmap {
	bw, bh := box.Dx(), box.Dy()

	scale := float64(maxSize) / float64(bw)
	if s := float64(maxSize) / float64(bh); s < scale {
		scale = s
	}
	tw := int(float64(bw) * scale)
	th := int(float64(bh) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	// Pixels are straight-alpha, so resample in NRGBA space.
	src := &image.NRGBA{
		Pix:    surf.Data(),
		Stride: surf.Width() * 4,
		Rect:   image.Rect(0, 0, surf.Width(), surf.Height()),
	}
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, box, xdraw.Src, nil)

	return compose.NewPixmapFromData(tw, th, dst.Pix)
}
