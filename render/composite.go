package render

import (
	"math"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/blend"
	"github.com/gogpu/compose/internal/effect"
	"github.com/gogpu/compose/text"
)

// Sink receives flattened composite steps. Each Draw hands over a
// surface-sized pixmap to fold onto the output with the given mode and
// opacity. Implementations must not retain src after Draw returns: the
// buffer goes back to the surface pool.
//
// The CPU backend folds draws directly into the destination pixmap; the
// GPU backend uploads each one and folds it in a compute pass.
type Sink interface {
	Draw(src *compose.Pixmap, mode compose.BlendMode, opacity float64)
}

// pixmapSink folds draws into a pixmap with the shared blend table.
type pixmapSink struct {
	dst *compose.Pixmap
}

func (s pixmapSink) Draw(src *compose.Pixmap, mode compose.BlendMode, opacity float64) {
	blend.Draw(s.dst, src, 0, 0, mode, opacity)
}

// clippedSink folds draws confined to the destination's existing alpha
// footprint. Used for clipping-run members above their base.
type clippedSink struct {
	dst *compose.Pixmap
}

func (s clippedSink) Draw(src *compose.Pixmap, mode compose.BlendMode, opacity float64) {
	blend.DrawClipped(s.dst, src, 0, 0, mode, opacity)
}

// Composite walks the document tree bottom-to-top and emits every
// top-level composite step to sink. (w, h) is the output surface size;
// every pixmap handed to sink covers at least that area.
func (b *Backend) Composite(doc *compose.Document, sink Sink, w, h int, opts *compose.RenderOptions) error {
	if doc == nil || doc.Root == nil || w <= 0 || h <= 0 {
		return nil
	}
	return b.compositeChildren(doc.Root.Children, sink, w, h, opts)
}

// compositeChildren composites a sibling list, resolving clipping runs.
//
// A clipping run is a non-clipping base layer plus the unbroken sequence
// of clipping layers directly above it. The run composites into an
// isolated surface (base first, then each member confined to the alpha
// already present) and folds onto the backdrop with the base's own blend
// mode and opacity. An invisible base hides its whole run; a clipping
// layer with no base below it in the same group composites as a normal
// layer.
func (b *Backend) compositeChildren(children []compose.Layer, sink Sink, w, h int, opts *compose.RenderOptions) error {
	i := 0
	for i < len(children) {
		child := children[i]
		base := child.Base()

		if base.Clipping {
			// No non-clipping layer below it: orphan, composites plain.
			if err := b.renderLayerTo(child, sink, w, h, opts, base.Mode, base.Opacity); err != nil {
				return err
			}
			i++
			continue
		}

		j := i + 1
		for j < len(children) && children[j].Base().Clipping {
			j++
		}
		clips := children[i+1 : j]

		if !b.layerVisible(base, opts) {
			i = j
			continue
		}

		if len(clips) == 0 {
			if err := b.renderLayerTo(child, sink, w, h, opts, base.Mode, base.Opacity); err != nil {
				return err
			}
			i = j
			continue
		}

		if err := b.compositeRun(child, clips, sink, w, h, opts); err != nil {
			return err
		}
		i = j
	}
	return nil
}

func (b *Backend) compositeRun(baseLayer compose.Layer, clips []compose.Layer, sink Sink, w, h int, opts *compose.RenderOptions) error {
	surf, handle, err := b.acquire(w, h)
	if err != nil {
		return err
	}
	defer b.release(handle)

	// The base renders plain; its blend mode and opacity apply to the
	// whole run result below, not inside the isolated surface.
	if err := b.renderLayerTo(baseLayer, pixmapSink{surf}, w, h, opts, compose.BlendNormal, 1); err != nil {
		return err
	}

	confined := clippedSink{surf}
	for _, clip := range clips {
		cb := clip.Base()
		if err := b.renderLayer(clip, confined, w, h, opts, cb.Mode, cb.Opacity, emitContent); err != nil {
			return err
		}
	}

	base := baseLayer.Base()
	sink.Draw(surf, base.Mode, base.Opacity)

	// Effects on clipped layers are not confined: they draw straight
	// onto the output once the run has folded.
	for _, clip := range clips {
		cb := clip.Base()
		if err := b.renderLayer(clip, sink, w, h, opts, cb.Mode, cb.Opacity, emitEffects); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) layerVisible(base *compose.LayerBase, opts *compose.RenderOptions) bool {
	return base.Visible && base.Opacity > 0 && !opts.Hidden(base.ID)
}

// Emit parts for renderLayer. Clipping runs render content and effects
// in separate phases: content confined to the run surface, effects
// straight onto the output after the run folds.
const (
	emitContent = 1 << iota
	emitEffects
)

// renderLayerTo renders one layer: content staged at its document
// position with the alpha mask pre-applied, effect contributions
// partitioned beneath and above it, everything emitted to sink. The
// mode and opacity are passed by the caller so clipping-run bases can
// composite plain inside their isolated surface.
func (b *Backend) renderLayerTo(layer compose.Layer, sink Sink, w, h int, opts *compose.RenderOptions, mode compose.BlendMode, opacity float64) error {
	return b.renderLayer(layer, sink, w, h, opts, mode, opacity, emitContent|emitEffects)
}

func (b *Backend) renderLayer(layer compose.Layer, sink Sink, w, h int, opts *compose.RenderOptions, mode compose.BlendMode, opacity float64, parts int) error {
	base := layer.Base()
	if !b.layerVisible(base, opts) {
		return nil
	}

	var behind, front []compose.Effect
	if opts.RenderEffects {
		behind, front = effect.Partition(base.Effects)
	}
	if parts&emitContent == 0 && len(behind)+len(front) == 0 {
		return nil
	}

	content, cleanup, err := b.layerContent(layer, w, h, opts)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}
	if content == nil || content.Empty() {
		// Layers with nothing to draw are skipped, never an error.
		return nil
	}

	placed, handle, err := b.acquire(w, h)
	if err != nil {
		return err
	}
	defer b.release(handle)

	dx := int(math.Round(base.X))
	dy := int(math.Round(base.Y))
	blend.Draw(placed, content, dx, dy, compose.BlendNormal, 1)

	if base.Mask != nil && base.Mask.Enabled {
		applyMask(placed, base.Mask)
	}

	if parts&emitEffects != 0 {
		for _, e := range behind {
			if c := effect.Render(e, placed); c != nil {
				sink.Draw(c, compose.BlendNormal, opacity)
			}
		}
	}
	if parts&emitContent != 0 && !opts.EffectsOnly(base.ID) {
		sink.Draw(placed, mode, opacity)
	}
	if parts&emitEffects != 0 {
		for _, e := range front {
			if c := effect.Render(e, placed); c != nil {
				sink.Draw(c, compose.BlendNormal, opacity)
			}
		}
	}
	return nil
}

// layerContent resolves a layer's pixel content. Group layers composite
// their children into a pooled surface; the returned cleanup releases
// it.
func (b *Backend) layerContent(layer compose.Layer, w, h int, opts *compose.RenderOptions) (*compose.Pixmap, func(), error) {
	switch l := layer.(type) {
	case *compose.RasterLayer:
		return l.Pixels, nil, nil

	case *compose.TextLayer:
		pix, err := text.Render(l)
		if err != nil {
			// A broken font hides the layer instead of killing the frame.
			compose.Logger().Warn("text layer skipped",
				"layer", l.Name, "error", err)
			return nil, nil, nil
		}
		return pix, nil, nil

	case *compose.GroupLayer:
		surf, handle, err := b.acquire(w, h)
		if err != nil {
			return nil, nil, err
		}
		if err := b.compositeChildren(l.Children, pixmapSink{surf}, w, h, opts); err != nil {
			b.release(handle)
			return nil, nil, err
		}
		return surf, func() { b.release(handle) }, nil
	}
	return nil, nil, nil
}

// applyMask modulates the staged content's alpha by a document-space
// alpha mask. Mask coordinates that fall outside the mask read as zero,
// so a misplaced mask hides pixels rather than erroring.
func applyMask(placed *compose.Pixmap, mask *compose.AlphaMask) {
	w, hgt := placed.Width(), placed.Height()
	data := placed.Data()
	for y := 0; y < hgt; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			ai := row + x*4 + 3
			if data[ai] == 0 {
				continue
			}
			m := mask.AlphaAt(x, y)
			data[ai] = uint8((uint16(data[ai])*uint16(m) + 127) / 255)
		}
	}
}
