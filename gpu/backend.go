// Package gpu implements the GPU compositing backend on wgpu/hal compute
// shaders. It reuses the CPU backend's tree traversal and replaces only
// the final fold: each flattened surface is uploaded and blended into
// the frame by a compute dispatch running the same blend table as the
// CPU path.
//
// If GPU initialization fails (no Vulkan available, no adapters, shader
// compilation error), the backend permanently delegates to the CPU
// backend. Construction never fails.
package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/render"
)

// Backend is the GPU renderer. It owns a CPU backend for traversal,
// thumbnails and fallback.
type Backend struct {
	cpu      *render.Backend
	dev      *device
	disposed bool
}

// compile-time interface check
var _ compose.Renderer = (*Backend)(nil)

// New creates a GPU backend. When no usable GPU is found the backend
// still works: every frame renders on the CPU.
func New() *Backend {
	b := &Backend{cpu: render.New()}
	dev, err := newDevice()
	if err != nil {
		compose.Logger().Warn("GPU unavailable, rendering on CPU", "error", err)
		return b
	}
	compose.Logger().Info("GPU compositing enabled", "adapter", dev.adapterName)
	b.dev = dev
	return b
}

// Active reports whether frames are composited on the GPU.
func (b *Backend) Active() bool {
	return b.dev != nil && !b.disposed
}

// Render implements compose.Renderer.
func (b *Backend) Render(doc *compose.Document, dst *compose.Pixmap, opts compose.RenderOptions) error {
	if b.disposed {
		return compose.ErrDisposed
	}
	if doc == nil || dst == nil || dst.Empty() {
		return nil
	}
	if b.dev == nil {
		return b.cpu.Render(doc, dst, opts)
	}

	render.PaintBackground(dst, opts.Background)
	w, h := dst.Width(), dst.Height()

	sess, err := newSession(b.dev, dst, w, h)
	if err != nil {
		compose.Logger().Warn("GPU frame setup failed, rendering on CPU", "error", err)
		return b.cpu.Render(doc, dst, opts)
	}
	defer sess.close()

	if err := b.cpu.Composite(doc, sess, w, h, &opts); err != nil {
		return err
	}
	if err := sess.finish(dst); err != nil {
		// The backdrop already holds the background, so a clean CPU
		// re-render of the frame is always possible.
		compose.Logger().Warn("GPU frame failed, rendering on CPU", "error", err)
		return b.cpu.Render(doc, dst, opts)
	}
	return nil
}

// RenderLayerThumbnail implements compose.Renderer. Thumbnails are small
// and bound by traversal cost, so they always render on the CPU.
func (b *Backend) RenderLayerThumbnail(doc *compose.Document, id compose.LayerID, maxSize int) (*compose.Pixmap, error) {
	if b.disposed {
		return nil, compose.ErrDisposed
	}
	return b.cpu.RenderLayerThumbnail(doc, id, maxSize)
}

// Dispose implements compose.Renderer.
func (b *Backend) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.cpu.Dispose()
	if b.dev != nil {
		b.dev.Close()
		b.dev = nil
	}
}

// SetDeviceProvider switches the backend to a shared GPU device from an
// external provider (e.g. a gogpu window context). The provider must
// also expose HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue. Call before rendering.
func (b *Backend) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("gpu: provider does not expose HAL types")
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}

	shared, err := newSharedDevice(dev, queue)
	if err != nil {
		return fmt.Errorf("gpu: create pipeline on shared device: %w", err)
	}
	if b.dev != nil {
		b.dev.Close()
	}
	b.dev = shared
	compose.Logger().Info("GPU compositing on shared device")
	return nil
}
