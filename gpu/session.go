package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compose"
)

// session holds one frame's GPU state. The backdrop lives in a storage
// buffer for the whole frame; each Draw uploads one source surface and
// folds it in with a compute dispatch. The three buffers never change,
// so a single bind group serves every dispatch.
//
// session implements render.Sink.
type session struct {
	d    *device
	w, h int

	params  hal.Buffer
	src     hal.Buffer
	dst     hal.Buffer
	staging hal.Buffer
	bind    hal.BindGroup

	// First dispatch failure; later draws become no-ops and the frame
	// falls back to the CPU path.
	err error
}

const paramsSize = 16 // width, height, mode: u32; opacity: f32

func newSession(d *device, backdrop *compose.Pixmap, w, h int) (*session, error) {
	s := &session{d: d, w: w, h: h}
	pixelBufSize := uint64(w * h * 4)

	var err error
	s.params, err = d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: "blend_params", Size: paramsSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create params buffer: %w", err)
	}
	s.src, err = d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: "blend_src", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("create source buffer: %w", err)
	}
	s.dst, err = d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: "blend_dst", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("create backdrop buffer: %w", err)
	}
	s.staging, err = d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: "blend_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}

	s.bind, err = d.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "blend_bind", Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: s.params.NativeHandle(), Offset: 0, Size: paramsSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: s.src.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: s.dst.NativeHandle(), Offset: 0, Size: pixelBufSize}},
		},
	})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	d.queue.WriteBuffer(s.dst, 0, packRegion(backdrop, w, h))
	return s, nil
}

// Draw implements render.Sink: upload the surface and fold it onto the
// backdrop buffer in a compute pass. Draw never reports errors directly;
// the first failure is latched and surfaced by finish.
func (s *session) Draw(src *compose.Pixmap, mode compose.BlendMode, opacity float64) {
	if s.err != nil {
		return
	}
	s.d.queue.WriteBuffer(s.src, 0, packRegion(src, s.w, s.h))
	s.d.queue.WriteBuffer(s.params, 0, packParams(s.w, s.h, mode, opacity))

	encoder, err := s.d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "blend_encoder"})
	if err != nil {
		s.err = fmt.Errorf("create command encoder: %w", err)
		return
	}
	if err := encoder.BeginEncoding("blend"); err != nil {
		s.err = fmt.Errorf("begin encoding: %w", err)
		return
	}
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "blend_pass"})
	pass.SetPipeline(s.d.pipeline)
	pass.SetBindGroup(0, s.bind, nil)
	pass.Dispatch((uint32(s.w)+7)/8, (uint32(s.h)+7)/8, 1)
	pass.End()
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		s.err = fmt.Errorf("end encoding: %w", err)
		return
	}
	if err := s.d.submit(cmdBuf); err != nil {
		s.err = err
	}
}

// finish copies the composited backdrop back into out.
func (s *session) finish(out *compose.Pixmap) error {
	if s.err != nil {
		return s.err
	}
	pixelBufSize := uint64(s.w * s.h * 4)

	encoder, err := s.d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "readback_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("readback"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(s.dst, s.staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	if err := s.d.submit(cmdBuf); err != nil {
		return err
	}

	readback := make([]byte, pixelBufSize)
	if err := s.d.queue.ReadBuffer(s.staging, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	copy(out.Data(), readback)
	return nil
}

func (s *session) close() {
	if s.bind != nil {
		s.d.dev.DestroyBindGroup(s.bind)
	}
	for _, buf := range []hal.Buffer{s.params, s.src, s.dst, s.staging} {
		if buf != nil {
			s.d.dev.DestroyBuffer(buf)
		}
	}
}

func packParams(w, h int, mode compose.BlendMode, opacity float64) []byte {
	out := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(out[0:], uint32(w))
	binary.LittleEndian.PutUint32(out[4:], uint32(h))
	binary.LittleEndian.PutUint32(out[8:], uint32(mode))
	binary.LittleEndian.PutUint32(out[12:], math.Float32bits(float32(opacity)))
	return out
}

// packRegion extracts the top-left (w, h) region of pix as shader texels.
// The shader's packed layout (0xAABBGGRR, little-endian) matches the
// pixmap's R,G,B,A byte order, so packing is a row copy. Pooled surfaces
// may be wider than the frame; the extra columns are dropped here.
func packRegion(pix *compose.Pixmap, w, h int) []byte {
	out := make([]byte, w*h*4)
	data := pix.Data()
	stride := pix.Width() * 4
	rowLen := w * 4
	for y := 0; y < h; y++ {
		copy(out[y*rowLen:(y+1)*rowLen], data[y*stride:y*stride+rowLen])
	}
	return out
}
