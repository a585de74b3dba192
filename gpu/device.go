package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compose/internal/blend"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// device bundles the wgpu/hal objects behind the blend compute pipeline.
// All frames share one shader module, one bind group layout and one
// pipeline; per-frame buffers are created by session.
type device struct {
	instance hal.Instance
	dev      hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	adapterName string
	external    bool // shared device: don't destroy on Close
}

// gpuTimeout bounds every fence wait so a hung driver degrades into a
// CPU-rendered frame instead of a frozen caller.
const gpuTimeout = 5 * time.Second

func newDevice() (*device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	d := &device{
		instance:    instance,
		dev:         openDev.Device,
		queue:       openDev.Queue,
		adapterName: selected.Info.Name,
	}
	if err := d.createPipeline(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// newSharedDevice wraps an externally owned hal device and queue.
func newSharedDevice(dev hal.Device, queue hal.Queue) (*device, error) {
	d := &device{
		dev:         dev,
		queue:       queue,
		adapterName: "shared",
		external:    true,
	}
	if err := d.createPipeline(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *device) createPipeline() error {
	// Route the WGSL through naga to SPIR-V ourselves: the hal WGSL path
	// does the same thing but reports errors with less source context.
	spirv, err := compileWGSL(blend.ShaderSource)
	if err != nil {
		return fmt.Errorf("compile blend shader: %w", err)
	}
	shader, err := d.dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "blend",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	d.shader = shader

	bindLayout, err := d.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "blend_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "blend_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.dev.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "blend_pipeline", Layout: d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "cs_blend"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	d.pipeline = pipeline
	return nil
}

func (d *device) Close() {
	if d.dev != nil {
		if d.pipeline != nil {
			d.dev.DestroyComputePipeline(d.pipeline)
			d.pipeline = nil
		}
		if d.pipeLayout != nil {
			d.dev.DestroyPipelineLayout(d.pipeLayout)
			d.pipeLayout = nil
		}
		if d.bindLayout != nil {
			d.dev.DestroyBindGroupLayout(d.bindLayout)
			d.bindLayout = nil
		}
		if d.shader != nil {
			d.dev.DestroyShaderModule(d.shader)
			d.shader = nil
		}
	}
	if !d.external {
		if d.dev != nil {
			d.dev.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.dev = nil
	d.queue = nil
	d.instance = nil
}

// submit encodes the queued command buffer and blocks until the GPU
// signals the fence.
func (d *device) submit(cmdBuf hal.CommandBuffer) error {
	defer d.dev.FreeCommandBuffer(cmdBuf)

	fence, err := d.dev.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.dev.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := d.dev.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// compileWGSL compiles WGSL source to SPIR-V words (little-endian).
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
