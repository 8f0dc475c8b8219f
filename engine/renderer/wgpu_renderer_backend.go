//go:build !js

package renderer

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/camera"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/light"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/pipeline"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/shader"
)

//go:embed assets/standard.wgsl
var standardShaderSource string

// copyRowAlignment is the WebGPU requirement for BytesPerRow in texture to buffer copies.
const copyRowAlignment = 256

const (
	sceneLightsSize = 16 + light.MaxGPULights*light.GPULightSize
	objectSize      = 64 + material.GPUMaterialSize
)

const (
	frameGroup  = 0
	objectGroup = 1
)

// bindingSize returns the uniform size of an annotated struct type.
func bindingSize(structType shader.AnnotationArg) (uint64, error) {
	switch structType {
	case shader.AnnotationArgCamera:
		return uint64((&camera.GPUCameraUniform{}).Size()), nil
	case shader.AnnotationArgSceneLights:
		return sceneLightsSize, nil
	case shader.AnnotationArgObject:
		return objectSize, nil
	default:
		return 0, fmt.Errorf("no uniform buffer for struct type %q", structType)
	}
}

type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

type gpuObject struct {
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	width       uint32
	height      uint32
	sampleCount MSAASampleCount

	colorTexture      *wgpu.Texture
	colorView         *wgpu.TextureView
	msaaTexture       *wgpu.Texture
	msaaView          *wgpu.TextureView
	depthTexture      *wgpu.Texture
	depthView         *wgpu.TextureView
	staging           *wgpu.Buffer
	paddedBytesPerRow uint32

	pipeline       pipeline.Pipeline
	frameLayout    *wgpu.BindGroupLayout
	objectLayout   *wgpu.BindGroupLayout
	cameraBuffer   *wgpu.Buffer
	lightsBuffer   *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup

	meshes  map[model.Model]*gpuMesh
	objects map[uint64]*gpuObject

	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend acquires a headless device and builds the offscreen target,
// the standard pipeline and the read-back staging buffer.
func newWGPURendererBackend(width, height int, forceFallbackAdapter bool, sampleCount MSAASampleCount) (RendererBackend, error) {
	if sampleCount != MSAAOff && sampleCount != MSAA4x {
		sampleCount = MSAAOff
	}
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		width:       uint32(width),
		height:      uint32(height),
		sampleCount: sampleCount,
		meshes:      make(map[model.Model]*gpuMesh),
		objects:     make(map[uint64]*gpuObject),
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Offscreen Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.createTargets(); err != nil {
		b.Release()
		return nil, err
	}
	if err := b.createPipeline(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func (b *wgpuRendererBackendImpl) createTargets() error {
	size := wgpu.Extent3D{Width: b.width, Height: b.height, DepthOrArrayLayers: 1}
	count := uint32(b.sampleCount)

	var err error
	b.colorTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Offscreen Color Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return err
	}
	if b.colorView, err = b.colorTexture.CreateView(nil); err != nil {
		return err
	}

	if count > 1 {
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        wgpu.TextureFormatRGBA8Unorm,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		if b.msaaView, err = b.msaaTexture.CreateView(nil); err != nil {
			return err
		}
	}

	// Depth sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	if b.depthView, err = b.depthTexture.CreateView(nil); err != nil {
		return err
	}

	b.paddedBytesPerRow = alignUp(b.width*4, copyRowAlignment)
	b.staging, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Readback Staging Buffer",
		Size:  uint64(b.paddedBytesPerRow) * uint64(b.height),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	return err
}

func (b *wgpuRendererBackendImpl) createPipeline() error {
	sh, err := shader.NewShader("standard", standardShaderSource)
	if err != nil {
		return err
	}
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: sh.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: sh.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("compile %s shader: %w", sh.Key(), err)
	}
	defer module.Release()

	if b.frameLayout, err = b.createBindGroupLayout(sh, frameGroup, "Frame"); err != nil {
		return err
	}
	if b.objectLayout, err = b.createBindGroupLayout(sh, objectGroup, "Object"); err != nil {
		return err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            sh.Key(),
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.objectLayout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	// Both faces are rasterized; the fragment stage lights whichever side faces the camera.
	b.pipeline = pipeline.NewPipeline(sh.Key(),
		pipeline.WithShader(sh),
		pipeline.WithVertexBuffers(wgpu.VertexBufferLayout{
			ArrayStride: model.GPUVertexSize,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			},
		}),
		pipeline.WithTargetFormats(wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatDepth24Plus),
		pipeline.WithSampleCount(uint32(b.sampleCount)),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	desc, err := b.pipeline.Descriptor(pipelineLayout, module)
	if err != nil {
		return err
	}
	rp, err := b.device.CreateRenderPipeline(desc)
	if err != nil {
		return fmt.Errorf("create %s pipeline: %w", sh.Key(), err)
	}
	b.pipeline.SetRenderPipeline(rp)

	b.cameraBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  uint64((&camera.GPUCameraUniform{}).Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.lightsBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Lights Uniform Buffer",
		Size:  sceneLightsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	buffers := map[shader.AnnotationArg]*wgpu.Buffer{
		shader.AnnotationArgCamera:      b.cameraBuffer,
		shader.AnnotationArgSceneLights: b.lightsBuffer,
	}
	var entries []wgpu.BindGroupEntry
	for _, d := range sh.Bindings(frameGroup) {
		buf, ok := buffers[d.StructType()]
		if !ok {
			return fmt.Errorf("frame group binding %d: no buffer for %q", *d.Binding, d.StructType())
		}
		entries = append(entries, wgpu.BindGroupEntry{Binding: uint32(*d.Binding), Buffer: buf, Offset: 0, Size: wgpu.WholeSize})
	}
	b.frameBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Frame Bind Group",
		Layout:  b.frameLayout,
		Entries: entries,
	})
	return err
}

// createBindGroupLayout builds the layout of one bind group from the shader's declarations.
func (b *wgpuRendererBackendImpl) createBindGroupLayout(sh shader.Shader, group int, label string) (*wgpu.BindGroupLayout, error) {
	decls := sh.Bindings(group)
	if len(decls) == 0 {
		return nil, fmt.Errorf("shader %s declares nothing in group %d", sh.Key(), group)
	}
	entries := make([]wgpu.BindGroupLayoutEntry, 0, len(decls))
	for _, d := range decls {
		size, err := bindingSize(d.StructType())
		if err != nil {
			return nil, err
		}
		bindingType := wgpu.BufferBindingTypeUniform
		if d.AddressSpace() == shader.AddressSpaceStorageRead {
			bindingType = wgpu.BufferBindingTypeReadOnlyStorage
		}
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(*d.Binding),
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           bindingType,
				MinBindingSize: size,
			},
		})
	}
	return b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   label + " Bind Group Layout",
		Entries: entries,
	})
}

func (b *wgpuRendererBackendImpl) BeginFrame(frame *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder != nil {
		return errors.New("previous frame not ended")
	}

	cam := camera.GPUCameraUniform{ViewProj: frame.ViewProj, CameraPosition: frame.Eye}
	b.queue.WriteBuffer(b.cameraBuffer, 0, cam.Marshal())
	b.queue.WriteBuffer(b.lightsBuffer, 0, marshalSceneLights(frame))

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	// With MSAA the multisampled texture is drawn and resolved into the color texture.
	attachment := wgpu.RenderPassColorAttachment{
		View:    b.colorView,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: float64(frame.ClearColor.R),
			G: float64(frame.ClearColor.G),
			B: float64(frame.ClearColor.B),
			A: float64(frame.ClearColor.A),
		},
	}
	if b.msaaView != nil {
		attachment.View = b.msaaView
		attachment.ResolveTarget = b.colorView
		attachment.StoreOp = wgpu.StoreOpDiscard
	}

	b.framePass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	b.frameEncoder = encoder
	b.framePass.SetPipeline(b.pipeline.RenderPipeline())
	b.framePass.SetBindGroup(0, b.frameBindGroup, nil)
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(cmd DrawCommand) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errors.New("draw outside a frame")
	}
	mesh, err := b.meshFor(cmd.Model)
	if err != nil {
		return err
	}
	obj, err := b.objectFor(cmd.ObjectID, cmd.Name)
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(obj.uniform, 0, marshalObject(cmd))

	b.framePass.SetBindGroup(1, obj.bindGroup, nil)
	b.framePass.SetVertexBuffer(0, mesh.vertexBuffer, 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return nil
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

// AbortFrame ends the open pass and drops the encoder without submitting it,
// so the color texture keeps the last submitted frame.
func (b *wgpuRendererBackendImpl) AbortFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return
	}
	b.framePass.End()
	b.framePass = nil
	b.frameEncoder.Release()
	b.frameEncoder = nil
}

// ReadPixels copies the color texture into the staging buffer, waits for the map and
// strips the row padding the copy alignment requires.
func (b *wgpuRendererBackendImpl) ReadPixels(dst []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rowBytes := int(b.width) * 4
	if len(dst) != rowBytes*int(b.height) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDestinationSize, len(dst), rowBytes*int(b.height))
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  b.colorTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: b.staging,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  b.paddedBytesPerRow,
				RowsPerImage: b.height,
			},
		},
		&wgpu.Extent3D{Width: b.width, Height: b.height, DepthOrArrayLayers: 1},
	)
	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	size := uint64(b.paddedBytesPerRow) * uint64(b.height)
	var (
		status wgpu.BufferMapAsyncStatus
		mapped bool
	)
	b.staging.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
		mapped = true
	})
	b.device.Poll(true, nil)
	if !mapped || status != wgpu.BufferMapAsyncStatusSuccess {
		return fmt.Errorf("map staging buffer: status %v", status)
	}

	data := b.staging.GetMappedRange(0, uint(size))
	for y := 0; y < int(b.height); y++ {
		src := data[y*int(b.paddedBytesPerRow) : y*int(b.paddedBytesPerRow)+rowBytes]
		copy(dst[y*rowBytes:(y+1)*rowBytes], src)
	}
	b.staging.Unmap()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, obj := range b.objects {
		obj.bindGroup.Release()
		obj.uniform.Release()
	}
	for _, mesh := range b.meshes {
		mesh.vertexBuffer.Release()
		mesh.indexBuffer.Release()
	}
	b.objects = nil
	b.meshes = nil

	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
	}
	if b.cameraBuffer != nil {
		b.cameraBuffer.Release()
	}
	if b.lightsBuffer != nil {
		b.lightsBuffer.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.objectLayout != nil {
		b.objectLayout.Release()
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
	}
	if b.staging != nil {
		b.staging.Release()
	}
	for _, v := range []*wgpu.TextureView{b.depthView, b.msaaView, b.colorView} {
		if v != nil {
			v.Release()
		}
	}
	for _, t := range []*wgpu.Texture{b.depthTexture, b.msaaTexture, b.colorTexture} {
		if t != nil {
			t.Release()
		}
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

func (b *wgpuRendererBackendImpl) meshFor(m model.Model) (*gpuMesh, error) {
	if mesh, ok := b.meshes[m]; ok {
		return mesh, nil
	}
	vertexData := m.VertexData()
	indexData := m.IndexData()
	if len(vertexData) == 0 || len(indexData) == 0 {
		return nil, fmt.Errorf("model %q has no geometry", m.Name())
	}

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, err
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	mesh := &gpuMesh{vertexBuffer: vb, indexBuffer: ib, indexCount: uint32(m.IndexCount())}
	b.meshes[m] = mesh
	return mesh, nil
}

func (b *wgpuRendererBackendImpl) objectFor(id uint64, name string) (*gpuObject, error) {
	if obj, ok := b.objects[id]; ok {
		return obj, nil
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name + " Object Buffer",
		Size:  objectSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  name + " Object Bind Group",
		Layout: b.objectLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buf.Release()
		return nil, err
	}
	obj := &gpuObject{uniform: buf, bindGroup: bg}
	b.objects[id] = obj
	return obj, nil
}

// marshalSceneLights packs the ambient color, the light count and up to MaxGPULights lights.
func marshalSceneLights(frame *Frame) []byte {
	buf := make([]byte, sceneLightsSize)
	ambient := frame.Ambient.Array()
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(ambient[i]))
	}
	n := min(len(frame.Lights), light.MaxGPULights)
	binary.LittleEndian.PutUint32(buf[12:], uint32(n))
	for i := range n {
		g := light.NewGPULight(frame.Lights[i])
		copy(buf[16+i*light.GPULightSize:], g.Marshal())
	}
	return buf
}

// marshalObject packs the model matrix followed by the material.
func marshalObject(cmd DrawCommand) []byte {
	buf := make([]byte, objectSize)
	for i, v := range cmd.ModelMatrix {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	mat := material.NewGPUMaterial(cmd.Material)
	copy(buf[64:], mat.Marshal())
	return buf
}

func alignUp(v, a uint32) uint32 {
	return (v + a - 1) / a * a
}
