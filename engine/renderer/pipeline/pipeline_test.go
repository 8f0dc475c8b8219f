//go:build !js

package pipeline

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/shader"
)

func testShader(t *testing.T) shader.Shader {
	t.Helper()
	s, err := shader.NewShader("test", "fn vs_main() {}", shader.WithEntryPoints("vert", "frag"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("standard")

	if p.PipelineKey() != "standard" {
		t.Errorf("key = %q", p.PipelineKey())
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() || p.BlendEnabled() {
		t.Error("expected opaque depth-tested defaults")
	}
	if p.CullMode() != wgpu.CullModeNone || p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.FrontFace() != wgpu.FrontFaceCCW {
		t.Error("unexpected primitive defaults")
	}
	if p.SampleCount() != 1 {
		t.Errorf("sample count = %d, want 1", p.SampleCount())
	}
	if p.RenderPipeline() != nil {
		t.Error("expected no GPU pipeline before creation")
	}
	p.Release()
}

func TestDescriptor(t *testing.T) {
	module := &wgpu.ShaderModule{}

	t.Run("missing shader", func(t *testing.T) {
		_, err := NewPipeline("p").Descriptor(nil, module)
		if !errors.Is(err, ErrMissingShader) {
			t.Fatalf("err = %v, want ErrMissingShader", err)
		}
	})

	t.Run("missing module", func(t *testing.T) {
		_, err := NewPipeline("p", WithShader(testShader(t))).Descriptor(nil, nil)
		if !errors.Is(err, ErrMissingShader) {
			t.Fatalf("err = %v, want ErrMissingShader", err)
		}
	})

	t.Run("configured state", func(t *testing.T) {
		p := NewPipeline("p",
			WithShader(testShader(t)),
			WithSampleCount(4),
			WithCullMode(wgpu.CullModeBack),
			WithDepthBias(2, 1.5),
			WithBlendEnabled(true),
		)
		desc, err := p.Descriptor(nil, module)
		if err != nil {
			t.Fatal(err)
		}
		if desc.Vertex.EntryPoint != "vert" || desc.Fragment.EntryPoint != "frag" {
			t.Errorf("entry points = %q, %q", desc.Vertex.EntryPoint, desc.Fragment.EntryPoint)
		}
		if desc.Multisample.Count != 4 {
			t.Errorf("sample count = %d", desc.Multisample.Count)
		}
		if desc.Primitive.CullMode != wgpu.CullModeBack {
			t.Error("cull mode not applied")
		}
		if desc.DepthStencil == nil || desc.DepthStencil.DepthBias != 2 {
			t.Error("depth state not applied")
		}
		if desc.Fragment.Targets[0].Blend == nil {
			t.Error("blend state not applied")
		}
	})

	t.Run("depth disabled", func(t *testing.T) {
		desc, err := NewPipeline("p", WithShader(testShader(t)), WithDepthTestEnabled(false), WithSampleCount(0)).Descriptor(nil, module)
		if err != nil {
			t.Fatal(err)
		}
		if desc.DepthStencil != nil {
			t.Error("expected no depth stencil state")
		}
		if desc.Multisample.Count != 1 {
			t.Errorf("sample count = %d, want 1", desc.Multisample.Count)
		}
		if desc.Fragment.Targets[0].Blend != nil {
			t.Error("blend should be off by default")
		}
	})
}
