package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
)

const (
	testWidth  = 32
	testHeight = 24
)

func identity() [16]float32 {
	var m [16]float32
	common.Identity(m[:])
	return m
}

// topHalfQuad covers NDC y in [0, 1] when drawn with identity matrices.
func topHalfQuad(normalZ float32) model.Model {
	n := [3]float32{0, 0, normalZ}
	return model.NewModel(
		model.WithName("quad"),
		model.WithPositions([][3]float32{{-1, 0, 0.5}, {1, 0, 0.5}, {1, 1, 0.5}, {-1, 1, 0.5}}),
		model.WithNormals([][3]float32{n, n, n, n}),
		model.WithIndices([]uint32{0, 1, 2, 0, 2, 3}),
	)
}

func whiteEmissive(culling bool) material.Properties {
	return material.Properties{
		Emissive:        common.Color3{R: 1, G: 1, B: 1},
		Alpha:           1,
		BackFaceCulling: culling,
	}
}

func quadFrame(normalZ float32, culling bool) *Frame {
	return &Frame{
		ClearColor: common.Color4{R: 0, G: 0, B: 1, A: 1},
		ViewProj:   identity(),
		Eye:        [3]float32{0, 0, -10},
		Draws: []DrawCommand{{
			ObjectID:    1,
			Name:        "quad",
			Model:       topHalfQuad(normalZ),
			Material:    whiteEmissive(culling),
			ModelMatrix: identity(),
		}},
	}
}

func newTestRenderer(t *testing.T, opts ...RendererBuilderOption) Renderer {
	t.Helper()
	opts = append([]RendererBuilderOption{WithSize(testWidth, testHeight), WithWorkers(2)}, opts...)
	r, err := NewRenderer(BackendTypeSoftware, opts...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func pixel(buf []byte, x, y int) [4]byte {
	i := (y*testWidth + x) * 4
	return [4]byte{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func TestSolidClearReadback(t *testing.T) {
	r := newTestRenderer(t)
	if err := r.Render(&Frame{ClearColor: common.Color4{R: 1, A: 1}}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	buf := make([]byte, FrameSize(testWidth, testHeight))
	if err := r.ReadPixels(buf); err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	want := bytes.Repeat([]byte{255, 0, 0, 255}, testWidth*testHeight)
	if !bytes.Equal(buf, want) {
		t.Fatalf("frame is not solid red; first pixel %v", pixel(buf, 0, 0))
	}
}

func TestReadPixelsErrors(t *testing.T) {
	r := newTestRenderer(t)
	full := make([]byte, FrameSize(testWidth, testHeight))

	if err := r.ReadPixels(full); !errors.Is(err, ErrNotReady) {
		t.Errorf("before first render: got %v, want ErrNotReady", err)
	}
	if r.Ready() {
		t.Error("Ready() = true before first render")
	}

	if err := r.Render(&Frame{ClearColor: common.Color4{A: 1}}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	tests := []struct {
		name string
		size int
	}{
		{"short", len(full) - 1},
		{"long", len(full) + 4},
		{"empty", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.ReadPixels(make([]byte, tt.size)); !errors.Is(err, ErrDestinationSize) {
				t.Errorf("got %v, want ErrDestinationSize", err)
			}
		})
	}

	r.Close()
	if err := r.ReadPixels(full); !errors.Is(err, ErrClosed) {
		t.Errorf("after close: got %v, want ErrClosed", err)
	}
	if err := r.Render(&Frame{}); !errors.Is(err, ErrClosed) {
		t.Errorf("render after close: got %v, want ErrClosed", err)
	}
}

func TestRepeatedReadsAreIdentical(t *testing.T) {
	r := newTestRenderer(t)
	if err := r.Render(quadFrame(-1, true)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	a := make([]byte, FrameSize(testWidth, testHeight))
	b := make([]byte, len(a))
	if err := r.ReadPixels(a); err != nil {
		t.Fatal(err)
	}
	if err := r.ReadPixels(b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two reads without a render differ")
	}
	if got := r.FrameCount(); got != 1 {
		t.Errorf("FrameCount() = %d, want 1", got)
	}
}

func TestFailedRenderKeepsLastFrame(t *testing.T) {
	r := newTestRenderer(t)
	if err := r.Render(&Frame{ClearColor: common.Color4{R: 1, A: 1}}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	red := bytes.Repeat([]byte{255, 0, 0, 255}, testWidth*testHeight)

	broken := quadFrame(-1, true)
	broken.Draws = append(broken.Draws, DrawCommand{ObjectID: 2, Name: "broken", ModelMatrix: identity()})
	if err := r.Render(broken); err == nil {
		t.Fatal("expected render with a model-less draw to fail")
	}
	if got := r.FrameCount(); got != 1 {
		t.Errorf("FrameCount() = %d after failed render, want 1", got)
	}
	if !r.Ready() {
		t.Error("Ready() = false after failed render, want the last frame to stay readable")
	}

	buf := make([]byte, FrameSize(testWidth, testHeight))
	if err := r.ReadPixels(buf); err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	if !bytes.Equal(buf, red) {
		t.Fatalf("failed render leaked into the surface; first pixel %v", pixel(buf, 0, 0))
	}

	// The next good frame replaces it as usual.
	if err := r.Render(&Frame{ClearColor: common.Color4{G: 1, A: 1}}); err != nil {
		t.Fatalf("Render after failure: %v", err)
	}
	if err := r.ReadPixels(buf); err != nil {
		t.Fatal(err)
	}
	if got := pixel(buf, 0, 0); got != [4]byte{0, 255, 0, 255} {
		t.Errorf("pixel after recovery = %v, want green", got)
	}
	if got := r.FrameCount(); got != 2 {
		t.Errorf("FrameCount() = %d, want 2", got)
	}
}

func TestReadbackOrigin(t *testing.T) {
	white := [4]byte{255, 255, 255, 255}
	blue := [4]byte{0, 0, 255, 255}

	tests := []struct {
		name     string
		origin   Origin
		firstRow [4]byte
		lastRow  [4]byte
	}{
		{"bottom-left", OriginBottomLeft, blue, white},
		{"top-left", OriginTopLeft, white, blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, WithReadbackOrigin(tt.origin))
			if r.Origin() != tt.origin {
				t.Fatalf("Origin() = %v, want %v", r.Origin(), tt.origin)
			}
			if err := r.Render(quadFrame(-1, true)); err != nil {
				t.Fatalf("Render: %v", err)
			}
			buf := make([]byte, FrameSize(testWidth, testHeight))
			if err := r.ReadPixels(buf); err != nil {
				t.Fatalf("ReadPixels: %v", err)
			}
			if got := pixel(buf, testWidth/2, 2); got != tt.firstRow {
				t.Errorf("near first row = %v, want %v", got, tt.firstRow)
			}
			if got := pixel(buf, testWidth/2, testHeight-3); got != tt.lastRow {
				t.Errorf("near last row = %v, want %v", got, tt.lastRow)
			}
		})
	}
}

func TestBackFaceCulling(t *testing.T) {
	tests := []struct {
		name    string
		normalZ float32
		culling bool
		drawn   bool
	}{
		{"front face", -1, true, true},
		{"back face culled", 1, true, false},
		{"back face two-sided", 1, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, WithReadbackOrigin(OriginTopLeft))
			if err := r.Render(quadFrame(tt.normalZ, tt.culling)); err != nil {
				t.Fatalf("Render: %v", err)
			}
			buf := make([]byte, FrameSize(testWidth, testHeight))
			if err := r.ReadPixels(buf); err != nil {
				t.Fatalf("ReadPixels: %v", err)
			}
			got := pixel(buf, testWidth/4, testHeight/4)
			if drawn := got == [4]byte{255, 255, 255, 255}; drawn != tt.drawn {
				t.Errorf("pixel %v, drawn = %v, want %v", got, drawn, tt.drawn)
			}
		})
	}
}

func TestFlipRows(t *testing.T) {
	buf := []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4,
		5, 5, 5, 5, 6, 6, 6, 6,
	}
	FlipRows(buf, 2, 3)
	want := []byte{
		5, 5, 5, 5, 6, 6, 6, 6,
		3, 3, 3, 3, 4, 4, 4, 4,
		1, 1, 1, 1, 2, 2, 2, 2,
	}
	if !bytes.Equal(buf, want) {
		t.Errorf("FlipRows = %v, want %v", buf, want)
	}
}

func TestUnpremultiply(t *testing.T) {
	tests := []struct {
		c, a, want byte
	}{
		{0, 128, 0},
		{128, 128, 255},
		{64, 128, 128},
		{200, 100, 255},
	}
	for _, tt := range tests {
		if got := unpremultiply(tt.c, tt.a); got != tt.want {
			t.Errorf("unpremultiply(%d, %d) = %d, want %d", tt.c, tt.a, got, tt.want)
		}
	}
}

func TestParseBackendType(t *testing.T) {
	tests := []struct {
		in      string
		want    RendererBackendType
		wantErr bool
	}{
		{"software", BackendTypeSoftware, false},
		{"WGPU", BackendTypeWGPU, false},
		{"", BackendTypeSoftware, false},
		{"vulkan", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackendType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRendererRejectsBadSize(t *testing.T) {
	if _, err := NewRenderer(BackendTypeSoftware, WithSize(0, 10)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("got %v, want ErrInvalidSize", err)
	}
}
