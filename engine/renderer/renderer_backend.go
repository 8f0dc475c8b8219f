package renderer

import (
	"fmt"
	"strings"
)

// RendererBackendType identifies the implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeSoftware rasterizes on the CPU. It needs no GPU and is always available.
	BackendTypeSoftware RendererBackendType = iota

	// BackendTypeWGPU renders into an offscreen WebGPU texture and reads it back through a staging buffer.
	BackendTypeWGPU
)

// String returns the flag spelling of the backend type.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeSoftware:
		return "software"
	case BackendTypeWGPU:
		return "wgpu"
	default:
		return fmt.Sprintf("backend(%d)", int(t))
	}
}

// ParseBackendType maps a flag value to a RendererBackendType.
//
// Parameters:
//   - s: "software" or "wgpu", case-insensitive
//
// Returns:
//   - RendererBackendType: the matching type
//   - error: ErrUnsupportedBackend for anything else
func ParseBackendType(s string) (RendererBackendType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "software", "cpu", "":
		return BackendTypeSoftware, nil
	case "wgpu", "gpu", "webgpu":
		return BackendTypeWGPU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedBackend, s)
	}
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend draws frames into a fixed-size offscreen target and reads it back.
//
// The Renderer serializes every call; backends need no locking of their own
// beyond what their internal worker goroutines require.
type RendererBackend interface {
	// BeginFrame clears the target to the frame's clear color and uploads per-frame state.
	//
	// Parameters:
	//   - frame: the frame being drawn; it stays valid until EndFrame returns
	//
	// Returns:
	//   - error: an error if the frame could not be started
	BeginFrame(frame *Frame) error

	// DrawCall records one object. It may return before the object is rasterized.
	//
	// Parameters:
	//   - cmd: the draw command
	//
	// Returns:
	//   - error: an error if resources for the object could not be created
	DrawCall(cmd DrawCommand) error

	// EndFrame finishes every recorded draw. On success the target holds the complete frame;
	// on failure it still holds the previous one.
	//
	// Returns:
	//   - error: an error if submission failed
	EndFrame() error

	// AbortFrame discards everything recorded since BeginFrame. The target keeps the
	// last frame that EndFrame completed.
	AbortFrame()

	// ReadPixels copies the target into dst as top-left origin, straight alpha RGBA8.
	//
	// Parameters:
	//   - dst: exactly width * height * 4 bytes
	//
	// Returns:
	//   - error: an error if the read-back failed
	ReadPixels(dst []byte) error

	// Release frees every resource held by the backend.
	Release()
}
