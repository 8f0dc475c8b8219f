package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource declares CameraUniform for shaders that include the camera block.
// The standard shader binds it at group 0, binding 0.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the per-frame camera block. The eye position is padded out to a
// full vec4 slot, giving 80 bytes.
type GPUCameraUniform struct {
	ViewProj       [16]float32 // bytes 0-63, column-major
	CameraPosition [3]float32  // bytes 64-75, used for specular highlights
	_pad           float32
}

// NewGPUCameraUniform snapshots the camera's current view-projection and eye.
func NewGPUCameraUniform(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj:       c.ViewProjectionMatrix(),
		CameraPosition: c.Position(),
	}
}

// Size is the byte length of the block.
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal encodes the block little-endian for a queue write.
//
// Returns:
//   - []byte: Size() bytes; the padding word is zero
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	for _, v := range g.ViewProj {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, v := range g.CameraPosition {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return binary.LittleEndian.AppendUint32(buf, 0)
}
