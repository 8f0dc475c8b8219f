package material

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUMaterialSource is the canonical WGSL definition of the Material uniform struct.
// Matches GPUMaterial layout exactly (64 bytes).
//
//go:embed assets/material.wgsl
var GPUMaterialSource string

// GPUMaterialSize is the packed size of a GPUMaterial in bytes.
const GPUMaterialSize = 64

// GPUMaterial is the uniform-buffer representation of Properties.
type GPUMaterial struct {
	Diffuse       [3]float32 // offset  0
	Alpha         float32    // offset 12
	Specular      [3]float32 // offset 16
	SpecularPower float32    // offset 28
	Emissive      [3]float32 // offset 32
	_             float32    // offset 44: padding
	Ambient       [3]float32 // offset 48
	_             float32    // offset 60: padding
}

// NewGPUMaterial packs a Properties snapshot for upload.
func NewGPUMaterial(p Properties) GPUMaterial {
	return GPUMaterial{
		Diffuse:       p.Diffuse.Array(),
		Alpha:         p.Alpha,
		Specular:      p.Specular.Array(),
		SpecularPower: p.SpecularPower,
		Emissive:      p.Emissive.Array(),
		Ambient:       p.Ambient.Array(),
	}
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, GPUMaterialSize)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i := 0; i < 3; i++ {
		put(i*4, g.Diffuse[i])
		put(16+i*4, g.Specular[i])
		put(32+i*4, g.Emissive[i])
		put(48+i*4, g.Ambient[i])
	}
	put(12, g.Alpha)
	put(28, g.SpecularPower)
	return buf
}
