package light

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPULightSource is the canonical WGSL definition of the Light struct.
// Matches GPULight layout exactly (80 bytes).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULightSize is the packed size of a GPULight in bytes.
const GPULightSize = 80

// MaxGPULights is the number of lights the uniform light block holds.
const MaxGPULights = 4

// GPULight is the uniform-buffer representation of a Light.
type GPULight struct {
	Position    [3]float32 // offset  0
	Type        uint32     // offset 12
	Direction   [3]float32 // offset 16
	Intensity   float32    // offset 28
	Diffuse     [3]float32 // offset 32
	Range       float32    // offset 44
	Specular    [3]float32 // offset 48
	Enabled     uint32     // offset 60
	GroundColor [3]float32 // offset 64
	_           float32    // offset 76: padding
}

// NewGPULight packs a Light for upload.
func NewGPULight(l Light) GPULight {
	g := GPULight{
		Position:    l.Position(),
		Type:        uint32(l.Type()),
		Direction:   l.Direction(),
		Intensity:   l.Intensity(),
		Diffuse:     l.Diffuse().Array(),
		Range:       l.Range(),
		Specular:    l.Specular().Array(),
		GroundColor: l.GroundColor().Array(),
	}
	if l.Enabled() {
		g.Enabled = 1
	}
	return g
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, GPULightSize)
	putF := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i := 0; i < 3; i++ {
		putF(i*4, g.Position[i])
		putF(16+i*4, g.Direction[i])
		putF(32+i*4, g.Diffuse[i])
		putF(48+i*4, g.Specular[i])
		putF(64+i*4, g.GroundColor[i])
	}
	binary.LittleEndian.PutUint32(buf[12:], g.Type)
	putF(28, g.Intensity)
	putF(44, g.Range)
	binary.LittleEndian.PutUint32(buf[60:], g.Enabled)
	return buf
}
