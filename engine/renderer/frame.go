package renderer

import (
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/light"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
)

// DrawCommand is one object to draw, captured when the frame was built.
type DrawCommand struct {
	ObjectID    uint64
	Name        string
	Model       model.Model
	Material    material.Properties
	ModelMatrix [16]float32
	// Distance from the eye to the object's world-space center.
	Distance float32
}

// Frame is an immutable description of everything one render draws.
// Draws are drawn in slice order.
type Frame struct {
	ClearColor common.Color4
	Ambient    common.Color3
	ViewProj   [16]float32
	Eye        [3]float32
	Lights     []light.Light
	Draws      []DrawCommand
}
