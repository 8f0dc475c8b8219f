package light

import (
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
)

// Shade computes the final standard-material color at a surface point lit by lights.
//
// The diffuse sum is multiplied by the material diffuse color, emissive and ambient terms are added
// and the result is clamped before the specular sum is added, then clamped again.
//
// Parameters:
//   - lights: the scene lights; disabled lights contribute nothing
//   - position: the world-space surface position
//   - normal: the unit world-space surface normal
//   - eye: the camera position
//   - props: the material snapshot
//   - sceneAmbient: the scene ambient color, multiplied by the material ambient color
//
// Returns:
//   - common.Color4: the shaded color with the material alpha
func Shade(lights []Light, position, normal, eye [3]float32, props material.Properties, sceneAmbient common.Color3) common.Color4 {
	viewDir := common.Normalize3(common.Sub3(eye, position))

	var diffuse, specular common.Color3
	for _, l := range lights {
		c := l.Contribute(position, normal, viewDir, props.SpecularPower)
		diffuse = diffuse.Add(c.Diffuse)
		specular = specular.Add(c.Specular)
	}

	base := diffuse.Mul(props.Diffuse).
		Add(props.Emissive).
		Add(props.Ambient.Mul(sceneAmbient)).
		Clamp()
	return base.Add(specular.Mul(props.Specular)).Clamp().WithAlpha(props.Alpha)
}
