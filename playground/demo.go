package playground

import (
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/camera"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/game_object"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/light"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/scene"
)

// Demo scene layout.
const (
	BallName     = "sphere"
	FloorName    = "ground"
	BallDiameter = 2
	BallSegments = 32
	FloorSize    = 6

	// MoveUpStep is how far MoveUp raises the ball.
	MoveUpStep = 0.05
)

// buildDemoScene creates the camera, the sky-facing hemispheric light, the ball resting on
// the ground and the ground itself.
func buildDemoScene(aspect float32) (scene.Scene, game_object.GameObject, game_object.GameObject) {
	cam := camera.NewCamera(
		camera.WithAspect(aspect),
		camera.WithController(camera.NewArcRotateController(
			camera.WithTarget(0, 0, 0),
			camera.WithEye(0, 5, -10),
		)),
	)

	sky := light.NewLight(light.LightTypeHemispheric,
		light.WithName("light"),
		light.WithDirection(0, 1, 0),
		light.WithIntensity(0.7),
	)

	ball := game_object.NewGameObject(
		game_object.WithName(BallName),
		game_object.WithModel(model.NewSphere(BallName, BallDiameter, BallSegments)),
		game_object.WithMaterial(material.NewMaterial(material.WithName("myMaterial"))),
		game_object.WithPosition(0, BallDiameter/2, 0),
	)
	floor := game_object.NewGameObject(
		game_object.WithName(FloorName),
		game_object.WithModel(model.NewGround(FloorName, FloorSize, FloorSize, 1)),
	)

	s := scene.NewScene("playground", cam,
		scene.WithActive(true),
		scene.WithObjects(ball, floor),
		scene.WithLights(sky),
	)
	return s, ball, floor
}

// MoveUp raises the ball by MoveUpStep.
func (c *Context) MoveUp() error {
	ball := c.Ball()
	if ball == nil {
		return ErrNotInitialized
	}
	ball.Translate(0, MoveUpStep, 0)
	return nil
}

// ChangeBallSize sets the ball's uniform scaling.
//
// Parameters:
//   - size: scale factor on every axis
//
// Returns:
//   - error: ErrNotInitialized before Init
func (c *Context) ChangeBallSize(size float32) error {
	ball := c.Ball()
	if ball == nil {
		return ErrNotInitialized
	}
	ball.SetScaling(size, size, size)
	return nil
}

// ChangeBallColor sets the ball's diffuse color. Channels are clamped to [0, 1].
// The alpha channel is accepted for call compatibility and ignored.
//
// Parameters:
//   - r, g, b: the diffuse color
//   - a: ignored
//
// Returns:
//   - error: ErrNotInitialized before Init
func (c *Context) ChangeBallColor(r, g, b, a float32) error {
	ball := c.Ball()
	if ball == nil {
		return ErrNotInitialized
	}
	ball.Material().SetDiffuse(common.Color3{R: r, G: g, B: b})
	return nil
}

// SetBallVisible shows or hides the ball.
func (c *Context) SetBallVisible(visible bool) error {
	ball := c.Ball()
	if ball == nil {
		return ErrNotInitialized
	}
	ball.SetVisible(visible)
	return nil
}

// SetFloorVisible shows or hides the ground.
func (c *Context) SetFloorVisible(visible bool) error {
	floor := c.Floor()
	if floor == nil {
		return ErrNotInitialized
	}
	floor.SetVisible(visible)
	return nil
}
