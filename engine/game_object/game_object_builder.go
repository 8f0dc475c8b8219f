package game_object

import (
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
)

// GameObjectBuilderOption is a function that configures a game object during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the identifier of the game object.
//
// Parameters:
//   - id: the identifier
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the id option
func WithID(id uint64) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.id = id
	}
}

// WithName sets the lookup name of the game object.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the name option
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithVisible sets the initial visibility.
//
// Parameters:
//   - visible: false to start hidden
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the visibility option
func WithVisible(visible bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.visible.Store(visible)
	}
}

// WithModel sets the mesh drawn for the game object.
//
// Parameters:
//   - m: the model
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the model option
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithMaterial sets the surface material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the material option
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mat = m
	}
}

// WithPosition sets the initial world-space translation.
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.transform.Position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation in radians.
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.transform.Rotation = [3]float32{rx, ry, rz}
	}
}

// WithScaling sets the initial per-axis scale factors.
func WithScaling(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.transform.Scaling = [3]float32{sx, sy, sz}
	}
}
