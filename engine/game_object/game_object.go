package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
)

// Transform is a snapshot of a game object's placement in the world.
type Transform struct {
	Position [3]float32
	Rotation [3]float32
	Scaling  [3]float32
}

// Matrix builds the column-major model matrix for the transform.
func (t Transform) Matrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], t.Position, t.Rotation, t.Scaling)
	return m
}

type gameObject struct {
	id      uint64
	name    string
	visible atomic.Bool
	mdl     model.Model
	mat     material.Material

	mu        *sync.RWMutex
	transform Transform
}

// GameObject is a placed instance of a Model rendered with a Material.
//
// Transform setters and visibility are safe to call from any goroutine while the
// render loop reads them. The last write wins.
type GameObject interface {
	// ID returns the scene-unique identifier.
	ID() uint64

	// Name returns the lookup name.
	Name() string

	// Visible reports whether the object is drawn.
	Visible() bool

	// SetVisible shows or hides the object.
	//
	// Parameters:
	//   - visible: false to skip the object in every frame until shown again
	SetVisible(visible bool)

	// Model returns the mesh drawn for this object.
	Model() model.Model

	// Material returns the surface material.
	Material() material.Material

	// Position returns the world-space translation.
	Position() [3]float32

	// SetPosition sets the world-space translation.
	SetPosition(x, y, z float32)

	// Translate adds a delta to the world-space translation.
	Translate(dx, dy, dz float32)

	// Rotation returns the Euler rotation in radians.
	Rotation() [3]float32

	// SetRotation sets the Euler rotation in radians.
	SetRotation(rx, ry, rz float32)

	// Scaling returns the per-axis scale factors.
	Scaling() [3]float32

	// SetScaling sets the per-axis scale factors.
	SetScaling(sx, sy, sz float32)

	// Transform returns a consistent snapshot of position, rotation and scaling.
	//
	// Returns:
	//   - Transform: the snapshot
	Transform() Transform

	// WorldBounds returns the world-space bounding sphere of the object.
	//
	// Returns:
	//   - center: the world-space center
	//   - radius: the model bounding radius scaled by the largest scale factor
	WorldBounds() (center [3]float32, radius float32)

	// SetID sets the identifier. The scene assigns one when the object is added.
	SetID(id uint64)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with the provided options.
// Objects start visible at the origin with unit scaling and a default material.
//
// Parameters:
//   - options: variadic list of GameObjectBuilderOption functions
//
// Returns:
//   - GameObject: a new instance
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu: &sync.RWMutex{},
		transform: Transform{
			Scaling: [3]float32{1, 1, 1},
		},
	}
	obj.visible.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.mat == nil {
		obj.mat = material.NewMaterial(material.WithName(obj.name + "_material"))
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Visible() bool {
	return g.visible.Load()
}

func (g *gameObject) SetVisible(visible bool) {
	g.visible.Store(visible)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) Position() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.transform.Position
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Position = [3]float32{x, y, z}
}

func (g *gameObject) Translate(dx, dy, dz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Position = common.Add3(g.transform.Position, [3]float32{dx, dy, dz})
}

func (g *gameObject) Rotation() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.transform.Rotation
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) Scaling() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.transform.Scaling
}

func (g *gameObject) SetScaling(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Scaling = [3]float32{sx, sy, sz}
}

func (g *gameObject) Transform() Transform {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.transform
}

func (g *gameObject) WorldBounds() ([3]float32, float32) {
	t := g.Transform()
	var r float32
	if g.mdl != nil {
		s := max(abs(t.Scaling[0]), abs(t.Scaling[1]), abs(t.Scaling[2]))
		r = g.mdl.BoundingRadius() * s
	}
	return t.Position, r
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
