package scene

import (
	"sort"
	"sync"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/camera"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/game_object"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/light"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer"
)

// DefaultClearColor is the background a new scene clears to.
var DefaultClearColor = common.Color4{R: 0.2, G: 0.2, B: 0.3, A: 1}

// Scene manages a registry of GameObjects and Lights viewed through a Camera.
// Scenes can be hot-swapped via the Active flag to switch between different views.
// Thread-safe for concurrent access: mutators and BuildFrame may run on different goroutines,
// and the last write before a BuildFrame is what the frame shows.
type Scene interface {
	// Name returns the name of the scene.
	Name() string

	// SetName sets the name of the scene.
	SetName(name string)

	// Active reports whether the scene is drawn by the engine.
	Active() bool

	// SetActive sets whether the scene is drawn by the engine.
	SetActive(active bool)

	// Camera returns the camera the scene is viewed through.
	Camera() camera.Camera

	// SetCamera replaces the scene camera.
	SetCamera(cam camera.Camera)

	// ClearColor returns the background color.
	ClearColor() common.Color4

	// SetClearColor sets the background color.
	SetClearColor(c common.Color4)

	// AmbientColor returns the scene ambient color multiplied into each material's ambient term.
	AmbientColor() common.Color3

	// SetAmbientColor sets the scene ambient color.
	SetAmbientColor(c common.Color3)

	// CullingDisabled reports whether frustum culling is skipped when building frames.
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling.
	SetCullingDisabled(disabled bool)

	// Count returns the number of objects in the scene.
	Count() int

	// Add registers an object. Objects without an ID are assigned the next free one.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get returns the object with the given ID, or nil.
	Get(id uint64) game_object.GameObject

	// Find returns the first object with the given name in ID order, or nil.
	Find(name string) game_object.GameObject

	// Objects returns every object in ID order.
	Objects() []game_object.GameObject

	// Remove unregisters the object with the given ID. Unknown IDs are ignored.
	Remove(id uint64)

	// Clear removes every object. Lights and camera are kept.
	Clear()

	// AddLight adds a light to the scene.
	AddLight(l light.Light)

	// RemoveLight removes a light from the scene.
	RemoveLight(l light.Light)

	// Lights returns a copy of the scene lights.
	Lights() []light.Light

	// BuildFrame snapshots the scene into an immutable frame description.
	// Invisible objects and objects outside the view frustum are left out.
	// Draws are ordered far to near.
	//
	// Returns:
	//   - *renderer.Frame: the frame to hand to a Renderer
	BuildFrame() *renderer.Frame
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	registry map[uint64]game_object.GameObject
	nextID   uint64

	cam             camera.Camera
	lights          []light.Light
	clearColor      common.Color4
	ambientColor    common.Color3
	cullingDisabled bool
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene viewed through cam. The camera is required and
// NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		active:     false,
		cam:        cam,
		registry:   make(map[uint64]game_object.GameObject),
		nextID:     1,
		clearColor: DefaultClearColor,
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) ClearColor() common.Color4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clearColor
}

func (s *scene) SetClearColor(c common.Color4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = c
}

func (s *scene) AmbientColor() common.Color3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientColor
}

func (s *scene) SetAmbientColor(c common.Color3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientColor = c
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked registers obj. Caller must hold s.mu write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Find(name string) game_object.GameObject {
	for _, obj := range s.Objects() {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	objs := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		objs = append(objs, obj)
	}
	s.mu.RUnlock()

	sort.Slice(objs, func(i, j int) bool {
		return objs[i].ID() < objs[j].ID()
	})
	return objs
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) BuildFrame() *renderer.Frame {
	s.mu.RLock()
	cam := s.cam
	frame := &renderer.Frame{
		ClearColor: s.clearColor,
		Ambient:    s.ambientColor,
		Lights:     make([]light.Light, len(s.lights)),
		Draws:      make([]renderer.DrawCommand, 0, len(s.registry)),
	}
	copy(frame.Lights, s.lights)
	culling := !s.cullingDisabled
	objs := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		objs = append(objs, obj)
	}
	s.mu.RUnlock()

	cam.Update()
	frame.ViewProj = cam.ViewProjectionMatrix()
	frame.Eye = cam.Position()
	frustum := cam.Frustum()

	for _, obj := range objs {
		if !obj.Visible() || obj.Model() == nil {
			continue
		}
		center, radius := obj.WorldBounds()
		if culling && !frustum.IntersectsSphere(center, radius) {
			continue
		}
		frame.Draws = append(frame.Draws, renderer.DrawCommand{
			ObjectID:    obj.ID(),
			Name:        obj.Name(),
			Model:       obj.Model(),
			Material:    obj.Material().Properties(),
			ModelMatrix: obj.Transform().Matrix(),
			Distance:    common.Length3(common.Sub3(center, frame.Eye)),
		})
	}

	// Far to near, ties broken by ID so the order is stable frame to frame.
	sort.Slice(frame.Draws, func(i, j int) bool {
		a, b := frame.Draws[i], frame.Draws[j]
		if a.Distance != b.Distance {
			return a.Distance > b.Distance
		}
		return a.ObjectID < b.ObjectID
	})
	return frame
}
