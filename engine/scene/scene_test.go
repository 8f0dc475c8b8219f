package scene

import (
	"sync"
	"testing"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/camera"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/game_object"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/light"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
)

func demoCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithAspect(640.0/480.0),
		camera.WithController(camera.NewArcRotateController(
			camera.WithTarget(0, 0, 0),
			camera.WithEye(0, 5, -10),
		)),
	)
}

func demoScene(t *testing.T, opts ...SceneBuilderOption) (Scene, game_object.GameObject, game_object.GameObject) {
	t.Helper()
	sphere := game_object.NewGameObject(
		game_object.WithName("sphere"),
		game_object.WithModel(model.NewSphere("sphere", 2, 8)),
		game_object.WithPosition(0, 1, 0),
	)
	ground := game_object.NewGameObject(
		game_object.WithName("ground"),
		game_object.WithModel(model.NewGround("ground", 6, 6, 1)),
	)
	opts = append([]SceneBuilderOption{WithObjects(sphere, ground)}, opts...)
	return NewScene("demo", demoCamera(), opts...), sphere, ground
}

func TestAddAssignsIDs(t *testing.T) {
	s, sphere, ground := demoScene(t)
	if sphere.ID() != 1 || ground.ID() != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", sphere.ID(), ground.ID())
	}

	preset := game_object.NewGameObject(game_object.WithID(10), game_object.WithName("preset"))
	if id := s.Add(preset); id != 10 {
		t.Errorf("Add kept id %d, want 10", id)
	}
	next := game_object.NewGameObject(game_object.WithName("next"))
	if id := s.Add(next); id != 11 {
		t.Errorf("next id = %d, want 11", id)
	}
	if s.Count() != 4 {
		t.Errorf("Count() = %d, want 4", s.Count())
	}

	if got := s.Find("ground"); got != ground {
		t.Error("Find(ground) returned the wrong object")
	}
	if got := s.Find("missing"); got != nil {
		t.Error("Find(missing) should be nil")
	}

	s.Remove(10)
	if s.Get(10) != nil || s.Count() != 3 {
		t.Error("Remove(10) did not remove the object")
	}
	s.Clear()
	if s.Count() != 0 {
		t.Error("Clear() left objects behind")
	}
}

func TestBuildFrame(t *testing.T) {
	hemi := light.NewLight(light.LightTypeHemispheric, light.WithIntensity(0.7))
	behind := game_object.NewGameObject(
		game_object.WithName("behind"),
		game_object.WithModel(model.NewSphere("behind", 1, 4)),
		game_object.WithPosition(0, 0, -50),
	)

	tests := []struct {
		name      string
		culling   bool
		hide      string
		wantNames []string
	}{
		{"culled", true, "", []string{"ground", "sphere"}},
		{"culling disabled", false, "", []string{"behind", "ground", "sphere"}},
		{"hidden sphere", true, "sphere", []string{"ground"}},
		{"hidden ground", true, "ground", []string{"sphere"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := demoScene(t, WithLights(hemi), WithCullingDisabled(!tt.culling))
			s.Add(behind)
			if tt.hide != "" {
				s.Find(tt.hide).SetVisible(false)
			}

			f := s.BuildFrame()
			if len(f.Draws) != len(tt.wantNames) {
				t.Fatalf("got %d draws, want %d", len(f.Draws), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if f.Draws[i].Name != want {
					t.Errorf("draw %d = %q, want %q", i, f.Draws[i].Name, want)
				}
			}
			for i := 1; i < len(f.Draws); i++ {
				if f.Draws[i].Distance > f.Draws[i-1].Distance {
					t.Errorf("draws not ordered far to near at %d", i)
				}
			}
			if len(f.Lights) != 1 {
				t.Errorf("got %d lights, want 1", len(f.Lights))
			}
			if f.ClearColor != DefaultClearColor {
				t.Errorf("clear color = %v, want %v", f.ClearColor, DefaultClearColor)
			}
			if d := common.Length3(common.Sub3(f.Eye, [3]float32{0, 5, -10})); d > 1e-4 {
				t.Errorf("eye = %v, want (0, 5, -10)", f.Eye)
			}
		})
	}
}

func TestBuildFrameSnapshotsMaterial(t *testing.T) {
	s, sphere, _ := demoScene(t)
	sphere.Material().SetDiffuse(common.Color3{R: 1})
	f := s.BuildFrame()
	sphere.Material().SetDiffuse(common.Color3{G: 1})

	for _, d := range f.Draws {
		if d.Name == "sphere" && d.Material.Diffuse != (common.Color3{R: 1}) {
			t.Errorf("frame diffuse = %v, want the value at build time", d.Material.Diffuse)
		}
	}
}

func TestConcurrentMutationAndBuild(t *testing.T) {
	s, sphere, ground := demoScene(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 200 {
			sphere.Translate(0, 0.05, 0)
			ground.SetVisible(i%2 == 0)
			s.SetClearColor(common.Color4{R: float32(i%10) / 10, A: 1})
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			_ = s.BuildFrame()
		}
	}()
	wg.Wait()

	if got := sphere.Position()[1]; got < 10.9 || got > 11.1 {
		t.Errorf("sphere y = %v, want 11", got)
	}
}

func TestSettersRoundTrip(t *testing.T) {
	s, _, _ := demoScene(t, WithActive(true), WithAmbientColor(common.Color3{R: 0.1}))
	if !s.Active() {
		t.Error("WithActive(true) not applied")
	}
	if s.AmbientColor() != (common.Color3{R: 0.1}) {
		t.Error("WithAmbientColor not applied")
	}
	s.SetName("renamed")
	if s.Name() != "renamed" {
		t.Errorf("Name() = %q", s.Name())
	}
	l := light.NewLight(light.LightTypePoint)
	s.AddLight(l)
	s.RemoveLight(l)
	if len(s.Lights()) != 0 {
		t.Error("RemoveLight left the light behind")
	}
}
