package game_object

import (
	"testing"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
)

func TestDefaults(t *testing.T) {
	g := NewGameObject(WithName("ball"))
	if !g.Visible() {
		t.Fatal("new object should be visible")
	}
	if g.Scaling() != [3]float32{1, 1, 1} {
		t.Fatalf("scaling = %v", g.Scaling())
	}
	if g.Material() == nil || g.Material().Name() != "ball_material" {
		t.Fatalf("default material not assigned")
	}
}

func TestTransformAndBounds(t *testing.T) {
	g := NewGameObject(
		WithModel(model.NewSphere("s", 2, 4)),
		WithPosition(0, 1, 0),
	)
	g.Translate(0, 0.05, 0)
	g.SetScaling(2, 2, 2)

	center, radius := g.WorldBounds()
	if center[1] < 1.0499 || center[1] > 1.0501 {
		t.Fatalf("center = %v", center)
	}
	if radius < 1.999 || radius > 2.001 {
		t.Fatalf("radius = %v, want 2", radius)
	}

	m := g.Transform().Matrix()
	if m[0] != 2 || m[13] != center[1] {
		t.Fatalf("matrix scale %v translation %v", m[0], m[13])
	}
}

func TestVisibilityToggle(t *testing.T) {
	g := NewGameObject(WithVisible(false))
	if g.Visible() {
		t.Fatal("expected hidden")
	}
	g.SetVisible(true)
	if !g.Visible() {
		t.Fatal("expected visible")
	}
}
