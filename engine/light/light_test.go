package light

import (
	"math"
	"testing"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestHemisphericContribution(t *testing.T) {
	l := NewLight(LightTypeHemispheric, WithDirection(0, 1, 0), WithIntensity(0.7))
	view := [3]float32{0, 0, -1}

	tests := []struct {
		name   string
		normal [3]float32
		want   float32
	}{
		{"facing sky", [3]float32{0, 1, 0}, 0.7},
		{"sideways", [3]float32{1, 0, 0}, 0.35},
		{"facing ground", [3]float32{0, -1, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := l.Contribute([3]float32{}, tc.normal, view, 64)
			if !near(c.Diffuse.R, tc.want, 1e-5) || !near(c.Diffuse.G, tc.want, 1e-5) {
				t.Fatalf("diffuse = %+v, want %v", c.Diffuse, tc.want)
			}
		})
	}
}

func TestDirectionalAndPoint(t *testing.T) {
	dir := NewLight(LightTypeDirectional, WithDirection(0, -1, 0))
	c := dir.Contribute([3]float32{}, [3]float32{0, 1, 0}, [3]float32{0, 1, 0}, 1)
	if !near(c.Diffuse.R, 1, 1e-6) || !near(c.Specular.R, 1, 1e-6) {
		t.Fatalf("directional head-on = %+v", c)
	}
	c = dir.Contribute([3]float32{}, [3]float32{0, -1, 0}, [3]float32{0, 1, 0}, 1)
	if c.Diffuse.R != 0 {
		t.Fatalf("directional back-facing diffuse = %v", c.Diffuse.R)
	}

	pt := NewLight(LightTypePoint, WithPosition(0, 5, 0), WithRange(10))
	c = pt.Contribute([3]float32{}, [3]float32{0, 1, 0}, [3]float32{0, 1, 0}, 1)
	if !near(c.Diffuse.R, 0.5, 1e-5) {
		t.Fatalf("point attenuation = %v, want 0.5", c.Diffuse.R)
	}
}

func TestDisabledLight(t *testing.T) {
	l := NewLight(LightTypeHemispheric, WithEnabled(false))
	if c := l.Contribute([3]float32{}, [3]float32{0, 1, 0}, [3]float32{0, 1, 0}, 64); c != (Contribution{}) {
		t.Fatalf("disabled light contributed %+v", c)
	}
}

func TestShadeGround(t *testing.T) {
	lights := []Light{NewLight(LightTypeHemispheric, WithDirection(0, 1, 0), WithIntensity(0.7))}
	props := material.NewMaterial().Properties()

	got := Shade(lights, [3]float32{0, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0, 5, -10}, props, common.Color3{})
	b := got.Bytes()
	if b[0] < 178 || b[0] > 180 || b[0] != b[1] || b[1] != b[2] || b[3] != 255 {
		t.Fatalf("ground shade = %v, want ~(179,179,179,255)", b)
	}
}

func TestGPULightMarshal(t *testing.T) {
	g := NewGPULight(NewLight(LightTypePoint, WithIntensity(2)))
	buf := g.Marshal()
	if len(buf) != GPULightSize {
		t.Fatalf("len = %d", len(buf))
	}
	if buf[12] != byte(LightTypePoint) || buf[60] != 1 {
		t.Fatalf("type/enabled bytes = %d/%d", buf[12], buf[60])
	}
}
