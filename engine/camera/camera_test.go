package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/common"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestArcRotateFromEye(t *testing.T) {
	cc := NewArcRotateController(WithTarget(0, 0, 0), WithEye(0, 5, -10))

	if !approx(cc.Radius(), float32(math.Sqrt(125))) {
		t.Fatalf("radius = %v", cc.Radius())
	}
	if !approx(cc.Alpha(), -math.Pi/2) {
		t.Fatalf("alpha = %v, want -pi/2", cc.Alpha())
	}
	p := cc.Position()
	want := [3]float32{0, 5, -10}
	for i := range p {
		if !approx(p[i], want[i]) {
			t.Fatalf("position = %v, want %v", p, want)
		}
	}
}

func TestArcRotateLimits(t *testing.T) {
	cc := NewArcRotateController(WithSpherical(0, 1, 5), WithRadiusLimits(1, 8))

	cc.Zoom(100)
	if cc.Radius() != 8 {
		t.Fatalf("radius = %v, want clamp to 8", cc.Radius())
	}
	cc.Rotate(0, 10)
	if cc.Beta() > math.Pi {
		t.Fatalf("beta = %v exceeded upper limit", cc.Beta())
	}
}

func TestSetTargetKeepsEye(t *testing.T) {
	cc := NewArcRotateController(WithEye(3, 4, 0))
	before := cc.Position()
	cc.SetTarget([3]float32{0, 1, 0})
	after := cc.Position()
	for i := range before {
		if !approx(before[i], after[i]) {
			t.Fatalf("eye moved from %v to %v", before, after)
		}
	}
}

func TestViewProjectionHandedness(t *testing.T) {
	cam := NewCamera(
		WithAspect(640.0/480.0),
		WithController(NewArcRotateController(WithEye(0, 5, -10))),
	)
	vp := cam.ViewProjectionMatrix()

	project := func(p [3]float32) (x, y, z float32) {
		c := common.TransformPoint(vp[:], p)
		return c[0] / c[3], c[1] / c[3], c[2] / c[3]
	}

	x, y, z := project([3]float32{0, 0, 0})
	if !approx(x, 0) || !approx(y, 0) || z <= 0 || z >= 1 {
		t.Fatalf("target projected to (%v, %v, %v), want screen center inside depth range", x, y, z)
	}
	if x, _, _ := project([3]float32{1, 0, 0}); x <= 0 {
		t.Fatalf("+X projected to x=%v, want right of center", x)
	}
	if _, y, _ := project([3]float32{0, 1, 0}); y <= 0 {
		t.Fatalf("+Y projected to y=%v, want above center", y)
	}

	f := cam.Frustum()
	if !f.IntersectsSphere([3]float32{0, 1, 0}, 1) {
		t.Fatal("sphere at the target was culled")
	}
	if f.IntersectsSphere([3]float32{0, 0, -30}, 1) {
		t.Fatal("sphere behind the camera was not culled")
	}
}

func TestGPUCameraUniform(t *testing.T) {
	u := NewGPUCameraUniform(NewCamera())
	if u.Size() != 80 || len(u.Marshal()) != 80 {
		t.Fatalf("uniform size = %d", u.Size())
	}

	u.ViewProj[5] = 2
	u.CameraPosition = [3]float32{1, -3, 0.5}
	buf := u.Marshal()
	word := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])) }
	if got := word(5); got != 2 {
		t.Errorf("view_proj[5] = %v, want 2", got)
	}
	for i, want := range u.CameraPosition {
		if got := word(16 + i); got != want {
			t.Errorf("camera_position[%d] = %v, want %v", i, got, want)
		}
	}
	if got := binary.LittleEndian.Uint32(buf[76:]); got != 0 {
		t.Errorf("padding = %#x, want 0", got)
	}
}
