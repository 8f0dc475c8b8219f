package shader

import (
	"strings"
	"testing"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    AnnotationType
		wantNil bool
		wantErr bool
	}{
		{name: "plain code", line: "let x = 1.0;", wantNil: true},
		{name: "plain comment", line: "// lighting", wantNil: true},
		{name: "include", line: "//@engine:include camera", want: annotationTypeInclude},
		{name: "include with spaces", line: "  // @engine:include light  ", want: annotationTypeInclude},
		{name: "group", line: "//@engine:group 0 1 uniform scene_lights scene_lights", want: AnnotationTypeBindingGroup},
		{name: "empty", line: "//@engine:", wantErr: true},
		{name: "unknown type", line: "//@engine:provider camera", wantErr: true},
		{name: "include extra args", line: "//@engine:include camera light", wantErr: true},
		{name: "group short", line: "//@engine:group 0 0 uniform camera", wantErr: true},
		{name: "group bad number", line: "//@engine:group a 0 uniform camera camera", wantErr: true},
		{name: "group negative binding", line: "//@engine:group 0 -1 uniform camera camera", wantErr: true},
		{name: "group bad address space", line: "//@engine:group 0 0 private camera camera", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseAnnotation(tt.line, 7)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", a)
				}
				if !strings.Contains(err.Error(), "line 7") {
					t.Errorf("error %q does not name the line", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if a != nil {
					t.Fatalf("expected nil, got %+v", a)
				}
				return
			}
			if a == nil || a.Type != tt.want {
				t.Fatalf("got %+v, want type %q", a, tt.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	src := strings.Join([]string{
		"//@engine:include light",
		"//@engine:include scene_lights",
		"//@engine:include light",
		"//@engine:group 0 1 uniform scene_lights scene_lights",
		"//@engine:group 0 0 uniform camera camera",
		"fn main() {}",
	}, "\n")

	pp := NewPreProcessor()
	out, err := pp.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if n := strings.Count(out, "struct Light {"); n != 1 {
		t.Errorf("Light struct injected %d times, want 1", n)
	}
	if !strings.Contains(out, "struct SceneLights {") {
		t.Error("SceneLights struct not injected")
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;") {
		t.Errorf("camera declaration missing:\n%s", out)
	}
	if !strings.Contains(out, "@group(0) @binding(1) var<uniform> scene_lights: SceneLights;") {
		t.Errorf("scene_lights declaration missing:\n%s", out)
	}
	if strings.Contains(out, "@engine:") {
		t.Errorf("annotation left in output:\n%s", out)
	}
	if !strings.HasSuffix(out, "fn main() {}") {
		t.Error("plain lines not preserved")
	}

	decls := pp.Declarations()
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}
	if decls[0].StructType() != AnnotationArgSceneLights || decls[1].StructType() != AnnotationArgCamera {
		t.Errorf("declarations out of source order: %v, %v", decls[0].StructType(), decls[1].StructType())
	}
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unknown struct", src: "//@engine:include skeleton"},
		{name: "unknown group struct", src: "//@engine:group 0 0 uniform bones skeleton"},
		{name: "duplicate binding", src: "//@engine:group 0 0 uniform camera camera\n//@engine:group 0 0 uniform mesh object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPreProcessor().Process(tt.src); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestProcessResetsDeclarations(t *testing.T) {
	pp := NewPreProcessor()
	if _, err := pp.Process("//@engine:group 1 0 uniform mesh object"); err != nil {
		t.Fatal(err)
	}
	if _, err := pp.Process("fn main() {}"); err != nil {
		t.Fatal(err)
	}
	if n := len(pp.Declarations()); n != 0 {
		t.Errorf("got %d declarations after second Process, want 0", n)
	}
}

func TestShaderBindings(t *testing.T) {
	src := strings.Join([]string{
		"//@engine:group 1 0 uniform mesh object",
		"//@engine:group 0 1 uniform scene_lights scene_lights",
		"//@engine:group 0 0 uniform camera camera",
	}, "\n")

	s, err := NewShader("test", src, WithEntryPoints("vert", "frag"))
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.Key() != "test" || s.VertexEntryPoint() != "vert" || s.FragmentEntryPoint() != "frag" {
		t.Errorf("unexpected shader identity: %q %q %q", s.Key(), s.VertexEntryPoint(), s.FragmentEntryPoint())
	}

	groups := s.Groups()
	if len(groups) != 2 || groups[0] != 0 || groups[1] != 1 {
		t.Fatalf("Groups = %v, want [0 1]", groups)
	}
	frame := s.Bindings(0)
	if len(frame) != 2 || *frame[0].Binding != 0 || *frame[1].Binding != 1 {
		t.Fatalf("group 0 bindings not ordered: %+v", frame)
	}
	if frame[0].StructType() != AnnotationArgCamera || frame[0].AddressSpace() != AddressSpaceUniform {
		t.Errorf("binding 0 = %v %v", frame[0].StructType(), frame[0].AddressSpace())
	}
	if len(s.Bindings(2)) != 0 {
		t.Error("expected no bindings in group 2")
	}
}

func TestNewShaderDefaults(t *testing.T) {
	s, err := NewShader("plain", "fn vs_main() {}")
	if err != nil {
		t.Fatal(err)
	}
	if s.VertexEntryPoint() != "vs_main" || s.FragmentEntryPoint() != "fs_main" {
		t.Errorf("default entry points = %q, %q", s.VertexEntryPoint(), s.FragmentEntryPoint())
	}
	if _, err := NewShader("bad", "//@engine:include nothing"); err == nil || !strings.Contains(err.Error(), "shader bad") {
		t.Errorf("expected error naming the shader, got %v", err)
	}
}
