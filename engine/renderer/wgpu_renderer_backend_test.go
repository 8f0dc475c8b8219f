//go:build !js

package renderer

import (
	"testing"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/shader"
)

func TestStandardShaderBindings(t *testing.T) {
	sh, err := shader.NewShader("standard", standardShaderSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}

	tests := []struct {
		group   int
		binding int
		want    shader.AnnotationArg
	}{
		{group: frameGroup, binding: 0, want: shader.AnnotationArgCamera},
		{group: frameGroup, binding: 1, want: shader.AnnotationArgSceneLights},
		{group: objectGroup, binding: 0, want: shader.AnnotationArgObject},
	}
	for _, tt := range tests {
		bindings := sh.Bindings(tt.group)
		if tt.binding >= len(bindings) {
			t.Fatalf("group %d has %d bindings", tt.group, len(bindings))
		}
		d := bindings[tt.binding]
		if *d.Binding != tt.binding || d.StructType() != tt.want {
			t.Errorf("group %d binding %d = %d %q, want %q", tt.group, tt.binding, *d.Binding, d.StructType(), tt.want)
		}
		if _, err := bindingSize(d.StructType()); err != nil {
			t.Errorf("no buffer size for %q: %v", d.StructType(), err)
		}
	}

	if _, err := bindingSize(shader.AnnotationArgLight); err == nil {
		t.Error("expected error for a struct without a uniform buffer")
	}
}
