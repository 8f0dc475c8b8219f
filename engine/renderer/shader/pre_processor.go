// pre_processor.go implements the WGSL shader pre-processor. It replaces @engine:
// annotations with injected struct sources or generated binding declarations, and keeps
// the binding declarations so the renderer can build matching bind group layouts.
package shader

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/camera"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/light"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/model"
	"github.com/kmatzen/BabylonPlusEmscriptenGLFW/engine/renderer/material"
)

//go:embed assets/scene_lights.wgsl
var sceneLightsSource string

//go:embed assets/object_uniform.wgsl
var objectUniformSource string

// registryEntry pairs a WGSL struct source with the type name used in generated declarations.
type registryEntry struct {
	Source string
	Type   string
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor turns annotated WGSL into plain WGSL and reports the bindings it declared.
type PreProcessor interface {
	// Process replaces include annotations with struct sources and group annotations with
	// @group/@binding declarations. Each struct is injected at most once.
	//
	// Parameters:
	//   - source: WGSL source containing annotations
	//
	// Returns:
	//   - string: the processed WGSL
	//   - error: if an annotation is malformed or names an unknown struct
	Process(source string) (string, error)

	// Declarations returns the group annotations of the last Process call in source order.
	//
	// Returns:
	//   - []Annotation: the declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU structs registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:      {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			annotationArgVertex:      {Source: model.GPUVertexSource, Type: "VertexInput"},
			AnnotationArgLight:       {Source: light.GPULightSource, Type: "Light"},
			AnnotationArgMaterial:    {Source: material.GPUMaterialSource, Type: "Material"},
			AnnotationArgSceneLights: {Source: sceneLightsSource, Type: "SceneLights"},
			AnnotationArgObject:      {Source: objectUniformSource, Type: "ObjectUniform"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			AddressSpaceUniform:     "var<uniform>",
			AddressSpaceStorageRead: "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = nil

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	included := make(map[AnnotationArg]bool)
	bound := make(map[[2]int]int)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		entry, ok := p.structRegistry[a.StructType()]
		if !ok {
			return "", fmt.Errorf("line %d: unknown struct type %q", i+1, a.StructType())
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.StructType()] {
				continue
			}
			included[a.StructType()] = true
			out = append(out, strings.TrimRight(entry.Source, "\n"))
		case AnnotationTypeBindingGroup:
			slot := [2]int{*a.Group, *a.Binding}
			if prev, dup := bound[slot]; dup {
				return "", fmt.Errorf("line %d: group %d binding %d already declared on line %d", i+1, slot[0], slot[1], prev)
			}
			bound[slot] = i + 1

			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.AddressSpace()], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
