// annotations.go defines the annotation syntax understood by the WGSL pre-processor.
// Annotations are single-line WGSL comments prefixed with @engine: that inject shared
// struct sources and declare uniform bindings, so the Go side can build bind group
// layouts from the same lines the shader compiles.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix marks an annotation within a WGSL comment line.
const annotationPrefix = "@engine:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct at the annotation site.
	//
	// Syntax: //@engine:include <struct_type>
	//
	// Example: //@engine:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration and records
	// it in the pre-processor's declarations list.
	//
	// Syntax: //@engine:group <group> <binding> <address_space> <var_name> <struct_type>
	//
	// Example: //@engine:group 0 0 uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation is one parsed @engine: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - include: [0] = struct type key
	//   - group:   [0] = address space, [1] = var name, [2] = struct type key
	Args []AnnotationArg

	// Line is the 1-based source line, for error reporting.
	Line int

	// Group and Binding are set for group annotations only.
	Group   *int
	Binding *int
}

// AddressSpace returns the address space argument of a group annotation.
func (a Annotation) AddressSpace() AnnotationArg {
	if a.Type != AnnotationTypeBindingGroup {
		return ""
	}
	return a.Args[0]
}

// StructType returns the struct type key of an include or group annotation.
func (a Annotation) StructType() AnnotationArg {
	if a.Type == AnnotationTypeBindingGroup {
		return a.Args[2]
	}
	return a.Args[0]
}

// AnnotationArg is a typed string used as an annotation argument.
type AnnotationArg string

// Struct type arguments. Each maps to a Go GPU type with an embedded .wgsl asset.
const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	AnnotationArgCamera AnnotationArg = "camera"

	// annotationArgVertex identifies the VertexInput struct.
	annotationArgVertex AnnotationArg = "vertex"

	// AnnotationArgLight identifies the Light struct.
	AnnotationArgLight AnnotationArg = "light"

	// AnnotationArgMaterial identifies the Material struct.
	AnnotationArgMaterial AnnotationArg = "material"

	// AnnotationArgSceneLights identifies the SceneLights struct: ambient color, light count and a fixed light array.
	AnnotationArgSceneLights AnnotationArg = "scene_lights"

	// AnnotationArgObject identifies the ObjectUniform struct: model matrix and material.
	AnnotationArgObject AnnotationArg = "object"
)

// Address space arguments for group annotations.
const (
	// AddressSpaceUniform maps to var<uniform>.
	AddressSpaceUniform AnnotationArg = "uniform"

	// AddressSpaceStorageRead maps to var<storage, read>.
	AddressSpaceStorageRead AnnotationArg = "storage_read"
)

var validAddressSpaces = []AnnotationArg{
	AddressSpaceUniform,
	AddressSpaceStorageRead,
}

// parseAnnotation parses one line of WGSL source. Lines without the prefix return nil, nil.
// Struct type keys are checked later against the pre-processor registry.
//
// Parameters:
//   - line: the raw WGSL source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: include annotation requires exactly one argument", lineNum)
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: group annotation requires group, binding, address space, var name and struct type", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil || group < 0 {
			return nil, fmt.Errorf("line %d: invalid group number %q", lineNum, args[1])
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil || binding < 0 {
			return nil, fmt.Errorf("line %d: invalid binding number %q", lineNum, args[2])
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q", lineNum, args[3])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, args[0])
	}
}
