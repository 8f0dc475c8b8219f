package shader

import (
	"fmt"
	"sort"
)

// Shader is a pre-processed WGSL module with its entry points and declared bindings.
type Shader interface {
	// Key returns the unique identifier of the shader.
	Key() string

	// Source returns the processed WGSL source.
	Source() string

	// VertexEntryPoint returns the vertex stage entry point name.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point name.
	FragmentEntryPoint() string

	// Declarations returns the bindings declared through group annotations, in source order.
	Declarations() []Annotation

	// Groups returns the bind group indices in ascending order.
	//
	// Returns:
	//   - []int: each group index declared at least once
	Groups() []int

	// Bindings returns the declarations of one bind group ordered by binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - []Annotation: the declarations in that group
	Bindings(group int) []Annotation
}

type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	declarations  []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes source and returns the resulting Shader.
//
// Parameters:
//   - key: unique identifier, also used as the GPU module label
//   - source: annotated WGSL
//   - options: entry point overrides
//
// Returns:
//   - Shader: the processed shader
//   - error: if pre-processing fails
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:           key,
		vertexEntry:   "vs_main",
		fragmentEntry: "fs_main",
	}
	for _, opt := range options {
		opt(s)
	}

	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.source = processed
	s.declarations = append([]Annotation(nil), pp.Declarations()...)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

func (s *shader) Groups() []int {
	seen := make(map[int]bool)
	var groups []int
	for _, d := range s.declarations {
		if !seen[*d.Group] {
			seen[*d.Group] = true
			groups = append(groups, *d.Group)
		}
	}
	sort.Ints(groups)
	return groups
}

func (s *shader) Bindings(group int) []Annotation {
	var out []Annotation
	for _, d := range s.declarations {
		if *d.Group == group {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].Binding < *out[j].Binding })
	return out
}

// ShaderBuilderOption is a functional option for configuring a Shader.
type ShaderBuilderOption func(*shader)

// WithEntryPoints overrides the default vs_main and fs_main entry points.
//
// Parameters:
//   - vertex: the vertex entry point
//   - fragment: the fragment entry point
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithEntryPoints(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntry = vertex
		s.fragmentEntry = fragment
	}
}
