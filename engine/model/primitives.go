package model

import (
	"math"
)

// NewSphere builds a UV sphere centered on the origin.
// The tessellation uses 2+segments latitude steps and twice as many longitude steps,
// with a duplicated seam column so UVs wrap cleanly.
//
// Parameters:
//   - name: the model identifier
//   - diameter: the sphere diameter
//   - segments: the tessellation level; values below 1 are raised to 1
//
// Returns:
//   - Model: the sphere mesh
func NewSphere(name string, diameter float32, segments int) Model {
	if segments < 1 {
		segments = 1
	}
	radius := diameter / 2
	zSteps := 2 + segments
	ySteps := 2 * zSteps

	vertexCount := (zSteps + 1) * (ySteps + 1)
	positions := make([][3]float32, 0, vertexCount)
	normals := make([][3]float32, 0, vertexCount)
	uvs := make([][2]float32, 0, vertexCount)
	indices := make([]uint32, 0, zSteps*ySteps*6)

	for z := 0; z <= zSteps; z++ {
		nz := float64(z) / float64(zSteps)
		sinZ, cosZ := math.Sincos(nz * math.Pi)

		for y := 0; y <= ySteps; y++ {
			ny := float64(y) / float64(ySteps)
			sinY, cosY := math.Sincos(ny * 2 * math.Pi)

			n := [3]float32{
				float32(sinZ * cosY),
				float32(cosZ),
				float32(-sinZ * sinY),
			}
			positions = append(positions, [3]float32{n[0] * radius, n[1] * radius, n[2] * radius})
			normals = append(normals, n)
			uvs = append(uvs, [2]float32{float32(ny), float32(nz)})
		}

		if z == 0 {
			continue
		}
		row := uint32(ySteps + 1)
		prev := uint32(z-1) * row
		for i := uint32(0); i < uint32(ySteps); i++ {
			a := prev + i
			indices = append(indices,
				a, a+1, a+row,
				a+row, a+1, a+row+1,
			)
		}
	}

	return NewModel(
		WithName(name),
		WithPositions(positions),
		WithNormals(normals),
		WithUVs(uvs),
		WithIndices(indices),
	)
}

// NewGround builds a flat grid in the XZ plane facing +Y, centered on the origin.
//
// Parameters:
//   - name: the model identifier
//   - width: the extent along X
//   - depth: the extent along Z
//   - subdivisions: the number of cells along each axis; values below 1 are raised to 1
//
// Returns:
//   - Model: the ground mesh
func NewGround(name string, width, depth float32, subdivisions int) Model {
	if subdivisions < 1 {
		subdivisions = 1
	}
	s := subdivisions
	positions := make([][3]float32, 0, (s+1)*(s+1))
	normals := make([][3]float32, 0, (s+1)*(s+1))
	uvs := make([][2]float32, 0, (s+1)*(s+1))

	for row := 0; row <= s; row++ {
		for col := 0; col <= s; col++ {
			x := float32(col)*width/float32(s) - width/2
			z := float32(s-row)*depth/float32(s) - depth/2
			positions = append(positions, [3]float32{x, 0, z})
			normals = append(normals, [3]float32{0, 1, 0})
			uvs = append(uvs, [2]float32{float32(col) / float32(s), 1 - float32(row)/float32(s)})
		}
	}

	stride := uint32(s + 1)
	indices := make([]uint32, 0, s*s*6)
	for row := uint32(0); row < uint32(s); row++ {
		for col := uint32(0); col < uint32(s); col++ {
			indices = append(indices,
				col+1+(row+1)*stride, col+1+row*stride, col+row*stride,
				col+(row+1)*stride, col+1+(row+1)*stride, col+row*stride,
			)
		}
	}

	return NewModel(
		WithName(name),
		WithPositions(positions),
		WithNormals(normals),
		WithUVs(uvs),
		WithIndices(indices),
	)
}
