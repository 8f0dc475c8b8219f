package common

// Plane is the set of points p with Dot3(Normal, p) + Distance = 0.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum holds the six clipping planes of a view volume. The positive half-space of each
// plane is inside.
type Frustum struct {
	Planes [6]Plane
}

// Plane indices within Frustum.Planes.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustumFromMatrix extracts normalized world-space planes from a column-major
// view-projection matrix whose clip depth range is [0, 1].
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	// row(i) is the i-th row of the matrix as a plane (x, y, z, w coefficients).
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	add := func(a, b [4]float32) [4]float32 {
		return [4]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
	}
	sub := func(a, b [4]float32) [4]float32 {
		return [4]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
	}

	var f Frustum
	for i, c := range [6][4]float32{
		FrustumLeft:   add(r3, r0),
		FrustumRight:  sub(r3, r0),
		FrustumBottom: add(r3, r1),
		FrustumTop:    sub(r3, r1),
		FrustumNear:   r2,
		FrustumFar:    sub(r3, r2),
	} {
		p := Plane{Normal: [3]float32{c[0], c[1], c[2]}, Distance: c[3]}
		if l := Length3(p.Normal); l > 0 {
			p.Normal = Scale3(p.Normal, 1/l)
			p.Distance /= l
		}
		f.Planes[i] = p
	}
	return f
}

// IntersectsSphere reports whether a bounding sphere is at least partially inside the frustum.
//
// Parameters:
//   - center: the sphere center in world space
//   - radius: the sphere radius
//
// Returns:
//   - bool: false only when the sphere lies entirely outside one of the six planes
func (f *Frustum) IntersectsSphere(center [3]float32, radius float32) bool {
	for _, p := range f.Planes {
		if Dot3(p.Normal, center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
