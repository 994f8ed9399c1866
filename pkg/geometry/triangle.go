package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the normal vector for the triangle
// following right-hand winding of V1, V2, V3
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	cross := edge1.Cross(edge2)
	return cross.Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Barycentric returns the point at barycentric coordinates (u, v)
// where u weights V2 and v weights V3
func (t Triangle) Barycentric(u, v float64) Vector3 {
	w := 1.0 - u - v
	return Vector3{
		X: w*t.V1.X + u*t.V2.X + v*t.V3.X,
		Y: w*t.V1.Y + u*t.V2.Y + v*t.V3.Y,
		Z: w*t.V1.Z + u*t.V2.Z + v*t.V3.Z,
	}
}

// IntersectRay computes the intersection of a ray with the triangle
// using the Möller–Trumbore algorithm. It returns the distance from the
// ray origin along dir (which must be a unit vector) and whether the ray
// hits the triangle at a positive distance.
func (t Triangle) IntersectRay(origin, dir Vector3) (float64, bool) {
	const parallelEps = 1e-12

	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)

	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -parallelEps && det < parallelEps {
		return 0, false
	}
	invDet := 1.0 / det

	tvec := origin.Sub(t.V1)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist <= 0 {
		return 0, false
	}
	return dist, true
}
