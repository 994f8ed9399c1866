package feasibility

import (
	"math"

	"github.com/philipparndt/printcheck/pkg/geometry"
	"github.com/philipparndt/printcheck/pkg/mesh"
)

// Analytic fixtures shared across the feasibility tests. Vertices are
// ordered bottom ring then top ring; boxFaces winds every face outward.

var boxFaces = [][3]int{
	{0, 2, 1}, {0, 3, 2}, // bottom, facing -z
	{4, 5, 6}, {4, 6, 7}, // top, facing +z
	{0, 1, 5}, {0, 5, 4}, // front, facing -y
	{1, 2, 6}, {1, 6, 5}, // right, facing +x
	{2, 3, 7}, {2, 7, 6}, // back, facing +y
	{3, 0, 4}, {3, 4, 7}, // left, facing -x
}

func boxVertices(min, max geometry.Vector3) []geometry.Vector3 {
	return []geometry.Vector3{
		geometry.NewVector3(min.X, min.Y, min.Z),
		geometry.NewVector3(max.X, min.Y, min.Z),
		geometry.NewVector3(max.X, max.Y, min.Z),
		geometry.NewVector3(min.X, max.Y, min.Z),
		geometry.NewVector3(min.X, min.Y, max.Z),
		geometry.NewVector3(max.X, min.Y, max.Z),
		geometry.NewVector3(max.X, max.Y, max.Z),
		geometry.NewVector3(min.X, max.Y, max.Z),
	}
}

// cubeMesh builds a cube of the given edge length, centered on the z axis
// with its base on the plane z=0.
func cubeMesh(edge float64) *mesh.Mesh {
	h := edge / 2
	vertices := boxVertices(
		geometry.NewVector3(-h, -h, 0),
		geometry.NewVector3(h, h, edge),
	)
	faces := make([][3]int, len(boxFaces))
	copy(faces, boxFaces)
	return mesh.New("cube", vertices, faces)
}

// shellMesh builds a hollow box with uniform wall thickness: an outer box
// of the given edge and an inner cavity whose surface winds inward-facing
// (outward with respect to the solid material).
func shellMesh(edge, wall float64) *mesh.Mesh {
	h := edge / 2
	outer := boxVertices(
		geometry.NewVector3(-h, -h, 0),
		geometry.NewVector3(h, h, edge),
	)
	inner := boxVertices(
		geometry.NewVector3(-h+wall, -h+wall, wall),
		geometry.NewVector3(h-wall, h-wall, edge-wall),
	)

	vertices := append(outer, inner...)
	var faces [][3]int
	for _, f := range boxFaces {
		faces = append(faces, f)
	}
	for _, f := range boxFaces {
		// Flipped winding: cavity surface faces into the cavity
		faces = append(faces, [3]int{f[0] + 8, f[2] + 8, f[1] + 8})
	}
	return mesh.New("shell", vertices, faces)
}

// coneMesh builds a cone with its apex at the origin pointing down and its
// base disc at z=height. With radius == height the lateral surface makes a
// 45 degree angle from vertical and faces downward.
func coneMesh(radius, height float64, segments int) *mesh.Mesh {
	vertices := []geometry.Vector3{geometry.NewVector3(0, 0, 0)} // apex
	for i := 0; i < segments; i++ {
		phi := 2 * math.Pi * float64(i) / float64(segments)
		vertices = append(vertices, geometry.NewVector3(
			radius*math.Cos(phi),
			radius*math.Sin(phi),
			height,
		))
	}
	top := len(vertices)
	vertices = append(vertices, geometry.NewVector3(0, 0, height))

	var faces [][3]int
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		faces = append(faces, [3]int{0, 1 + next, 1 + i})   // lateral, outward-down
		faces = append(faces, [3]int{top, 1 + i, 1 + next}) // base disc, facing +z
	}
	return mesh.New("cone", vertices, faces)
}

// sphereMesh builds a UV sphere of the given radius resting on the plane
// z=0 (centered at z=radius).
func sphereMesh(radius float64, stacks, slices int) *mesh.Mesh {
	ring := func(i, j int) int {
		return 1 + (i-1)*slices + (j % slices)
	}

	vertices := []geometry.Vector3{geometry.NewVector3(0, 0, 2*radius)} // top pole
	for i := 1; i < stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		r := radius * math.Sin(phi)
		z := radius + radius*math.Cos(phi)
		for j := 0; j < slices; j++ {
			lambda := 2 * math.Pi * float64(j) / float64(slices)
			vertices = append(vertices, geometry.NewVector3(r*math.Cos(lambda), r*math.Sin(lambda), z))
		}
	}
	bottom := len(vertices)
	vertices = append(vertices, geometry.NewVector3(0, 0, 0)) // bottom pole

	var faces [][3]int
	for j := 0; j < slices; j++ {
		faces = append(faces, [3]int{0, ring(1, j), ring(1, j+1)})
	}
	for i := 1; i < stacks-1; i++ {
		for j := 0; j < slices; j++ {
			a := ring(i, j)
			b := ring(i+1, j)
			c := ring(i+1, j+1)
			d := ring(i, j+1)
			faces = append(faces, [3]int{a, b, c})
			faces = append(faces, [3]int{a, c, d})
		}
	}
	for j := 0; j < slices; j++ {
		faces = append(faces, [3]int{bottom, ring(stacks-1, j+1), ring(stacks-1, j)})
	}
	return mesh.New("sphere", vertices, faces)
}
