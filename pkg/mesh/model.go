// Package mesh provides the immutable indexed triangle mesh that all
// feasibility checks operate on.
package mesh

import (
	"fmt"
	"math"

	"github.com/philipparndt/printcheck/pkg/geometry"
)

// Triangle references three mesh vertices by index. The winding order of
// V1, V2, V3 defines the outward direction; Normal caches the unit normal
// computed from that winding.
type Triangle struct {
	V1, V2, V3 int
	Normal     geometry.Vector3
}

// Mesh represents a triangulated surface as shared vertices plus index
// triangles. A Mesh is never mutated after construction; validation runs
// may read it from multiple goroutines.
type Mesh struct {
	Name      string
	Vertices  []geometry.Vector3
	Triangles []Triangle
}

// New creates a mesh from vertices and index triples. Triangle normals are
// computed from the winding of each triple; degenerate triangles get a zero
// normal. Indices are not range-checked here, structural validation is the
// job of the feasibility diagnostics.
func New(name string, vertices []geometry.Vector3, indices [][3]int) *Mesh {
	m := &Mesh{
		Name:      name,
		Vertices:  vertices,
		Triangles: make([]Triangle, 0, len(indices)),
	}
	for _, idx := range indices {
		tri := Triangle{V1: idx[0], V2: idx[1], V3: idx[2]}
		if m.indexInRange(idx[0]) && m.indexInRange(idx[1]) && m.indexInRange(idx[2]) {
			tri.Normal = m.Face(tri).CalculateNormal()
		}
		m.Triangles = append(m.Triangles, tri)
	}
	return m
}

// FromSoup welds a triangle soup (independent corner vertices, as produced
// by STL files) into an indexed mesh. Vertices closer than weld along every
// axis are merged, so triangles sharing a corner reference the same vertex.
func FromSoup(name string, triangles []geometry.Triangle, weld float64) *Mesh {
	if weld <= 0 {
		weld = 1e-9
	}

	type cell struct{ x, y, z int64 }
	lookup := make(map[cell]int, len(triangles))
	var vertices []geometry.Vector3

	indexOf := func(v geometry.Vector3) int {
		key := cell{
			x: int64(math.Round(v.X / weld)),
			y: int64(math.Round(v.Y / weld)),
			z: int64(math.Round(v.Z / weld)),
		}
		if i, ok := lookup[key]; ok {
			return i
		}
		vertices = append(vertices, v)
		lookup[key] = len(vertices) - 1
		return len(vertices) - 1
	}

	indices := make([][3]int, 0, len(triangles))
	for _, tri := range triangles {
		indices = append(indices, [3]int{
			indexOf(tri.V1),
			indexOf(tri.V2),
			indexOf(tri.V3),
		})
	}

	return New(name, vertices, indices)
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Face materializes an index triangle into its corner points
func (m *Mesh) Face(t Triangle) geometry.Triangle {
	return geometry.Triangle{
		Normal: t.Normal,
		V1:     m.Vertices[t.V1],
		V2:     m.Vertices[t.V2],
		V3:     m.Vertices[t.V3],
	}
}

// FaceAt materializes the triangle at index i
func (m *Mesh) FaceAt(i int) geometry.Triangle {
	return m.Face(m.Triangles[i])
}

// BoundingBox calculates the bounding box of the entire mesh
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	totalArea := 0.0
	for _, tri := range m.Triangles {
		totalArea += m.Face(tri).Area()
	}
	return totalArea
}

// String returns a short description for logging
func (m *Mesh) String() string {
	return fmt.Sprintf("mesh %q (%d vertices, %d triangles)", m.Name, len(m.Vertices), len(m.Triangles))
}

func (m *Mesh) indexInRange(i int) bool {
	return i >= 0 && i < len(m.Vertices)
}
