package feasibility

import (
	"github.com/philipparndt/printcheck/pkg/geometry"
	"github.com/philipparndt/printcheck/pkg/mesh"
)

// VolumeResult holds the enclosed volume and centroid of a solid
type VolumeResult struct {
	Volume   float64          `json:"volume"`
	Centroid geometry.Vector3 `json:"centroid"`
	// Reliable is false when the signed sum is near zero or negative,
	// which indicates an inverted or badly broken mesh
	Reliable bool `json:"reliable"`
}

// VolumeCentroid computes the enclosed volume and centroid by summing
// signed tetrahedra, one per triangle, each with its apex at the origin.
// The sign follows the triangle winding, so a properly oriented closed
// mesh yields a positive total regardless of where the origin lies.
func VolumeCentroid(m *mesh.Mesh, tol Tolerances) VolumeResult {
	var volume float64
	var weighted geometry.Vector3

	for _, tri := range m.Triangles {
		v0 := m.Vertices[tri.V1]
		v1 := m.Vertices[tri.V2]
		v2 := m.Vertices[tri.V3]

		signed := v0.Dot(v1.Cross(v2)) / 6.0
		volume += signed

		// Tetrahedron centroid: (v0 + v1 + v2 + origin) / 4
		center := v0.Add(v1).Add(v2).Mul(0.25)
		weighted = weighted.Add(center.Mul(signed))
	}

	if volume <= tol.MinVolume {
		// Near-zero or negative: do not divide, report the bounding box
		// center as a stand-in and flag the result.
		return VolumeResult{
			Volume:   volume,
			Centroid: m.BoundingBox().Center(),
			Reliable: false,
		}
	}

	return VolumeResult{
		Volume:   volume,
		Centroid: weighted.Mul(1.0 / volume),
		Reliable: true,
	}
}
