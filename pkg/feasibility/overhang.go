package feasibility

import (
	"math"

	"github.com/philipparndt/printcheck/pkg/mesh"
)

// OverhangFace is one downward-facing triangle with its overhang angle,
// measured in degrees from true vertical: 0 is a vertical wall needing no
// support, 90 a flat horizontal ceiling needing full support.
type OverhangFace struct {
	Triangle int     `json:"triangle"`
	Angle    float64 `json:"angle"`
	Area     float64 `json:"area"`
}

// OverhangResult aggregates the overhang scan
type OverhangResult struct {
	OK bool `json:"ok"`
	// WorstAngle is the steepest overhang over all downward faces
	WorstAngle float64 `json:"worstAngle"`
	// DownwardArea is the total area of downward-facing triangles,
	// excluding faces resting on the build plane
	DownwardArea float64 `json:"downwardArea"`
	// ExceedingAreaFraction is the share of downward area steeper than
	// the threshold; a tiny sliver should not fail an otherwise
	// printable model
	ExceedingAreaFraction float64 `json:"exceedingAreaFraction"`
	Faces                 []OverhangFace `json:"faces,omitempty"`
}

// ScanOverhangs classifies every downward-facing triangle by the angle its
// surface makes from vertical and aggregates the worst case plus the
// area-weighted share above the threshold. Faces lying on the build plane
// rest on the bed and are skipped. The scan passes when the worst angle is
// within the threshold, or when the exceeding area fraction is negligible.
func ScanOverhangs(m *mesh.Mesh, o BuildOrientation, thr Thresholds, tol Tolerances) OverhangResult {
	result := OverhangResult{}
	ground := o.GroundTolerance(m, tol)

	exceedingArea := 0.0
	for i, tri := range m.Triangles {
		if tri.Normal.Dot(o.Up) >= 0 {
			continue
		}
		if onGround(m, tri, o, ground) {
			continue
		}

		// Angle between the outward normal and the up axis; subtracting
		// 90 degrees gives the surface angle from vertical.
		theta := tri.Normal.AngleTo(o.Up) * 180 / math.Pi
		angle := theta - 90
		if angle < 0 {
			angle = 0
		}

		area := m.Face(tri).Area()
		face := OverhangFace{Triangle: i, Angle: angle, Area: area}
		result.Faces = append(result.Faces, face)
		result.DownwardArea += area
		if angle > thr.MaxOverhangAngle {
			exceedingArea += area
		}
		if angle > result.WorstAngle {
			result.WorstAngle = angle
		}
	}

	if result.DownwardArea > 0 {
		result.ExceedingAreaFraction = exceedingArea / result.DownwardArea
	}
	result.OK = result.WorstAngle <= thr.MaxOverhangAngle ||
		result.ExceedingAreaFraction <= thr.NegligibleOverhangAreaFraction
	return result
}

// onGround reports whether every corner of the triangle lies within the
// ground tolerance of the build plane
func onGround(m *mesh.Mesh, tri mesh.Triangle, o BuildOrientation, ground float64) bool {
	return o.Height(m.Vertices[tri.V1]) <= ground &&
		o.Height(m.Vertices[tri.V2]) <= ground &&
		o.Height(m.Vertices[tri.V3]) <= ground
}
