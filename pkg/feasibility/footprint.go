package feasibility

import (
	"math"
	"sort"

	"github.com/philipparndt/printcheck/pkg/geometry"
	"github.com/philipparndt/printcheck/pkg/mesh"
)

// BuildOrientation fixes how the mesh sits in the printer: a unit up vector
// and the elevation of the build plane along that vector. It is supplied by
// the caller and immutable for the duration of one validation run.
type BuildOrientation struct {
	Up              geometry.Vector3 `json:"up"`
	GroundElevation float64          `json:"groundElevation"`
}

// OrientationFor returns the conventional orientation for a mesh: +Z up
// with the build plane at the lowest vertex.
func OrientationFor(m *mesh.Mesh) BuildOrientation {
	return BuildOrientation{
		Up:              geometry.NewVector3(0, 0, 1),
		GroundElevation: m.BoundingBox().Min.Z,
	}
}

// Height returns the elevation of a point above the build plane
func (o BuildOrientation) Height(p geometry.Vector3) float64 {
	return p.Dot(o.Up) - o.GroundElevation
}

// basis returns two orthonormal vectors spanning the build plane
func (o BuildOrientation) basis() (geometry.Vector3, geometry.Vector3) {
	// Reference axis least aligned with up, to avoid a degenerate cross
	ref := geometry.NewVector3(1, 0, 0)
	if math.Abs(o.Up.X) > math.Abs(o.Up.Y) {
		ref = geometry.NewVector3(0, 1, 0)
	}
	e1 := ref.Cross(o.Up).Normalize()
	e2 := o.Up.Cross(e1)
	return e1, e2
}

// Project drops the up-axis component of a point, yielding build-plane
// coordinates
func (o BuildOrientation) Project(p geometry.Vector3) geometry.Vector2 {
	e1, e2 := o.basis()
	return geometry.NewVector2(p.Dot(e1), p.Dot(e2))
}

// GroundTolerance returns the elevation band that counts as touching the
// build plane for the given mesh
func (o BuildOrientation) GroundTolerance(m *mesh.Mesh, tol Tolerances) float64 {
	height := 0.0
	for _, v := range m.Vertices {
		if h := o.Height(v); h > height {
			height = h
		}
	}
	return math.Max(tol.GroundFraction*height, tol.GroundMin)
}

// SupportFootprint is the convex polygon of ground-contact points on the
// build plane, ordered counter-clockwise.
type SupportFootprint struct {
	Points []geometry.Vector2 `json:"points"`
	// ContactPoints is the number of distinct ground-contact vertices the
	// hull was built from; fewer than 3 means point or line contact.
	ContactPoints int `json:"contactPoints"`
}

// Diameter returns the largest distance between two hull points
func (f SupportFootprint) Diameter() float64 {
	best := 0.0
	for i := 0; i < len(f.Points); i++ {
		for j := i + 1; j < len(f.Points); j++ {
			if d := f.Points[i].Distance(f.Points[j]); d > best {
				best = d
			}
		}
	}
	return best
}

// Area returns the enclosed polygon area
func (f SupportFootprint) Area() float64 {
	if len(f.Points) < 3 {
		return 0
	}
	sum := 0.0
	for i := range f.Points {
		j := (i + 1) % len(f.Points)
		sum += f.Points[i].Cross(f.Points[j])
	}
	return sum / 2.0
}

// ComputeFootprint projects all vertices within the ground tolerance of the
// build plane and returns their 2D convex hull.
func ComputeFootprint(m *mesh.Mesh, o BuildOrientation, tol Tolerances) SupportFootprint {
	ground := o.GroundTolerance(m, tol)

	var points []geometry.Vector2
	for _, v := range m.Vertices {
		if o.Height(v) <= ground {
			points = append(points, o.Project(v))
		}
	}

	points = dedupePoints(points)
	return SupportFootprint{
		Points:        convexHull(points),
		ContactPoints: len(points),
	}
}

// StabilityResult reports whether the projected centroid stays inside the
// support footprint with the required safety margin.
type StabilityResult struct {
	OK bool `json:"ok"`
	// Distance is the signed distance from the projected centroid to the
	// footprint boundary: positive inside, negative outside.
	Distance float64 `json:"distance"`
	// Margin is the safety distance the centroid must keep from the boundary
	Margin          float64 `json:"margin"`
	FootprintPoints int     `json:"footprintPoints"`
}

// CheckStability tests the projected centroid against the footprint eroded
// inward by marginFraction of the footprint diameter. Point or line contact
// (fewer than 3 contact points) is definitionally unstable.
func CheckStability(centroid geometry.Vector3, f SupportFootprint, o BuildOrientation, marginFraction float64) StabilityResult {
	result := StabilityResult{FootprintPoints: len(f.Points)}

	if len(f.Points) < 3 {
		return result
	}

	result.Margin = marginFraction * f.Diameter()
	result.Distance = signedDistanceToHull(o.Project(centroid), f.Points)
	result.OK = result.Distance >= result.Margin
	return result
}

// dedupePoints removes exact duplicates without disturbing determinism
func dedupePoints(points []geometry.Vector2) []geometry.Vector2 {
	seen := make(map[geometry.Vector2]struct{}, len(points))
	out := points[:0:0]
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// convexHull computes the 2D convex hull using the monotone chain sweep.
// The result is counter-clockwise with collinear interior points excluded.
func convexHull(points []geometry.Vector2) []geometry.Vector2 {
	if len(points) < 3 {
		return append([]geometry.Vector2(nil), points...)
	}

	sorted := append([]geometry.Vector2(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	var lower []geometry.Vector2
	for _, p := range sorted {
		for len(lower) >= 2 && lower[len(lower)-1].Sub(lower[len(lower)-2]).Cross(p.Sub(lower[len(lower)-2])) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []geometry.Vector2
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && upper[len(upper)-1].Sub(upper[len(upper)-2]).Cross(p.Sub(upper[len(upper)-2])) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		// All points collinear
		return []geometry.Vector2{sorted[0], sorted[len(sorted)-1]}
	}
	return hull
}

// signedDistanceToHull returns the distance from p to the boundary of a CCW
// convex polygon: positive inside, negative outside.
func signedDistanceToHull(p geometry.Vector2, hull []geometry.Vector2) float64 {
	inside := true
	minEdge := math.MaxFloat64
	minBoundary := math.MaxFloat64

	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		edge := b.Sub(a)
		length := edge.Length()
		if length == 0 {
			continue
		}

		// Perpendicular distance to the edge line, positive on the
		// interior (left) side for CCW winding
		perp := edge.Cross(p.Sub(a)) / length
		if perp < 0 {
			inside = false
		}
		if perp < minEdge {
			minEdge = perp
		}

		if d := distanceToSegment(p, a, b); d < minBoundary {
			minBoundary = d
		}
	}

	if inside {
		return minEdge
	}
	return -minBoundary
}

// distanceToSegment returns the distance from p to the segment ab
func distanceToSegment(p, a, b geometry.Vector2) float64 {
	ab := b.Sub(a)
	lengthSq := ab.Dot(ab)
	if lengthSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
