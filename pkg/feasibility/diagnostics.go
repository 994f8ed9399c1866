package feasibility

import (
	"fmt"
	"sort"

	"github.com/philipparndt/printcheck/pkg/mesh"
)

// DefectKind classifies a mesh-quality finding
type DefectKind string

const (
	DefectOpenEdge           DefectKind = "open-edge"
	DefectNonManifoldEdge    DefectKind = "non-manifold-edge"
	DefectDegenerateTriangle DefectKind = "degenerate-triangle"
	DefectDuplicateTriangle  DefectKind = "duplicate-triangle"
	DefectDegenerateBounds   DefectKind = "degenerate-bounds"
	DefectNearZeroVolume     DefectKind = "near-zero-volume"
	DefectZeroAreaFootprint  DefectKind = "zero-area-footprint"
	DefectUnmeasurableWalls  DefectKind = "unmeasurable-walls"
)

// Defect describes one mesh-quality finding. Defects are data, not errors:
// they degrade the report instead of aborting the run.
type Defect struct {
	Kind   DefectKind `json:"kind"`
	Detail string     `json:"detail"`
}

func (d Defect) String() string {
	return string(d.Kind) + ": " + d.Detail
}

// Diagnostics is the result of the mesh-quality gate
type Diagnostics struct {
	Closed   bool     `json:"closed"`
	Manifold bool     `json:"manifold"`
	Defects  []Defect `json:"defects"`
}

// Clean reports whether no defect was found
func (d Diagnostics) Clean() bool {
	return d.Closed && d.Manifold && len(d.Defects) == 0
}

// CheckInput is the fail-fast gate for structurally unusable meshes.
// It returns an *InputError for an empty mesh, non-finite coordinates or
// out-of-range vertex indices; quality defects are not its concern.
func CheckInput(m *mesh.Mesh) error {
	if m == nil || len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return &InputError{Reason: "empty mesh"}
	}
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return &InputError{Reason: fmt.Sprintf("vertex %d has a non-finite coordinate", i)}
		}
	}
	for i, tri := range m.Triangles {
		for _, idx := range [3]int{tri.V1, tri.V2, tri.V3} {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("triangle %d: %w", i, &InputError{
					Reason: fmt.Sprintf("vertex index %d out of range [0, %d)", idx, len(m.Vertices)),
				})
			}
		}
	}
	return nil
}

// Diagnose checks closedness, manifoldness and triangle quality. It never
// fails: every finding is returned as a Defect and downstream checks may
// still run, with the report flagged unreliable.
func Diagnose(m *mesh.Mesh, tol Tolerances) Diagnostics {
	diag := Diagnostics{Closed: true, Manifold: true}

	// Every undirected edge of a closed orientable manifold is used by
	// exactly two triangles, once in each direction.
	type edgeUse struct{ forward, backward int }
	edges := make(map[[2]int]*edgeUse, 3*len(m.Triangles)/2)

	countEdge := func(a, b int) {
		key := [2]int{a, b}
		forward := true
		if a > b {
			key = [2]int{b, a}
			forward = false
		}
		use, ok := edges[key]
		if !ok {
			use = &edgeUse{}
			edges[key] = use
		}
		if forward {
			use.forward++
		} else {
			use.backward++
		}
	}

	for _, tri := range m.Triangles {
		countEdge(tri.V1, tri.V2)
		countEdge(tri.V2, tri.V3)
		countEdge(tri.V3, tri.V1)
	}

	openEdges := 0
	nonManifoldEdges := 0
	for _, use := range edges {
		total := use.forward + use.backward
		switch {
		case total == 2 && use.forward == 1:
			// well-formed
		case total < 2:
			openEdges++
		default:
			// Either more than two incidences, or two with the same
			// orientation (a flipped triangle).
			nonManifoldEdges++
		}
	}
	if openEdges > 0 {
		diag.Closed = false
		diag.Defects = append(diag.Defects, Defect{
			Kind:   DefectOpenEdge,
			Detail: fmt.Sprintf("%d edges are used by fewer than two triangles", openEdges),
		})
	}
	if nonManifoldEdges > 0 {
		diag.Manifold = false
		diag.Defects = append(diag.Defects, Defect{
			Kind:   DefectNonManifoldEdge,
			Detail: fmt.Sprintf("%d edges have inconsistent or excess triangle incidences", nonManifoldEdges),
		})
	}

	degenerate := 0
	for _, tri := range m.Triangles {
		if m.Face(tri).Area() < tol.ZeroArea {
			degenerate++
		}
	}
	if degenerate > 0 {
		diag.Defects = append(diag.Defects, Defect{
			Kind:   DefectDegenerateTriangle,
			Detail: fmt.Sprintf("%d triangles have near-zero area", degenerate),
		})
	}

	seen := make(map[[3]int]int, len(m.Triangles))
	duplicates := 0
	for _, tri := range m.Triangles {
		key := [3]int{tri.V1, tri.V2, tri.V3}
		sort.Ints(key[:])
		seen[key]++
		if seen[key] == 2 {
			duplicates++
		}
	}
	if duplicates > 0 {
		diag.Defects = append(diag.Defects, Defect{
			Kind:   DefectDuplicateTriangle,
			Detail: fmt.Sprintf("%d triangles share their vertex set with another triangle", duplicates),
		})
	}

	bbox := m.BoundingBox()
	if !bbox.IsValid() || bbox.IsDegenerate() {
		diag.Defects = append(diag.Defects, Defect{
			Kind:   DefectDegenerateBounds,
			Detail: "bounding box has no spatial extent",
		})
	}

	return diag
}
