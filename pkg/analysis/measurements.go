// Package analysis computes descriptive measurements over a mesh, used by
// the info command before any feasibility judgement.
package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/printcheck/pkg/geometry"
	"github.com/philipparndt/printcheck/pkg/mesh"
)

// MeasurementResult contains descriptive measurements of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	VertexCount   int
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeMesh performs descriptive analysis on a mesh
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   m.BoundingBox(),
		SurfaceArea:   m.SurfaceArea(),
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	// Each undirected edge is counted once
	type edge [2]int
	seen := make(map[edge]struct{}, 3*m.TriangleCount()/2)

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, tri := range m.Triangles {
		for _, pair := range [3][2]int{{tri.V1, tri.V2}, {tri.V2, tri.V3}, {tri.V3, tri.V1}} {
			key := edge{pair[0], pair[1]}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			length := m.Vertices[pair[0]].Distance(m.Vertices[pair[1]])
			totalLength += length
			if length < minLength {
				minLength = length
			}
			if length > maxLength {
				maxLength = length
			}
		}
	}

	result.EdgeCount = len(seen)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
