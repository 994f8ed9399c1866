package feasibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/printcheck/pkg/geometry"
)

func TestComputeFootprintCube(t *testing.T) {
	m := cubeMesh(2)
	o := OrientationFor(m)

	fp := ComputeFootprint(m, o, DefaultTolerances())

	require.Len(t, fp.Points, 4)
	assert.Equal(t, 4, fp.ContactPoints)
	assert.InDelta(t, 4.0, fp.Area(), 1e-9)
}

func TestComputeFootprintPointContact(t *testing.T) {
	// The cone's apex is its only ground contact
	m := coneMesh(5, 5, 32)
	o := OrientationFor(m)

	fp := ComputeFootprint(m, o, DefaultTolerances())

	assert.Less(t, fp.ContactPoints, 3)
	assert.Zero(t, fp.Area())
}

func TestCheckStabilityCube(t *testing.T) {
	m := cubeMesh(2)
	o := OrientationFor(m)
	tol := DefaultTolerances()

	vol := VolumeCentroid(m, tol)
	fp := ComputeFootprint(m, o, tol)
	result := CheckStability(vol.Centroid, fp, o, 0.02)

	assert.True(t, result.OK)
	// Centroid projects onto the footprint center, one half-edge from
	// the nearest boundary
	assert.InDelta(t, 1.0, result.Distance, 1e-9)
	assert.Greater(t, result.Margin, 0.0)
}

func TestCheckStabilityCentroidOutside(t *testing.T) {
	m := cubeMesh(2)
	o := OrientationFor(m)
	fp := ComputeFootprint(m, o, DefaultTolerances())

	// A centroid hanging far beyond the footprint must report a negative
	// distance, not just a bare false
	result := CheckStability(geometry.NewVector3(5, 0, 1), fp, o, 0.02)

	assert.False(t, result.OK)
	assert.InDelta(t, -4.0, result.Distance, 1e-9)
}

func TestCheckStabilityPointContact(t *testing.T) {
	m := coneMesh(5, 5, 32)
	o := OrientationFor(m)
	tol := DefaultTolerances()

	vol := VolumeCentroid(m, tol)
	fp := ComputeFootprint(m, o, tol)
	result := CheckStability(vol.Centroid, fp, o, 0.02)

	assert.False(t, result.OK)
	assert.Less(t, result.FootprintPoints, 3)
}

func TestCheckStabilityMarginErodesFootprint(t *testing.T) {
	m := cubeMesh(2)
	o := OrientationFor(m)
	tol := DefaultTolerances()

	vol := VolumeCentroid(m, tol)
	fp := ComputeFootprint(m, o, tol)

	// An absurd margin larger than the half-edge makes even a centered
	// centroid fail
	result := CheckStability(vol.Centroid, fp, o, 0.5)
	assert.False(t, result.OK)
}

func TestConvexHullExcludesInteriorAndCollinear(t *testing.T) {
	points := []geometry.Vector2{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
		{X: 1, Y: 0}, // collinear on the bottom edge
		{X: 1, Y: 1}, // interior
	}

	hull := convexHull(points)

	assert.Len(t, hull, 4)

	// Counter-clockwise order: every consecutive turn is a left turn
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		c := hull[(i+2)%len(hull)]
		assert.Positive(t, b.Sub(a).Cross(c.Sub(a)))
	}
}

func TestConvexHullCollinearInput(t *testing.T) {
	points := []geometry.Vector2{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3},
	}

	hull := convexHull(points)
	assert.Len(t, hull, 2)
}

func TestOrientationProjectRoundTrip(t *testing.T) {
	o := BuildOrientation{Up: geometry.NewVector3(0, 0, 1)}

	p := o.Project(geometry.NewVector3(3, 4, 7))
	q := o.Project(geometry.NewVector3(0, 0, 0))

	// Distances in the plane are preserved by the orthonormal projection
	assert.InDelta(t, 5.0, p.Distance(q), 1e-9)
}
