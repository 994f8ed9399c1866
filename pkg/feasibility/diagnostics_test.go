package feasibility

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/printcheck/pkg/geometry"
	"github.com/philipparndt/printcheck/pkg/mesh"
)

func TestCheckInputValid(t *testing.T) {
	require.NoError(t, CheckInput(cubeMesh(2)))
}

func TestCheckInputEmptyMesh(t *testing.T) {
	var inputErr *InputError

	err := CheckInput(mesh.New("empty", nil, nil))
	require.Error(t, err)
	assert.True(t, errors.As(err, &inputErr))

	err = CheckInput(nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, &inputErr))
}

func TestCheckInputNaNCoordinate(t *testing.T) {
	m := cubeMesh(2)
	m.Vertices[3] = geometry.NewVector3(math.NaN(), 0, 0)

	err := CheckInput(m)
	require.Error(t, err)

	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestCheckInputIndexOutOfRange(t *testing.T) {
	m := mesh.New("broken",
		[]geometry.Vector3{{X: 0}, {X: 1}, {Y: 1}},
		[][3]int{{0, 1, 7}},
	)

	err := CheckInput(m)
	require.Error(t, err)

	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestDiagnoseCleanCube(t *testing.T) {
	diag := Diagnose(cubeMesh(2), DefaultTolerances())

	assert.True(t, diag.Closed)
	assert.True(t, diag.Manifold)
	assert.True(t, diag.Clean())
	assert.Empty(t, diag.Defects)
}

func TestDiagnoseCleanSphere(t *testing.T) {
	diag := Diagnose(sphereMesh(10, 16, 16), DefaultTolerances())

	assert.True(t, diag.Closed)
	assert.True(t, diag.Manifold)
}

func TestDiagnoseFlippedTriangle(t *testing.T) {
	m := cubeMesh(2)
	tri := m.Triangles[2]
	m.Triangles[2] = mesh.Triangle{V1: tri.V1, V2: tri.V3, V3: tri.V2, Normal: tri.Normal.Mul(-1)}

	diag := Diagnose(m, DefaultTolerances())

	assert.False(t, diag.Manifold)
	assert.False(t, diag.Clean())
	require.NotEmpty(t, diag.Defects)
	assert.Equal(t, DefectNonManifoldEdge, diag.Defects[0].Kind)
}

func TestDiagnoseOpenMesh(t *testing.T) {
	m := cubeMesh(2)
	m.Triangles = m.Triangles[:len(m.Triangles)-1]

	diag := Diagnose(m, DefaultTolerances())

	assert.False(t, diag.Closed)
	assert.False(t, diag.Clean())
}

func TestDiagnoseDegenerateTriangle(t *testing.T) {
	m := mesh.New("degenerate",
		[]geometry.Vector3{{X: 0}, {X: 1}, {X: 2}},
		[][3]int{{0, 1, 2}}, // collinear, zero area
	)

	diag := Diagnose(m, DefaultTolerances())

	kinds := make(map[DefectKind]bool)
	for _, d := range diag.Defects {
		kinds[d.Kind] = true
	}
	assert.True(t, kinds[DefectDegenerateTriangle])
	assert.True(t, kinds[DefectDegenerateBounds])
}

func TestDiagnoseDuplicateTriangle(t *testing.T) {
	m := cubeMesh(2)
	m.Triangles = append(m.Triangles, m.Triangles[0])

	diag := Diagnose(m, DefaultTolerances())

	kinds := make(map[DefectKind]bool)
	for _, d := range diag.Defects {
		kinds[d.Kind] = true
	}
	assert.True(t, kinds[DefectDuplicateTriangle])
	assert.False(t, diag.Manifold)
}
