// Package feasibility implements the physical feasibility checks for 3D
// printed solids: static stability, minimum wall thickness and maximum
// unsupported overhang angle, plus the mesh-quality diagnostics gating them.
package feasibility

import (
	"github.com/philipparndt/printcheck/pkg/geometry"
)

// Thresholds holds the caller-supplied pass/fail limits for one validation
// run. Lengths are in mesh units, angles in degrees.
type Thresholds struct {
	// MinWallThickness is the minimum acceptable wall thickness
	MinWallThickness float64 `json:"minWallThickness" yaml:"min_wall_thickness"`
	// MaxOverhangAngle is the steepest printable overhang, measured from
	// vertical (0 = vertical wall, 90 = horizontal ceiling)
	MaxOverhangAngle float64 `json:"maxOverhangAngle" yaml:"max_overhang_angle"`
	// StabilityMarginFraction scales the footprint diameter into the
	// safety distance the centroid must keep from the footprint boundary
	StabilityMarginFraction float64 `json:"stabilityMarginFraction" yaml:"stability_margin_fraction"`
	// NegligibleOverhangAreaFraction is the downward-area fraction below
	// which exceeding overhangs are forgiven
	NegligibleOverhangAreaFraction float64 `json:"negligibleOverhangAreaFraction" yaml:"negligible_overhang_area_fraction"`
	// ThicknessSamples is the target number of surface samples for the
	// wall thickness estimate
	ThicknessSamples int `json:"thicknessSamples" yaml:"thickness_samples"`
}

// DefaultThresholds returns the documented fallback limits
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinWallThickness:               1.5,
		MaxOverhangAngle:               45,
		StabilityMarginFraction:        0.02,
		NegligibleOverhangAreaFraction: 0,
		ThicknessSamples:               512,
	}
}

// Tolerances holds every floating-point epsilon used by the checks.
// They are explicit configuration so tests can tune sensitivity per mesh
// scale instead of relying on hidden constants.
type Tolerances struct {
	// ZeroArea is the triangle area below which a triangle counts as degenerate
	ZeroArea float64 `json:"zeroArea" yaml:"zero_area"`
	// MinVolume is the enclosed volume below which the volume integration
	// is reported unreliable instead of dividing by near-zero
	MinVolume float64 `json:"minVolume" yaml:"min_volume"`
	// GroundFraction is the ground-contact tolerance as a fraction of model height
	GroundFraction float64 `json:"groundFraction" yaml:"ground_fraction"`
	// GroundMin is the minimum absolute ground-contact tolerance
	GroundMin float64 `json:"groundMin" yaml:"ground_min"`
	// RayMinTravel is the distance a thickness ray must travel before a
	// hit counts, filtering self and coplanar-neighbor intersections
	RayMinTravel float64 `json:"rayMinTravel" yaml:"ray_min_travel"`
	// MaxUnmeasurableFraction is the unmeasurable-sample fraction above
	// which the thickness metric is reported unreliable
	MaxUnmeasurableFraction float64 `json:"maxUnmeasurableFraction" yaml:"max_unmeasurable_fraction"`
}

// DefaultTolerances returns epsilons suitable for meshes in millimeter scale
func DefaultTolerances() Tolerances {
	return Tolerances{
		ZeroArea:                1e-12,
		MinVolume:               1e-9,
		GroundFraction:          0.001,
		GroundMin:               0.01,
		RayMinTravel:            1e-6,
		MaxUnmeasurableFraction: 0.5,
	}
}

// InputError marks structurally unusable input: empty mesh, non-finite
// coordinates or out-of-range vertex indices. It aborts the whole
// validation, unlike quality defects which only degrade the report.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid mesh input: " + e.Reason
}

// Report is the aggregate result of one validation run. It is an immutable
// value; numeric fields use the mesh length units and degrees.
type Report struct {
	Closed        bool             `json:"closed"`
	Manifold      bool             `json:"manifold"`
	Reliable      bool             `json:"reliable"`
	Volume        float64          `json:"volume"`
	Centroid      geometry.Vector3 `json:"centroid"`
	Stability     StabilityResult  `json:"stability"`
	WallThickness ThicknessResult  `json:"wallThickness"`
	Overhang      OverhangResult   `json:"overhang"`
	Diagnostics   []string         `json:"diagnostics"`
	Incomplete    bool             `json:"incomplete"`
	OK            bool             `json:"ok"`
}
