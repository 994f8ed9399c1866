package feasibility

import (
	"context"
	"fmt"
	"sync"

	"github.com/philipparndt/printcheck/pkg/mesh"
)

// Validate runs the full feasibility pipeline with the default tolerances:
// input gate, diagnostics, then stability, wall thickness and overhang
// checks over the same immutable mesh, combined into one report.
func Validate(ctx context.Context, m *mesh.Mesh, o BuildOrientation, thr Thresholds) (*Report, error) {
	return ValidateWith(ctx, m, o, thr, DefaultTolerances())
}

// ValidateWith is Validate with explicit epsilon tolerances.
//
// Structurally unusable input returns an *InputError and no report.
// Quality defects never abort: the checks still run and the report is
// flagged unreliable. The three checks have no data dependency on each
// other and run as parallel tasks; a sequential execution would produce an
// identical report. If the caller's context expires mid-run the report
// comes back with Incomplete set, never with silently truncated metrics.
func ValidateWith(ctx context.Context, m *mesh.Mesh, o BuildOrientation, thr Thresholds, tol Tolerances) (*Report, error) {
	if err := CheckInput(m); err != nil {
		return nil, err
	}

	diag := Diagnose(m, tol)

	var (
		wg        sync.WaitGroup
		vol       VolumeResult
		stability StabilityResult
		footprint SupportFootprint
		thickness ThicknessResult
		thickErr  error
		overhang  OverhangResult
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		vol = VolumeCentroid(m, tol)
		footprint = ComputeFootprint(m, o, tol)
		stability = CheckStability(vol.Centroid, footprint, o, thr.StabilityMarginFraction)
	}()
	go func() {
		defer wg.Done()
		thickness, thickErr = EstimateThickness(ctx, m, thr, tol)
	}()
	go func() {
		defer wg.Done()
		overhang = ScanOverhangs(m, o, thr, tol)
	}()
	wg.Wait()

	report := &Report{
		Closed:        diag.Closed,
		Manifold:      diag.Manifold,
		Volume:        vol.Volume,
		Centroid:      vol.Centroid,
		Stability:     stability,
		WallThickness: thickness,
		Overhang:      overhang,
	}

	for _, defect := range diag.Defects {
		report.Diagnostics = append(report.Diagnostics, defect.String())
	}
	if !vol.Reliable {
		report.Diagnostics = append(report.Diagnostics, Defect{
			Kind:   DefectNearZeroVolume,
			Detail: fmt.Sprintf("signed volume sum %.6g is not positive enough to trust", vol.Volume),
		}.String())
	}
	if footprint.ContactPoints < 3 {
		report.Diagnostics = append(report.Diagnostics, Defect{
			Kind:   DefectZeroAreaFootprint,
			Detail: fmt.Sprintf("only %d ground-contact points, point or line contact cannot support the model", footprint.ContactPoints),
		}.String())
	}
	if !thickness.Reliable && thickErr == nil {
		report.Diagnostics = append(report.Diagnostics, Defect{
			Kind:   DefectUnmeasurableWalls,
			Detail: fmt.Sprintf("%.0f%% of thickness rays left the mesh without a second hit", thickness.UnmeasurableFraction*100),
		}.String())
	}

	if thickErr != nil {
		// The wall-clock budget expired mid-run: surface the abort,
		// never pretend the partial percentile is the metric.
		report.Incomplete = true
		report.Diagnostics = append(report.Diagnostics,
			fmt.Sprintf("wall thickness check aborted: %v", thickErr))
	}

	report.Reliable = diag.Clean() && vol.Reliable && thickness.Reliable
	report.OK = !report.Incomplete &&
		diag.Clean() &&
		stability.OK &&
		thickness.OK &&
		overhang.OK

	return report, nil
}
