package feasibility

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/philipparndt/printcheck/pkg/geometry"
	"github.com/philipparndt/printcheck/pkg/mesh"
)

// ThicknessSample is one surface point with its measured local thickness
type ThicknessSample struct {
	Point     geometry.Vector3 `json:"point"`
	Thickness float64          `json:"thickness"`
	Triangle  int              `json:"triangle"`
	// Measurable is false when the inward ray left the mesh without a
	// second surface hit
	Measurable bool `json:"measurable"`
}

// ThicknessResult summarizes the wall thickness measurements
type ThicknessResult struct {
	OK bool `json:"ok"`
	// Minimum is the smallest measured thickness, kept for diagnostics
	Minimum float64 `json:"minimum"`
	// Percentile5 is the headline metric: the thickness below which only
	// 5% of samples fall, robust against a single degenerate micro-sample
	Percentile5          float64 `json:"percentile5"`
	SampleCount          int     `json:"sampleCount"`
	MeasuredCount        int     `json:"measuredCount"`
	UnmeasurableFraction float64 `json:"unmeasurableFraction"`
	// Reliable is false when too many samples were unmeasurable for the
	// percentile to mean anything
	Reliable bool `json:"reliable"`
}

// SurfaceSample is a point on the mesh surface chosen for measurement
type SurfaceSample struct {
	Point    geometry.Vector3
	Triangle int
}

// Sampler chooses the surface points to measure. Implementations must be
// deterministic: the same mesh and target yield the same samples in the
// same order.
type Sampler interface {
	Samples(m *mesh.Mesh, target int) []SurfaceSample
}

// CentroidSampler places one sample at every triangle centroid
type CentroidSampler struct{}

// Samples implements Sampler; target is ignored
func (CentroidSampler) Samples(m *mesh.Mesh, _ int) []SurfaceSample {
	samples := make([]SurfaceSample, 0, len(m.Triangles))
	for i := range m.Triangles {
		samples = append(samples, SurfaceSample{Point: m.FaceAt(i).Center(), Triangle: i})
	}
	return samples
}

// AreaWeightedSampler distributes roughly target samples across the surface
// proportionally to triangle area, so large faces get proportionally more
// samples. Points come from a uniform barycentric lattice per triangle.
type AreaWeightedSampler struct{}

// Samples implements Sampler
func (AreaWeightedSampler) Samples(m *mesh.Mesh, target int) []SurfaceSample {
	if target < 1 {
		target = 1
	}

	total := m.SurfaceArea()
	if total <= 0 {
		return nil
	}

	var samples []SurfaceSample
	for i := range m.Triangles {
		face := m.FaceAt(i)
		share := face.Area() / total * float64(target)
		count := int(math.Round(share))
		if count == 0 {
			continue
		}

		res := int(math.Ceil(math.Sqrt(float64(count))))
		for row := 0; row < res; row++ {
			for col := 0; col < res; col++ {
				u := (float64(row) + 0.5) / float64(res)
				v := (float64(col) + 0.5) / float64(res)
				if u+v > 1 {
					// Mirror into the lower barycentric half
					u = 1 - u
					v = 1 - v
				}
				samples = append(samples, SurfaceSample{
					Point:    face.Barycentric(u, v),
					Triangle: i,
				})
			}
		}
	}

	if len(samples) == 0 {
		// Target too small for the area distribution; fall back to the
		// centroid of every triangle so the metric never starves.
		return CentroidSampler{}.Samples(m, target)
	}
	return samples
}

// EstimateThickness measures local wall thickness with the default
// area-weighted sampler.
func EstimateThickness(ctx context.Context, m *mesh.Mesh, thr Thresholds, tol Tolerances) (ThicknessResult, error) {
	return EstimateThicknessWith(ctx, m, AreaWeightedSampler{}, thr, tol)
}

// EstimateThicknessWith measures local wall thickness at the sampler's
// surface points. For each sample a ray is cast from the point along the
// inverted outward normal; the first opposing surface hit is the local
// thickness. Rays that leave the mesh without a second hit are recorded as
// unmeasurable and excluded from the percentile, but their fraction is
// reported. Per-sample casts run on a worker pool; results are sorted
// before the percentile so scheduling never affects the output.
func EstimateThicknessWith(ctx context.Context, m *mesh.Mesh, sampler Sampler, thr Thresholds, tol Tolerances) (ThicknessResult, error) {
	samples := sampler.Samples(m, thr.ThicknessSamples)
	if len(samples) == 0 {
		return ThicknessResult{}, nil
	}

	measured := make([]ThicknessSample, len(samples))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(samples) {
		workers = len(samples)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					return
				}
				measured[idx] = castThickness(m, samples[idx], tol)
			}
		}()
	}

feed:
	for i := range samples {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return ThicknessResult{}, err
	}

	return summarizeThickness(measured, thr, tol), nil
}

// castThickness casts the opposed ray for one sample
func castThickness(m *mesh.Mesh, s SurfaceSample, tol Tolerances) ThicknessSample {
	result := ThicknessSample{Point: s.Point, Triangle: s.Triangle}

	dir := m.Triangles[s.Triangle].Normal.Mul(-1)
	if dir.Length() == 0 {
		return result
	}

	best := math.MaxFloat64
	for i := range m.Triangles {
		if i == s.Triangle {
			continue
		}
		dist, hit := m.FaceAt(i).IntersectRay(s.Point, dir)
		if hit && dist > tol.RayMinTravel && dist < best {
			best = dist
		}
	}

	if best < math.MaxFloat64 {
		result.Thickness = best
		result.Measurable = true
	}
	return result
}

func summarizeThickness(samples []ThicknessSample, thr Thresholds, tol Tolerances) ThicknessResult {
	result := ThicknessResult{SampleCount: len(samples)}

	var values []float64
	for _, s := range samples {
		if s.Measurable {
			values = append(values, s.Thickness)
		}
	}
	result.MeasuredCount = len(values)
	result.UnmeasurableFraction = 1 - float64(len(values))/float64(len(samples))
	result.Reliable = result.UnmeasurableFraction <= tol.MaxUnmeasurableFraction

	if len(values) == 0 {
		result.Reliable = false
		return result
	}

	sort.Float64s(values)
	result.Minimum = values[0]
	result.Percentile5 = stat.Quantile(0.05, stat.Empirical, values, nil)
	result.OK = result.Reliable && result.Percentile5 >= thr.MinWallThickness
	return result
}
