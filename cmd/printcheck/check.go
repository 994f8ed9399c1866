package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/philipparndt/printcheck/internal/config"
	"github.com/philipparndt/printcheck/internal/logger"
	"github.com/philipparndt/printcheck/pkg/feasibility"
	"github.com/philipparndt/printcheck/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	configPath      string
	minWall         float64
	maxOverhang     float64
	stabilityMargin float64
	negligibleArea  float64
	samples         int
	jsonOutput      bool
	checkTimeout    time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate the physical feasibility of an STL model",
	Long: `Run the full feasibility validation on an STL file: mesh diagnostics,
volume and centroid, static stability on the build plate, minimum wall
thickness and overhang angles. Exits non-zero when the model fails.`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	checkCmd.Flags().Float64Var(&minWall, "min-wall-thickness", 0, "minimum acceptable wall thickness in mesh units")
	checkCmd.Flags().Float64Var(&maxOverhang, "max-overhang-angle", 0, "maximum printable overhang angle in degrees from vertical")
	checkCmd.Flags().Float64Var(&stabilityMargin, "stability-margin", 0, "stability margin as a fraction of the footprint diameter")
	checkCmd.Flags().Float64Var(&negligibleArea, "negligible-overhang-area", 0, "downward-area fraction below which exceeding overhangs are forgiven")
	checkCmd.Flags().IntVar(&samples, "samples", 0, "target number of wall thickness samples")
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "abort the validation after this duration (0 = no limit)")
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyThresholdFlags(cmd, &cfg.Thresholds)

	report, err := validateFile(args[0], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSONReport(report)
	} else {
		printReport(args[0], report)
	}

	if !report.OK {
		os.Exit(1)
	}
}

// applyThresholdFlags overrides configured thresholds with any flags the
// user set explicitly, so unset flags keep the config file values.
func applyThresholdFlags(cmd *cobra.Command, thr *feasibility.Thresholds) {
	if cmd.Flags().Changed("min-wall-thickness") {
		thr.MinWallThickness = minWall
	}
	if cmd.Flags().Changed("max-overhang-angle") {
		thr.MaxOverhangAngle = maxOverhang
	}
	if cmd.Flags().Changed("stability-margin") {
		thr.StabilityMarginFraction = stabilityMargin
	}
	if cmd.Flags().Changed("negligible-overhang-area") {
		thr.NegligibleOverhangAreaFraction = negligibleArea
	}
	if cmd.Flags().Changed("samples") {
		thr.ThicknessSamples = samples
	}
}

func validateFile(filename string, cfg *config.Config) (*feasibility.Report, error) {
	start := time.Now()

	model, err := stl.Parse(filename)
	if err != nil {
		return nil, fmt.Errorf("parsing STL file: %w", err)
	}

	ctx := context.Background()
	if checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, checkTimeout)
		defer cancel()
	}

	orientation := feasibility.OrientationFor(model)
	report, err := feasibility.ValidateWith(ctx, model, orientation, cfg.Thresholds, cfg.Tolerances)
	if err != nil {
		return nil, err
	}

	logger.Sugar.Debugw("validation finished",
		"file", filename,
		"triangles", model.TriangleCount(),
		"ok", report.OK,
		"duration", time.Since(start))

	return report, nil
}

func printJSONReport(report *feasibility.Report) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func printReport(filename string, report *feasibility.Report) {
	fmt.Println("Feasibility Report")
	fmt.Println("==================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh Quality:")
	fmt.Printf("  Closed: %s\n", yesNo(report.Closed))
	fmt.Printf("  Manifold: %s\n", yesNo(report.Manifold))
	fmt.Printf("  Reliable: %s\n\n", yesNo(report.Reliable))

	fmt.Println("Mass Properties:")
	fmt.Printf("  Volume: %.6f cubic units\n", report.Volume)
	fmt.Printf("  Centroid: (%.6f, %.6f, %.6f)\n\n", report.Centroid.X, report.Centroid.Y, report.Centroid.Z)

	fmt.Printf("Stability: %s\n", passFail(report.Stability.OK))
	fmt.Printf("  Centroid distance to footprint boundary: %.6f units\n", report.Stability.Distance)
	fmt.Printf("  Required margin: %.6f units\n", report.Stability.Margin)
	fmt.Printf("  Footprint hull points: %d\n\n", report.Stability.FootprintPoints)

	fmt.Printf("Wall Thickness: %s\n", passFail(report.WallThickness.OK))
	fmt.Printf("  5th percentile: %.6f units\n", report.WallThickness.Percentile5)
	fmt.Printf("  Minimum: %.6f units\n", report.WallThickness.Minimum)
	fmt.Printf("  Samples measured: %d of %d\n\n", report.WallThickness.MeasuredCount, report.WallThickness.SampleCount)

	fmt.Printf("Overhangs: %s\n", passFail(report.Overhang.OK))
	fmt.Printf("  Worst angle: %.2f degrees from vertical\n", report.Overhang.WorstAngle)
	fmt.Printf("  Downward area: %.6f square units\n", report.Overhang.DownwardArea)
	fmt.Printf("  Exceeding area fraction: %.4f\n\n", report.Overhang.ExceedingAreaFraction)

	if len(report.Diagnostics) > 0 {
		fmt.Println("Diagnostics:")
		for _, d := range report.Diagnostics {
			fmt.Printf("  - %s\n", d)
		}
		fmt.Println()
	}

	if report.Incomplete {
		fmt.Println("Result: INCOMPLETE (validation aborted before all checks finished)")
	} else if report.OK {
		fmt.Println("Result: PRINTABLE")
	} else {
		fmt.Println("Result: NOT PRINTABLE")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func passFail(b bool) string {
	if b {
		return "PASS"
	}
	return "FAIL"
}
