package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/printcheck/internal/logger"
	"github.com/philipparndt/printcheck/version"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "printcheck",
	Short: "A CLI tool for validating the physical feasibility of 3D-printable solids",
	Long: `printcheck analyzes STL (Stereolithography) files and decides whether the
modeled solid can plausibly be printed: it checks mesh quality, static
stability on the build plate, minimum wall thickness and unsupported
overhang angles, and aggregates everything into a single pass/fail report.`,
	Version: version.GetFullVersion(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logLevel, logFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
