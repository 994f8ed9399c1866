package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/printcheck/internal/config"
	"github.com/philipparndt/printcheck/internal/logger"
	"github.com/philipparndt/printcheck/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-validate an STL file whenever it changes",
	Long: `Watch an STL file and re-run the feasibility validation each time it is
written. Useful while iterating on a model in a CAD tool.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	watchCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit reports as JSON")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "settle time after a change before re-validating")
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyThresholdFlags(cmd, &cfg.Thresholds)

	revalidate := func(path string) {
		report, err := validateFile(path, cfg)
		if err != nil {
			logger.Sugar.Errorw("validation failed", "file", path, "error", err)
			return
		}
		if jsonOutput {
			printJSONReport(report)
		} else {
			printReport(path, report)
		}
	}

	fw, err := watcher.NewFileWatcher(watchDebounce, logger.Sugar)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	if err := fw.Watch([]string{filename}, revalidate); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching file: %v\n", err)
		os.Exit(1)
	}
	fw.Start()

	// Validate once up front so the first report does not wait for a change
	revalidate(filename)
	logger.Sugar.Infow("watching for changes", "file", filename)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
