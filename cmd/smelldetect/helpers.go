package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Hazem-khriji/Code-smell-detector/internal/cache"
	"github.com/Hazem-khriji/Code-smell-detector/internal/progress"
	"github.com/Hazem-khriji/Code-smell-detector/internal/scanner"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/analyzer/smells"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/config"
)

// getPaths returns the positional path arguments, defaulting to the
// current directory.
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// loadConfig loads the explicit config file when --config is set, or
// searches the standard locations otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}

// applyThresholdFlags overrides config thresholds with any flags the user
// set explicitly on the command.
func applyThresholdFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("long-method") {
		v, _ := cmd.Flags().GetInt("long-method")
		cfg.Thresholds.LongMethodLines = v
	}
	if cmd.Flags().Changed("max-params") {
		v, _ := cmd.Flags().GetInt("max-params")
		cfg.Thresholds.MaxParameters = v
	}
	if cmd.Flags().Changed("max-nesting") {
		v, _ := cmd.Flags().GetInt("max-nesting")
		cfg.Thresholds.MaxNestingDepth = v
	}
	if cmd.Flags().Changed("nested-reset") {
		v, _ := cmd.Flags().GetBool("nested-reset")
		cfg.Analysis.NestedDefinitionReset = v
	}
}

// addThresholdFlags registers the detection threshold flags shared by the
// analyze and check commands.
func addThresholdFlags(cmd *cobra.Command) {
	d := smells.DefaultThresholds()
	cmd.Flags().Int("long-method", d.LongMethodLines, "Line-span threshold for long methods")
	cmd.Flags().Int("max-params", d.MaxParameters, "Parameter-count threshold")
	cmd.Flags().Int("max-nesting", d.MaxNestingDepth, "Control-nesting depth threshold")
	cmd.Flags().Bool("nested-reset", false, "Exclude nested function bodies from nesting depth")
}

// runAnalysis scans the given paths and runs smell detection over every
// discovered source file.
func runAnalysis(cfg *config.Config, paths []string, useCache bool) (*smells.Analysis, error) {
	files, err := scanner.New(cfg).ScanPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files found in %v", paths)
	}

	opts := []smells.Option{
		smells.WithThresholds(cfg.Thresholds),
		smells.WithNestedDefinitionReset(cfg.Analysis.NestedDefinitionReset),
	}
	if useCache && cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
		if err != nil {
			return nil, err
		}
		opts = append(opts, smells.WithCache(c))
	}

	analyzer, err := smells.New(opts...)
	if err != nil {
		return nil, err
	}
	defer analyzer.Close()

	tracker := progress.NewTracker("Analyzing", len(files))
	analysis, err := analyzer.AnalyzeProject(files, tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return nil, err
	}
	tracker.FinishSuccess()

	return analysis, nil
}

// printDistribution writes the run's metric distribution to stderr.
func printDistribution(analysis *smells.Analysis) {
	rows := []struct {
		label string
		m     smells.MetricSummary
	}{
		{"line span", analysis.Distribution.LineSpan},
		{"parameters", analysis.Distribution.Parameters},
		{"nesting depth", analysis.Distribution.NestingDepth},
	}
	fmt.Fprintf(os.Stderr, "metric distribution over %d function(s):\n", analysis.Summary.FunctionsAnalyzed)
	for _, r := range rows {
		fmt.Fprintf(os.Stderr, "  %-14s mean %.1f  p50 %.0f  p90 %.0f  max %.0f\n",
			r.label, r.m.Mean, r.m.P50, r.m.P90, r.m.Max)
	}
}

// truncate shortens a string to at most n runes for table display.
// Multi-byte names are cut on rune boundaries.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
