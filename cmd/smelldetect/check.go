package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hazem-khriji/Code-smell-detector/internal/output"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/analyzer/smells"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Run detection and fail if findings reach a severity gate",
	Long: `Check runs the same detection as analyze but exits non-zero when any
finding is at or above the --fail-on severity. Intended for CI pipelines.`,
	Example: `  smelldetect check
  smelldetect check --fail-on medium src/`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addThresholdFlags(checkCmd)
	checkCmd.Flags().String("fail-on", "high", "Minimum severity that fails the check: low, medium, high")
	checkCmd.Flags().Bool("no-cache", false, "Disable the result cache for this run")
}

func runCheck(cmd *cobra.Command, args []string) error {
	failOn, _ := cmd.Flags().GetString("fail-on")
	minSeverity, err := smells.ParseSeverity(failOn)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyThresholdFlags(cmd, cfg)

	noCache, _ := cmd.Flags().GetBool("no-cache")

	analysis, err := runAnalysis(cfg, getPaths(args), !noCache)
	if err != nil {
		return err
	}
	if verbose {
		printDistribution(analysis)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(outFormat), outFile, cfg.Output.Color && !noColor)
	if err != nil {
		return err
	}
	defer formatter.Close()

	gated := analysis.CountAtOrAbove(minSeverity)

	if gated == 0 {
		formatter.Success("Check passed: no findings at or above %s severity (%d total findings)",
			minSeverity, analysis.Summary.TotalFindings)
		return nil
	}

	if err := formatter.Output(findingsTable(analysis)); err != nil {
		return err
	}

	return fmt.Errorf("check failed: %d finding(s) at or above %s severity", gated, minSeverity)
}
