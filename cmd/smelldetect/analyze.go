package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Hazem-khriji/Code-smell-detector/internal/output"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/analyzer/smells"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Detect code smells in source files",
	Long: `Analyze scans the given paths (or the current directory) for source
files, measures each function's line span, parameter count, and maximum
control-flow nesting depth, and reports every measurement that exceeds
its configured threshold.`,
	Example: `  smelldetect analyze
  smelldetect analyze src/ lib/utils.py
  smelldetect analyze --long-method 30 --format json
  smelldetect analyze --max-nesting 3 -o report.md -f markdown`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addThresholdFlags(analyzeCmd)
	analyzeCmd.Flags().Bool("no-cache", false, "Disable the result cache for this run")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	if analysis.Summary.TotalFindings == 0 {
		if output.ParseFormat(outFormat) == output.FormatText {
			formatter.Success("No code smells detected (%d functions across %d files)",
				analysis.Summary.FunctionsAnalyzed, analysis.Summary.FilesAnalyzed)
			return nil
		}
		return formatter.Output(findingsTable(analysis))
	}

	if err := formatter.Output(findingsTable(analysis)); err != nil {
		return err
	}

	if analysis.Summary.FilesFailed > 0 {
		formatter.Warning("%d file(s) could not be parsed and were skipped", analysis.Summary.FilesFailed)
	}

	return nil
}

// findingsTable flattens an analysis into a renderable findings table with
// a summary footer. The full analysis serializes for JSON/TOON output.
func findingsTable(analysis *smells.Analysis) *output.Table {
	var rows [][]string
	for _, ff := range analysis.Files {
		for _, f := range ff.Findings {
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d", ff.Path, f.Line),
				truncate(f.Function, 40),
				string(f.Type),
				output.SeverityColor(string(f.Severity), string(f.Severity)),
				f.Message,
			})
		}
	}

	s := analysis.Summary
	footer := []string{
		strconv.Itoa(s.TotalFindings) + " finding(s)",
		"",
		"",
		fmt.Sprintf("%d high / %d medium", s.HighCount, s.MediumCount),
		fmt.Sprintf("%d functions, %d files", s.FunctionsAnalyzed, s.FilesAnalyzed),
	}

	return output.NewTable(
		"Code Smells",
		[]string{"Location", "Function", "Smell", "Severity", "Message"},
		rows,
		footer,
		analysis,
	)
}
