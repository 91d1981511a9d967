package smells

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// summarize computes the distribution summary for one metric's samples.
func summarize(samples []float64) MetricSummary {
	if len(samples) == 0 {
		return MetricSummary{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	return MetricSummary{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}
