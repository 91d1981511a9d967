package smells

import (
	"fmt"
	"time"
)

// Type identifies the detector that produced a finding.
type Type string

const (
	TypeLongMethod        Type = "long_method"
	TypeTooManyParameters Type = "too_many_parameters"
	TypeDeepNesting       Type = "deep_nesting"
)

// MarshalText lets text-based encoders (TOON among them) serialize the
// named type as its plain string value.
func (t Type) MarshalText() ([]byte, error) { return []byte(t), nil }

func (t *Type) UnmarshalText(b []byte) error {
	*t = Type(b)
	return nil
}

// Severity classifies how urgent a finding is.
// Low is reserved for future detector variants; the current detectors
// only emit medium and high.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) MarshalText() ([]byte, error) { return []byte(s), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	*s = Severity(b)
	return nil
}

// Weight returns a numeric weight for sorting and gating (higher = more severe).
func (s Severity) Weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity converts a string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("unknown severity %q (want low, medium, or high)", s)
	}
}

// Finding is a single detected code smell. It is only ever constructed
// when a measured value strictly exceeds its threshold.
type Finding struct {
	Type     Type           `json:"type"`
	Severity Severity       `json:"severity"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`
	Function string         `json:"function"`
	Message  string         `json:"message"`
	Details  map[string]int `json:"details"`
}

// Thresholds configures detection limits. A finding fires only when the
// measured value is strictly greater than the primary threshold; the high
// ceiling separates medium from high severity.
type Thresholds struct {
	LongMethodLines     int `json:"long_method_lines" koanf:"long_method_lines"`
	LongMethodHighLines int `json:"long_method_high_lines" koanf:"long_method_high_lines"`
	MaxParameters       int `json:"max_parameters" koanf:"max_parameters"`
	MaxParametersHigh   int `json:"max_parameters_high" koanf:"max_parameters_high"`
	MaxNestingDepth     int `json:"max_nesting_depth" koanf:"max_nesting_depth"`
	MaxNestingHigh      int `json:"max_nesting_high" koanf:"max_nesting_high"`
}

// DefaultThresholds returns the standard detection limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LongMethodLines:     50,
		LongMethodHighLines: 100,
		MaxParameters:       5,
		MaxParametersHigh:   7,
		MaxNestingDepth:     4,
		MaxNestingHigh:      5,
	}
}

// Validate rejects threshold configurations that indicate caller misuse.
// This fails at configuration time, before any analysis runs.
func (t Thresholds) Validate() error {
	checks := []struct {
		name          string
		primary, high int
	}{
		{"long_method_lines", t.LongMethodLines, t.LongMethodHighLines},
		{"max_parameters", t.MaxParameters, t.MaxParametersHigh},
		{"max_nesting_depth", t.MaxNestingDepth, t.MaxNestingHigh},
	}
	for _, c := range checks {
		if c.primary <= 0 {
			return fmt.Errorf("threshold %s must be positive (got %d)", c.name, c.primary)
		}
		if c.high < c.primary {
			return fmt.Errorf("high ceiling for %s (%d) must not be below the threshold (%d)", c.name, c.high, c.primary)
		}
	}
	return nil
}

// FileFindings holds the ordered findings for one analyzed file.
type FileFindings struct {
	Path     string    `json:"path"`
	Language string    `json:"language"`
	Findings []Finding `json:"findings"`
}

// Summary provides aggregate statistics over a full analysis.
type Summary struct {
	TotalFindings          int `json:"total_findings"`
	LongMethodCount        int `json:"long_method_count"`
	TooManyParametersCount int `json:"too_many_parameters_count"`
	DeepNestingCount       int `json:"deep_nesting_count"`
	HighCount              int `json:"high_count"`
	MediumCount            int `json:"medium_count"`
	LowCount               int `json:"low_count"`
	FilesAnalyzed          int `json:"files_analyzed"`
	FilesFailed            int `json:"files_failed"`
	FunctionsAnalyzed      int `json:"functions_analyzed"`
}

// MetricSummary describes the distribution of one metric across all
// analyzed functions.
type MetricSummary struct {
	Mean float64 `json:"mean"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
	Max  float64 `json:"max"`
}

// Distribution summarizes metric distributions for the whole run.
type Distribution struct {
	LineSpan     MetricSummary `json:"line_span"`
	Parameters   MetricSummary `json:"parameters"`
	NestingDepth MetricSummary `json:"nesting_depth"`
}

// Analysis is the full result of a smell detection run.
type Analysis struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	Files        []FileFindings `json:"files"`
	Summary      Summary        `json:"summary"`
	Distribution Distribution   `json:"distribution"`
	Thresholds   Thresholds     `json:"thresholds"`
}

// NewAnalysis creates an initialized analysis result.
func NewAnalysis(thresholds Thresholds) *Analysis {
	return &Analysis{
		GeneratedAt: time.Now().UTC(),
		Files:       make([]FileFindings, 0),
		Thresholds:  thresholds,
	}
}

// AddFile appends a file's findings and updates the summary.
func (a *Analysis) AddFile(ff FileFindings) {
	a.Files = append(a.Files, ff)
	a.Summary.FilesAnalyzed++

	for _, f := range ff.Findings {
		a.Summary.TotalFindings++

		switch f.Type {
		case TypeLongMethod:
			a.Summary.LongMethodCount++
		case TypeTooManyParameters:
			a.Summary.TooManyParametersCount++
		case TypeDeepNesting:
			a.Summary.DeepNestingCount++
		}

		switch f.Severity {
		case SeverityHigh:
			a.Summary.HighCount++
		case SeverityMedium:
			a.Summary.MediumCount++
		case SeverityLow:
			a.Summary.LowCount++
		}
	}
}

// CountAtOrAbove returns how many findings have at least the given severity.
func (a *Analysis) CountAtOrAbove(min Severity) int {
	count := 0
	for _, ff := range a.Files {
		for _, f := range ff.Findings {
			if f.Severity.Weight() >= min.Weight() {
				count++
			}
		}
	}
	return count
}
