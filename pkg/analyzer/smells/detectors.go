package smells

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Hazem-khriji/Code-smell-detector/pkg/metrics"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/parser"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/query"
)

// Detector inspects one definition node and produces zero or one finding.
// Detectors hold no mutable state and never modify the tree, so the set of
// findings is independent of detector order even though the output sequence
// follows registration order.
type Detector interface {
	// Type identifies the smell this detector reports.
	Type() Type

	// Detect returns a finding when the definition violates the detector's
	// threshold, nil otherwise.
	Detect(def *sitter.Node, source []byte, lang parser.Language) *Finding
}

// newFinding fills the location and name fields shared by all detectors.
func newFinding(t Type, sev Severity, def *sitter.Node, source []byte, lang parser.Language, msg string, details map[string]int) *Finding {
	return &Finding{
		Type:     t,
		Severity: sev,
		Line:     int(def.StartPoint().Row) + 1,
		Column:   int(def.StartPoint().Column),
		Function: query.Name(def, source, lang),
		Message:  msg,
		Details:  details,
	}
}

// severityAbove maps a measured value to medium or high using the
// detector's high ceiling. Callers only invoke it past the primary
// threshold, so low never occurs here.
func severityAbove(value, high int) Severity {
	if value > high {
		return SeverityHigh
	}
	return SeverityMedium
}

// LongMethodDetector flags functions whose line span exceeds a limit.
type LongMethodDetector struct {
	Limit int
	High  int
}

func (d LongMethodDetector) Type() Type { return TypeLongMethod }

func (d LongMethodDetector) Detect(def *sitter.Node, source []byte, lang parser.Language) *Finding {
	lines := metrics.LineSpan(def)
	if lines <= d.Limit {
		return nil
	}
	return newFinding(TypeLongMethod, severityAbove(lines, d.High), def, source, lang,
		fmt.Sprintf("Function is %d lines long (threshold: %d)", lines, d.Limit),
		map[string]int{"line_count": lines, "threshold": d.Limit})
}

// TooManyParametersDetector flags functions with too many ordinary parameters.
type TooManyParametersDetector struct {
	Limit int
	High  int
}

func (d TooManyParametersDetector) Type() Type { return TypeTooManyParameters }

func (d TooManyParametersDetector) Detect(def *sitter.Node, source []byte, lang parser.Language) *Finding {
	params := metrics.ParameterCount(def, lang)
	if params <= d.Limit {
		return nil
	}
	return newFinding(TypeTooManyParameters, severityAbove(params, d.High), def, source, lang,
		fmt.Sprintf("Function has %d parameters (threshold: %d)", params, d.Limit),
		map[string]int{"param_count": params, "threshold": d.Limit})
}

// DeepNestingDetector flags functions whose control flow nests too deeply.
type DeepNestingDetector struct {
	Limit   int
	High    int
	Nesting metrics.NestingOptions
}

func (d DeepNestingDetector) Type() Type { return TypeDeepNesting }

func (d DeepNestingDetector) Detect(def *sitter.Node, source []byte, lang parser.Language) *Finding {
	depth := metrics.MaxNestingDepth(def, lang, d.Nesting)
	if depth <= d.Limit {
		return nil
	}
	return newFinding(TypeDeepNesting, severityAbove(depth, d.High), def, source, lang,
		fmt.Sprintf("Function has nesting depth of %d (threshold: %d)", depth, d.Limit),
		map[string]int{"nesting_depth": depth, "threshold": d.Limit})
}
