// Package smells detects structural code smells (long methods, excessive
// parameters, deep nesting) in parsed syntax trees and classifies them
// into severity-ranked findings.
package smells

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/Hazem-khriji/Code-smell-detector/internal/cache"
	"github.com/Hazem-khriji/Code-smell-detector/internal/fileproc"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/metrics"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/parser"
	"github.com/Hazem-khriji/Code-smell-detector/pkg/query"
)

// Analyzer runs the registered detector set over every function definition
// in a tree. Tree analysis itself is pure and deterministic; the analyzer
// only carries configuration plus a parser for single-file convenience.
type Analyzer struct {
	parser     *parser.Parser
	thresholds Thresholds
	nesting    metrics.NestingOptions
	detectors  []Detector
	cache      *cache.Cache
	cacheSalt  string
}

// Option is a functional option for configuring an Analyzer.
type Option func(*Analyzer)

// WithThresholds sets all detection thresholds at once.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) { a.thresholds = t }
}

// WithLongMethodThreshold sets the line-span threshold.
func WithLongMethodThreshold(lines int) Option {
	return func(a *Analyzer) { a.thresholds.LongMethodLines = lines }
}

// WithMaxParameters sets the parameter-count threshold.
func WithMaxParameters(count int) Option {
	return func(a *Analyzer) { a.thresholds.MaxParameters = count }
}

// WithMaxNestingDepth sets the nesting-depth threshold.
func WithMaxNestingDepth(depth int) Option {
	return func(a *Analyzer) { a.thresholds.MaxNestingDepth = depth }
}

// WithNestedDefinitionReset excludes nested function and class bodies from
// the enclosing function's nesting depth.
func WithNestedDefinitionReset(reset bool) Option {
	return func(a *Analyzer) { a.nesting.ResetNestedDefinitions = reset }
}

// WithDetector registers an additional detector after the built-in set.
func WithDetector(d Detector) Option {
	return func(a *Analyzer) { a.detectors = append(a.detectors, d) }
}

// WithCache enables per-file result caching keyed by content hash.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// New creates an analyzer with the built-in detectors registered in fixed
// order: long_method, too_many_parameters, deep_nesting, then any extras in
// registration order. Invalid thresholds are rejected here, before any
// analysis runs.
func New(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		parser:     parser.New(),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.thresholds.Validate(); err != nil {
		return nil, err
	}

	t := a.thresholds
	builtin := []Detector{
		LongMethodDetector{Limit: t.LongMethodLines, High: t.LongMethodHighLines},
		TooManyParametersDetector{Limit: t.MaxParameters, High: t.MaxParametersHigh},
		DeepNestingDetector{Limit: t.MaxNestingDepth, High: t.MaxNestingHigh, Nesting: a.nesting},
	}
	a.detectors = append(builtin, a.detectors...)

	// Cached results are only valid for the configuration that produced
	// them, so the effective settings become part of every cache key.
	salt, err := json.Marshal(struct {
		Thresholds Thresholds             `json:"thresholds"`
		Nesting    metrics.NestingOptions `json:"nesting"`
	}{a.thresholds, a.nesting})
	if err != nil {
		return nil, err
	}
	a.cacheSalt = cache.HashBytes(salt)

	return a, nil
}

// cacheKey scopes a file's cache entry to the analyzer configuration.
// Runs with different thresholds or nesting options never share entries.
func (a *Analyzer) cacheKey(path string) string {
	return path + "|" + a.cacheSalt
}

// Thresholds returns the analyzer's effective thresholds.
func (a *Analyzer) Thresholds() Thresholds {
	return a.thresholds
}

// AnalyzeTree runs every detector over every function definition in the
// tree, including nested and class-member functions. Findings preserve
// (definition order, detector order). Never fails for a structurally valid
// tree; incomplete nodes degrade via the query-layer fallbacks.
func (a *Analyzer) AnalyzeTree(result *parser.ParseResult) []Finding {
	return a.analyzeResult(result).Findings
}

// fileResult carries one file's findings plus the raw metric samples that
// feed the run-level distribution summary. Serialized as the cache entry.
type fileResult struct {
	FileFindings
	Spans     []float64 `json:"spans"`
	Params    []float64 `json:"params"`
	Depths    []float64 `json:"depths"`
	Functions int       `json:"functions"`
}

func (a *Analyzer) analyzeResult(result *parser.ParseResult) fileResult {
	fr := fileResult{
		FileFindings: FileFindings{
			Path:     result.Path,
			Language: string(result.Language),
			Findings: make([]Finding, 0),
		},
	}

	defs := query.Definitions(result.Tree.RootNode(), result.Source, result.Language, query.KindFunction)
	for _, def := range defs {
		for _, d := range a.detectors {
			if f := d.Detect(def, result.Source, result.Language); f != nil {
				fr.Findings = append(fr.Findings, *f)
			}
		}

		fr.Spans = append(fr.Spans, float64(metrics.LineSpan(def)))
		fr.Params = append(fr.Params, float64(metrics.ParameterCount(def, result.Language)))
		fr.Depths = append(fr.Depths, float64(metrics.MaxNestingDepth(def, result.Language, a.nesting)))
		fr.Functions++
	}

	return fr
}

// AnalyzeFile parses and analyzes a single file. A parse failure aborts
// that unit only; the caller decides whether to continue with other files.
func (a *Analyzer) AnalyzeFile(path string) (FileFindings, error) {
	fr, err := a.analyzeFileWith(a.parser, path)
	if err != nil {
		return FileFindings{}, err
	}
	return fr.FileFindings, nil
}

func (a *Analyzer) analyzeFileWith(psr *parser.Parser, path string) (fileResult, error) {
	if a.cache != nil {
		if hash, err := cache.HashFile(path); err == nil {
			key := a.cacheKey(path)
			if data, ok := a.cache.GetWithHash(key, hash); ok {
				var fr fileResult
				if err := json.Unmarshal(data, &fr); err == nil {
					return fr, nil
				}
			}

			result, err := psr.ParseFile(path)
			if err != nil {
				return fileResult{}, err
			}
			fr := a.analyzeResult(result)
			if data, err := json.Marshal(fr); err == nil {
				_ = a.cache.SetWithHash(key, hash, data)
			}
			return fr, nil
		}
	}

	result, err := psr.ParseFile(path)
	if err != nil {
		return fileResult{}, err
	}
	return a.analyzeResult(result), nil
}

// AnalyzeProject analyzes all files in parallel and aggregates the results.
// Each file is independent: failures are counted and skipped, never
// aborting the run.
func (a *Analyzer) AnalyzeProject(files []string, onProgress fileproc.ProgressFunc) (*Analysis, error) {
	var failed int
	var mu sync.Mutex

	results := fileproc.MapFilesN(files, 0, func(psr *parser.Parser, path string) (fileResult, error) {
		return a.analyzeFileWith(psr, path)
	}, onProgress, func(path string, err error) {
		mu.Lock()
		failed++
		mu.Unlock()
	})

	// Worker completion order is arbitrary; sort for a deterministic report.
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	analysis := NewAnalysis(a.thresholds)
	analysis.Summary.FilesFailed = failed

	var spans, params, depths []float64
	for _, fr := range results {
		analysis.AddFile(fr.FileFindings)
		analysis.Summary.FunctionsAnalyzed += fr.Functions
		spans = append(spans, fr.Spans...)
		params = append(params, fr.Params...)
		depths = append(depths, fr.Depths...)
	}

	analysis.Distribution = Distribution{
		LineSpan:     summarize(spans),
		Parameters:   summarize(params),
		NestingDepth: summarize(depths),
	}

	return analysis, nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}
