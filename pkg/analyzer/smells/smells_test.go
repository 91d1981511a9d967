package smells

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	toon "github.com/toon-format/toon-go"

	"github.com/Hazem-khriji/Code-smell-detector/internal/cache"
)

func TestAnalyzeTreeEmptySource(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	findings := a.AnalyzeTree(parseSource(t, ""))
	if len(findings) != 0 {
		t.Errorf("got %d findings for empty source, want 0", len(findings))
	}
}

func TestAnalyzeTreeIdempotent(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	result := parseSource(t, funcSpanning(60)+funcWithParams(8))
	first := a.AnalyzeTree(result)
	second := a.AnalyzeTree(result)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of the same tree produced different findings")
	}
}

func TestThresholdOptions(t *testing.T) {
	a, err := New(WithLongMethodThreshold(10))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	// 11 lines fires against the lowered threshold, 10 does not.
	if got := len(a.AnalyzeTree(parseSource(t, funcSpanning(11)))); got != 1 {
		t.Errorf("got %d findings for span 11, want 1", got)
	}
	if got := len(a.AnalyzeTree(parseSource(t, funcSpanning(10)))); got != 0 {
		t.Errorf("got %d findings for span 10, want 0", got)
	}
}

func TestNewRejectsInvalidThresholds(t *testing.T) {
	if _, err := New(WithLongMethodThreshold(0)); err == nil {
		t.Error("expected error for zero threshold")
	}
	if _, err := New(WithLongMethodThreshold(-5)); err == nil {
		t.Error("expected error for negative threshold")
	}
}

func TestThresholdsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Thresholds)
		wantErr bool
	}{
		{"defaults", func(*Thresholds) {}, false},
		{"zero lines", func(th *Thresholds) { th.LongMethodLines = 0 }, true},
		{"negative params", func(th *Thresholds) { th.MaxParameters = -1 }, true},
		{"high below primary", func(th *Thresholds) { th.MaxNestingHigh = 2 }, true},
		{"high equals primary", func(th *Thresholds) { th.MaxParametersHigh = th.MaxParameters }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)
			err := th.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"low", "medium", "high"} {
		if _, err := ParseSeverity(s); err != nil {
			t.Errorf("ParseSeverity(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseSeverity("critical"); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func TestSeverityWeightOrdering(t *testing.T) {
	if !(SeverityHigh.Weight() > SeverityMedium.Weight() && SeverityMedium.Weight() > SeverityLow.Weight()) {
		t.Error("severity weights are not strictly ordered")
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.py")
	if err := os.WriteFile(path, []byte(funcSpanning(60)), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	ff, err := a.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if ff.Path != path {
		t.Errorf("path = %q, want %q", ff.Path, path)
	}
	if ff.Language != "python" {
		t.Errorf("language = %q, want python", ff.Language)
	}
	if len(ff.Findings) != 1 || ff.Findings[0].Type != TypeLongMethod {
		t.Errorf("unexpected findings: %+v", ff.Findings)
	}
}

func TestAnalyzeProject(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	clean := writeFile("clean.py", "def ok(a):\n    return a\n")
	smelly := writeFile("smelly.py", funcWithParams(8))
	bad := writeFile("notes.txt", "not source")

	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	analysis, err := a.AnalyzeProject([]string{smelly, clean, bad}, nil)
	if err != nil {
		t.Fatalf("AnalyzeProject failed: %v", err)
	}

	if analysis.Summary.FilesAnalyzed != 2 {
		t.Errorf("files analyzed = %d, want 2", analysis.Summary.FilesAnalyzed)
	}
	if analysis.Summary.FilesFailed != 1 {
		t.Errorf("files failed = %d, want 1", analysis.Summary.FilesFailed)
	}
	if analysis.Summary.FunctionsAnalyzed != 2 {
		t.Errorf("functions analyzed = %d, want 2", analysis.Summary.FunctionsAnalyzed)
	}
	if analysis.Summary.TotalFindings != 1 {
		t.Errorf("total findings = %d, want 1", analysis.Summary.TotalFindings)
	}
	if analysis.Summary.HighCount != 1 {
		t.Errorf("high count = %d, want 1", analysis.Summary.HighCount)
	}

	// Results are sorted by path regardless of worker completion order.
	if analysis.Files[0].Path != clean || analysis.Files[1].Path != smelly {
		t.Errorf("files not sorted by path: %q, %q", analysis.Files[0].Path, analysis.Files[1].Path)
	}

	// Both functions had 8 and 1 parameters; the distribution reflects that.
	if analysis.Distribution.Parameters.Max != 8 {
		t.Errorf("parameters max = %v, want 8", analysis.Distribution.Parameters.Max)
	}
	if analysis.Distribution.Parameters.Mean != 4.5 {
		t.Errorf("parameters mean = %v, want 4.5", analysis.Distribution.Parameters.Mean)
	}
}

func TestAnalyzeProjectCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.py")
	if err := os.WriteFile(path, []byte(funcSpanning(60)), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := cache.New(filepath.Join(dir, "cache"), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	a, err := New(WithCache(c))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	first, err := a.AnalyzeProject([]string{path}, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.AnalyzeProject([]string{path}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// The cached second run must reproduce the first exactly, including
	// the metric samples that feed the distribution.
	if !reflect.DeepEqual(first.Files, second.Files) {
		t.Error("cached findings differ from fresh analysis")
	}
	if !reflect.DeepEqual(first.Distribution, second.Distribution) {
		t.Error("cached distribution differs from fresh analysis")
	}
}

func TestCacheScopedToConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.py")
	if err := os.WriteFile(path, []byte(funcSpanning(60)), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := cache.New(filepath.Join(dir, "cache"), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	analyzeWith := func(th Thresholds) int {
		t.Helper()
		a, err := New(WithThresholds(th), WithCache(c))
		if err != nil {
			t.Fatal(err)
		}
		defer a.Close()
		analysis, err := a.AnalyzeProject([]string{path}, nil)
		if err != nil {
			t.Fatal(err)
		}
		return analysis.Summary.TotalFindings
	}

	if got := analyzeWith(DefaultThresholds()); got != 1 {
		t.Fatalf("default thresholds: %d findings, want 1", got)
	}

	// Same file, same cache, raised thresholds. Entries from the first run
	// must not be served for a different configuration.
	relaxed := DefaultThresholds()
	relaxed.LongMethodLines = 500
	relaxed.LongMethodHighLines = 600
	if got := analyzeWith(relaxed); got != 0 {
		t.Errorf("raised thresholds: %d findings, want 0", got)
	}

	// The original configuration still finds its own cached entry.
	if got := analyzeWith(DefaultThresholds()); got != 1 {
		t.Errorf("default thresholds again: %d findings, want 1", got)
	}
}

func TestRaisingThresholdOnlyRemovesFindings(t *testing.T) {
	source := funcSpanning(60) + "\n" + strings.Replace(funcSpanning(120), "def f", "def g", 1)

	analyze := func(th Thresholds) []Finding {
		t.Helper()
		a, err := New(WithThresholds(th))
		if err != nil {
			t.Fatal(err)
		}
		defer a.Close()
		return a.AnalyzeTree(parseSource(t, source))
	}

	strict := analyze(DefaultThresholds())

	relaxed := DefaultThresholds()
	relaxed.LongMethodLines = 100
	relaxed.LongMethodHighLines = 150
	loose := analyze(relaxed)

	if len(loose) >= len(strict) {
		t.Fatalf("raised threshold produced %d findings, strict run had %d", len(loose), len(strict))
	}

	// Every finding under the raised threshold must also exist under the
	// stricter one. Raising a limit can only remove findings, never add.
	seen := make(map[string]bool)
	for _, f := range strict {
		seen[string(f.Type)+"/"+f.Function] = true
	}
	for _, f := range loose {
		if !seen[string(f.Type)+"/"+f.Function] {
			t.Errorf("finding %s on %s appeared only under the raised threshold", f.Type, f.Function)
		}
	}
}

func TestAnalysisMarshalsTOON(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	analysis := NewAnalysis(DefaultThresholds())
	analysis.AddFile(FileFindings{
		Path:     "smelly.py",
		Language: "python",
		Findings: a.AnalyzeTree(parseSource(t, funcWithParams(8))),
	})
	if analysis.Summary.TotalFindings == 0 {
		t.Fatal("expected at least one finding")
	}

	out, err := toon.Marshal(analysis, toon.WithIndent(2))
	if err != nil {
		t.Fatalf("TOON marshal failed: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "too_many_parameters") {
		t.Errorf("TOON output missing finding type:\n%s", text)
	}
	if !strings.Contains(text, "high") {
		t.Errorf("TOON output missing severity:\n%s", text)
	}
}

func TestCountAtOrAbove(t *testing.T) {
	analysis := NewAnalysis(DefaultThresholds())
	analysis.AddFile(FileFindings{
		Path: "a.py",
		Findings: []Finding{
			{Type: TypeLongMethod, Severity: SeverityHigh},
			{Type: TypeDeepNesting, Severity: SeverityMedium},
			{Type: TypeTooManyParameters, Severity: SeverityMedium},
		},
	})

	if got := analysis.CountAtOrAbove(SeverityHigh); got != 1 {
		t.Errorf("CountAtOrAbove(high) = %d, want 1", got)
	}
	if got := analysis.CountAtOrAbove(SeverityMedium); got != 3 {
		t.Errorf("CountAtOrAbove(medium) = %d, want 3", got)
	}
	if got := analysis.CountAtOrAbove(SeverityLow); got != 3 {
		t.Errorf("CountAtOrAbove(low) = %d, want 3", got)
	}
}

func TestAddFileSummaryCounts(t *testing.T) {
	analysis := NewAnalysis(DefaultThresholds())
	analysis.AddFile(FileFindings{
		Path: "a.py",
		Findings: []Finding{
			{Type: TypeLongMethod, Severity: SeverityHigh},
			{Type: TypeLongMethod, Severity: SeverityMedium},
			{Type: TypeDeepNesting, Severity: SeverityMedium},
		},
	})
	analysis.AddFile(FileFindings{Path: "b.py"})

	s := analysis.Summary
	if s.FilesAnalyzed != 2 {
		t.Errorf("files analyzed = %d, want 2", s.FilesAnalyzed)
	}
	if s.TotalFindings != 3 {
		t.Errorf("total findings = %d, want 3", s.TotalFindings)
	}
	if s.LongMethodCount != 2 || s.DeepNestingCount != 1 || s.TooManyParametersCount != 0 {
		t.Errorf("per-type counts wrong: %+v", s)
	}
	if s.HighCount != 1 || s.MediumCount != 2 {
		t.Errorf("per-severity counts wrong: %+v", s)
	}
}
