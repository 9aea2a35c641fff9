package analyzer

import (
	"context"
	"fmt"

	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/lang"
	"github.com/dshills/prscore/internal/lint"
)

// Options configures a Set.
type Options struct {
	TodoScope TodoScope
	// Linter is run on source files. Nil disables the lint check.
	Linter lint.Linter
	// Registry detects source languages. Nil uses the built-in one.
	Registry *lang.Registry
}

// Set is the ordered list of checks for each kind of file.
type Set struct {
	registry *lang.Registry
	common   []Analyzer
	source   []Analyzer
	generic  []Analyzer
}

// NewSet builds the standard checks.
func NewSet(opts Options) *Set {
	reg := opts.Registry
	if reg == nil {
		reg = lang.DefaultRegistry()
	}
	source := []Analyzer{
		ComplexityAnalyzer{},
		DocstringChecker{},
		PrintUsageDetector{},
	}
	if opts.Linter != nil {
		source = append(source, LintRunner{Linter: opts.Linter})
	}
	return &Set{
		registry: reg,
		common:   []Analyzer{TodoScanner{Scope: opts.TodoScope}},
		source:   source,
		generic:  []Analyzer{LargeAdditionDetector{}, SecretScanner{}},
	}
}

// Input prepares the view of f every check receives.
func (s *Set) Input(f diff.FileChange) Input {
	return Input{
		File:  f,
		Added: diff.AddedCode(f.Patch),
		Lang:  s.registry.Detect(f.Filename),
	}
}

// For returns the checks that apply to in, in execution order.
func (s *Set) For(in Input) []Analyzer {
	out := append([]Analyzer(nil), s.common...)
	if in.Lang != nil {
		return append(out, s.source...)
	}
	return append(out, s.generic...)
}

// Run applies every applicable check to f and merges their results.
// Metrics is never nil.
func (s *Set) Run(ctx context.Context, f diff.FileChange) (Result, error) {
	in := s.Input(f)
	merged := Result{Issues: []Issue{}, Metrics: map[string]any{}}
	for _, a := range s.For(in) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res, err := a.Analyze(ctx, in)
		if err != nil {
			return Result{}, fmt.Errorf("%s check: %w", a.Name(), err)
		}
		merged.Issues = append(merged.Issues, res.Issues...)
		for k, v := range res.Metrics {
			merged.Metrics[k] = v
		}
	}
	return merged, nil
}
