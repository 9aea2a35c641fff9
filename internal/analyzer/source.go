package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/prscore/internal/lang"
	"github.com/dshills/prscore/internal/lint"
)

// Complexity thresholds.
const (
	ComplexityMeanLimit = 6
	ComplexityHigh      = 10
)

// BlockComplexity is one entry of the cyclomatic metric.
type BlockComplexity struct {
	Name       string `json:"name"`
	Complexity int    `json:"complexity"`
}

// CyclomaticMetric is stored under MetricCyclomatic.
type CyclomaticMetric struct {
	Avg       float64           `json:"avg"`
	HighCount int               `json:"high_count"`
	Details   []BlockComplexity `json:"details"`
}

// ComplexityAnalyzer scores the added code's blocks and flags a high mean.
type ComplexityAnalyzer struct{}

// Name implements Analyzer.
func (ComplexityAnalyzer) Name() string { return string(TypeComplexity) }

// Analyze implements Analyzer.
func (ComplexityAnalyzer) Analyze(ctx context.Context, in Input) (Result, error) {
	if in.Lang == nil {
		return Result{}, nil
	}
	blocks, err := in.Lang.Blocks(ctx, []byte(in.Added))
	if errors.Is(err, lang.ErrUnparseable) {
		slog.Debug("complexity skipped: fragment does not parse", slog.String("file", in.File.Filename))
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("complexity: %w", err)
	}
	if len(blocks) == 0 {
		return Result{}, nil
	}

	m := CyclomaticMetric{Details: make([]BlockComplexity, 0, len(blocks))}
	total := 0
	for _, b := range blocks {
		total += b.Complexity
		if b.Complexity >= ComplexityHigh {
			m.HighCount++
		}
		m.Details = append(m.Details, BlockComplexity{Name: b.Name, Complexity: b.Complexity})
	}
	m.Avg = float64(total) / float64(len(blocks))

	res := Result{Metrics: map[string]any{MetricCyclomatic: m}}
	if m.Avg > ComplexityMeanLimit {
		res.Issues = []Issue{{
			Type:   TypeComplexity,
			Detail: fmt.Sprintf("avg complexity %.1f, high count %d", m.Avg, m.HighCount),
			Count:  int(m.Avg),
		}}
	}
	return res, nil
}

// DocstringChecker counts definitions in the added code that lack
// documentation.
type DocstringChecker struct{}

// Name implements Analyzer.
func (DocstringChecker) Name() string { return string(TypeDocstring) }

// Analyze implements Analyzer.
func (DocstringChecker) Analyze(ctx context.Context, in Input) (Result, error) {
	n, known, err := MissingDocstrings(ctx, in)
	if err != nil {
		return Result{}, err
	}
	if !known || n == 0 {
		return Result{}, nil
	}
	return issue(TypeDocstring, n, fmt.Sprintf("%d missing docstrings/stubs", n)), nil
}

// MissingDocstrings reports the number of undocumented definitions in the
// added code. known is false when the fragment could not be parsed, which
// is different from zero missing.
func MissingDocstrings(ctx context.Context, in Input) (n int, known bool, err error) {
	if in.Lang == nil {
		return 0, false, nil
	}
	n, err = in.Lang.MissingDocstrings(ctx, []byte(in.Added))
	if errors.Is(err, lang.ErrUnparseable) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("docstrings: %w", err)
	}
	return n, true, nil
}

// PrintUsageDetector flags console printing in added code.
type PrintUsageDetector struct{}

// Name implements Analyzer.
func (PrintUsageDetector) Name() string { return string(TypePrint) }

// Analyze implements Analyzer.
func (PrintUsageDetector) Analyze(_ context.Context, in Input) (Result, error) {
	if in.Lang == nil || in.Lang.PrintCall() == nil {
		return Result{}, nil
	}
	if !in.Lang.PrintCall().MatchString(in.Added) {
		return Result{}, nil
	}
	return issue(TypePrint, 1, "uses print() for logging; prefer logging module"), nil
}

// LintRunner runs a Linter over the added code. A linter that is missing,
// times out or fails without output counts as zero findings.
type LintRunner struct {
	Linter lint.Linter
}

// Name implements Analyzer.
func (LintRunner) Name() string { return string(TypeLint) }

// Analyze implements Analyzer.
func (r LintRunner) Analyze(ctx context.Context, in Input) (Result, error) {
	if r.Linter == nil || in.Lang == nil {
		return Result{}, nil
	}
	lines, err := r.Linter.Lint(ctx, in.File.Filename, []byte(in.Added))
	if lint.Absorbed(err) {
		slog.Debug("lint skipped",
			slog.String("file", in.File.Filename),
			slog.String("reason", err.Error()),
		)
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("lint: %w", err)
	}
	if len(lines) == 0 {
		return Result{}, nil
	}
	res := issue(TypeLint, len(lines), fmt.Sprintf("%d pyflakes warnings", len(lines)))
	res.Metrics = map[string]any{MetricLint: lines}
	return res, nil
}
