package review

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/prscore/internal/analyzer"
	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/scoring"
)

// DefaultConcurrency is the number of files analysed at once.
const DefaultConcurrency = 4

// Engine runs the analyzer set over every file of a pull request and
// scores the result.
type Engine struct {
	set         *analyzer.Set
	policy      scoring.Policy
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency bounds parallel file analysis. Values below 1 keep the
// default.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewEngine returns an engine using set and policy.
func NewEngine(set *analyzer.Set, policy scoring.Policy, opts ...Option) *Engine {
	e := &Engine{
		set:         set,
		policy:      policy,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the scoring policy the engine applies.
func (e *Engine) Policy() scoring.Policy {
	return e.policy
}

// Analyze produces the report for pr. Files are analysed concurrently but
// the report lists them in input order. If any file fails unexpectedly
// the error of the earliest such file is returned and no report is built.
func (e *Engine) Analyze(ctx context.Context, pr diff.PullRequest) (*Report, error) {
	results := make([]FileResult, len(pr.Files))
	errs := make([]error, len(pr.Files))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, f := range pr.Files {
		g.Go(func() error {
			res, err := e.set.Run(ctx, f)
			if err != nil {
				errs[i] = fmt.Errorf("analyzing %s: %w", f.Filename, err)
				return errs[i]
			}
			results[i] = FileResult{
				Filename:  f.Filename,
				Issues:    res.Issues,
				Metrics:   res.Metrics,
				Additions: f.Additions,
				Deletions: f.Deletions,
				Penalty:   e.policy.FilePenalty(res.Issues),
			}
			slog.Debug("file analyzed",
				slog.String("file", f.Filename),
				slog.Int("issues", len(res.Issues)),
				slog.Int("penalty", results[i].Penalty),
			)
			return nil
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	report := &Report{Files: results}
	for _, r := range results {
		report.Penalty += r.Penalty
	}
	report.FinalScore = scoring.Score(report.Penalty)

	slog.Debug("analysis complete",
		slog.String("repo", pr.RepoName),
		slog.Int("pr", pr.Number),
		slog.Int("files", len(results)),
		slog.Int("penalty", report.Penalty),
		slog.Int("score", report.FinalScore),
	)
	return report, nil
}
