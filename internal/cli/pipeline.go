package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dshills/prscore/internal/analyzer"
	"github.com/dshills/prscore/internal/cache"
	"github.com/dshills/prscore/internal/config"
	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/lint"
	"github.com/dshills/prscore/internal/output"
	"github.com/dshills/prscore/internal/review"
	"github.com/dshills/prscore/internal/scoring"
)

// errUsage marks configuration problems that map to ExitUsageError.
var errUsage = errors.New("usage")

// buildEngine assembles linter, analyzer set and scoring policy from cfg.
func buildEngine(cfg config.Config) (*review.Engine, error) {
	policy, err := scoring.Resolve(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	scope, err := analyzer.ParseTodoScope(cfg.TodoScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	var linter lint.Linter
	if cfg.Lint.Enabled {
		el := lint.NewExecLinter(cfg.Lint.Command,
			lint.WithArgs(cfg.Lint.Args...),
			lint.WithTimeout(time.Duration(cfg.Lint.TimeoutSeconds)*time.Second),
		)
		if !el.Available() {
			slog.Warn("linter not found on PATH; lint check will report nothing",
				slog.String("command", cfg.Lint.Command))
		}
		c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			slog.Warn("lint cache unavailable", slog.String("error", err.Error()))
			c = nil
		}
		linter = lint.NewCachedLinter(el, c)
	}

	set := analyzer.NewSet(analyzer.Options{TodoScope: scope, Linter: linter})
	return review.NewEngine(set, policy, review.WithConcurrency(cfg.Concurrency)), nil
}

func outputOptions(cfg config.Config, profile string) output.Options {
	return output.Options{
		Color:     !flagNoColor,
		ShowPatch: cfg.ShowPatch,
		HidePaths: cfg.RedactPaths,
		Profile:   profile,
		Version:   version,
	}
}

// runScoring scores pr, writes the report and sets exitCode. It returns
// the report and the name of the scoring profile, or a nil report when a
// failure was already reported.
func runScoring(ctx context.Context, pr diff.PullRequest, cfg config.Config) (*review.Report, string) {
	engine, err := buildEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return nil, ""
	}

	slog.Debug("scoring",
		slog.String("repo", pr.RepoName),
		slog.Int("files", len(pr.Files)),
		slog.String("profile", engine.Policy().Name()),
	)

	report, err := engine.Analyze(ctx, pr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, ""
	}

	opts := outputOptions(cfg, engine.Policy().Name())
	if err := output.WriteReport(report, pr, cfg.Format, flagOut, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, ""
	}

	if !report.MeetsMinimum(cfg.MinScore) {
		fmt.Fprintf(os.Stderr, "Score %d is below the minimum of %d\n", report.FinalScore, cfg.MinScore)
		exitCode = ExitBelowMinimum
	}
	return report, engine.Policy().Name()
}

// renderMarkdown renders the report as a pull request comment body.
func renderMarkdown(report *review.Report, pr diff.PullRequest, cfg config.Config, profile string) (string, error) {
	opts := outputOptions(cfg, profile)
	w, err := output.GetWriter("markdown", opts)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := w.Write(&buf, report, pr); err != nil {
		return "", err
	}
	return buf.String(), nil
}
