package analyzer

import (
	"context"

	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/lang"
)

// IssueType names the kind of problem an issue reports.
type IssueType string

// Issue types.
const (
	TypeTodo          IssueType = "todo"
	TypeComplexity    IssueType = "complexity"
	TypeDocstring     IssueType = "docstring"
	TypePrint         IssueType = "print"
	TypeLint          IssueType = "pyflakes"
	TypeSecret        IssueType = "secret"
	TypeLargeAddition IssueType = "large_addition"
)

// AllTypes lists every issue type in check order.
var AllTypes = []IssueType{
	TypeTodo,
	TypeComplexity,
	TypeDocstring,
	TypePrint,
	TypeLint,
	TypeLargeAddition,
	TypeSecret,
}

// Metric keys.
const (
	MetricCyclomatic = "cyclomatic"
	MetricLint       = "pyflakes_messages"
)

// Issue is one flagged problem. Count is the occurrence count the penalty
// is computed from; it is not part of the rendered output.
type Issue struct {
	Type   IssueType `json:"type"`
	Detail string    `json:"detail"`
	Count  int       `json:"-"`
}

// Input is what a check sees of one file.
type Input struct {
	File  diff.FileChange
	Added string
	// Lang is nil when the file is not a recognised source file.
	Lang lang.Language
}

// Result is the output of one check.
type Result struct {
	Issues  []Issue
	Metrics map[string]any
}

// Analyzer is a single check.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, in Input) (Result, error)
}

func issue(t IssueType, count int, detail string) Result {
	return Result{Issues: []Issue{{Type: t, Detail: detail, Count: count}}}
}
