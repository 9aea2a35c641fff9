package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/prscore/internal/analyzer"
	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/review"
)

var (
	colorGood  = lipgloss.Color("#2CD7C7")
	colorWarn  = lipgloss.Color("#F4D03F")
	colorBad   = lipgloss.Color("#E74C3C")
	colorMuted = lipgloss.Color("#5C7A84")
)

type palette struct {
	plain bool
	title lipgloss.Style
	good  lipgloss.Style
	warn  lipgloss.Style
	bad   lipgloss.Style
	muted lipgloss.Style
	bold  lipgloss.Style
}

func newPalette(color bool) palette {
	return palette{
		plain: !color,
		title: lipgloss.NewStyle().Bold(true),
		good:  lipgloss.NewStyle().Bold(true).Foreground(colorGood),
		warn:  lipgloss.NewStyle().Bold(true).Foreground(colorWarn),
		bad:   lipgloss.NewStyle().Bold(true).Foreground(colorBad),
		muted: lipgloss.NewStyle().Foreground(colorMuted),
		bold:  lipgloss.NewStyle().Bold(true),
	}
}

func (p palette) render(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

func (p palette) score(score int) string {
	text := strconv.Itoa(score) + "/100"
	switch {
	case score >= 80:
		return p.render(p.good, text)
	case score >= 50:
		return p.render(p.warn, text)
	default:
		return p.render(p.bad, text)
	}
}

// TextWriter outputs a human-readable terminal report.
type TextWriter struct {
	opts Options
}

func (t *TextWriter) Write(w io.Writer, report *review.Report, pr diff.PullRequest) error {
	ew := &errWriter{w: w}
	p := newPalette(t.opts.Color)

	ew.printf("%s\n", p.render(p.title, "PR Quality Report: "+prLabel(pr)))
	if pr.Title != "" && pr.Title != diff.LocalTitle {
		ew.printf("Title: %s\n", pr.Title)
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Score: %s   Penalty: %d", p.score(report.FinalScore), report.Penalty)
	if t.opts.Profile != "" {
		ew.printf("   Profile: %s", t.opts.Profile)
	}
	ew.println("")
	ew.printf("Files: %d   Issues: %d\n", len(report.Files), report.TotalIssues())
	ew.println(strings.Repeat("─", 60))

	if len(report.Files) == 0 {
		ew.println("\nNo changed files.")
		return ew.err
	}

	for _, f := range report.Files {
		ew.printf("\n%s %s",
			p.render(p.bold, f.Filename),
			p.render(p.muted, "(+"+strconv.Itoa(f.Additions)+" -"+strconv.Itoa(f.Deletions)+")"))
		if f.Penalty > 0 {
			ew.printf("  %s", p.render(p.warn, "-"+strconv.Itoa(f.Penalty)))
		}
		ew.println("")
		if len(f.Issues) == 0 {
			ew.printf("  %s\n", p.render(p.good, "no issues"))
			continue
		}
		for _, i := range f.Issues {
			ew.printf("  %s %s\n", p.render(issueStyle(p, i.Type), "["+string(i.Type)+"]"), i.Detail)
		}
		if msgs, ok := f.Metrics[analyzer.MetricLint].([]string); ok {
			for _, m := range msgs {
				ew.printf("    %s\n", p.render(p.muted, m))
			}
		}
	}

	return ew.err
}

func issueStyle(p palette, t analyzer.IssueType) lipgloss.Style {
	switch t {
	case analyzer.TypeSecret:
		return p.bad
	case analyzer.TypeComplexity, analyzer.TypeLint, analyzer.TypeLargeAddition:
		return p.warn
	default:
		return p.muted
	}
}

func prLabel(pr diff.PullRequest) string {
	if pr.RepoName == "" || pr.RepoName == diff.LocalRepoName {
		return "local diff"
	}
	return pr.RepoName + "#" + strconv.Itoa(pr.Number)
}
