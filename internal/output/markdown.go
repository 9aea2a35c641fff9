package output

import (
	"io"
	"strings"

	"github.com/dshills/prscore/internal/analyzer"
	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/redact"
	"github.com/dshills/prscore/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct {
	opts Options
}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report, pr diff.PullRequest) error {
	ew := &errWriter{w: w}

	ew.printf("## PR Quality Report: %s\n\n", prLabel(pr))
	if pr.Title != "" && pr.Title != diff.LocalTitle {
		ew.printf("**%s**\n\n", mdEscape(pr.Title))
	}

	ew.printf("| Score | Penalty | Files | Issues |\n")
	ew.printf("|-------|---------|-------|--------|\n")
	ew.printf("| %s %d/100 | %d | %d | %d |\n\n",
		scoreIcon(report.FinalScore), report.FinalScore, report.Penalty, len(report.Files), report.TotalIssues())

	if counts := report.IssueCounts(); len(counts) > 0 {
		ew.printf("| Issue type | Count |\n")
		ew.printf("|------------|-------|\n")
		for _, t := range analyzer.AllTypes {
			if n := counts[t]; n > 0 {
				ew.printf("| `%s` | %d |\n", t, n)
			}
		}
		ew.println("")
	}

	if report.TotalIssues() == 0 {
		ew.println("No issues found. :white_check_mark:")
	}

	for _, f := range report.Files {
		if len(f.Issues) == 0 && !m.opts.ShowPatch {
			continue
		}
		ew.printf("### `%s` (+%d -%d)\n\n", f.Filename, f.Additions, f.Deletions)
		for _, i := range f.Issues {
			ew.printf("- **%s**: %s\n", i.Type, mdEscape(i.Detail))
		}
		if msgs, ok := f.Metrics[analyzer.MetricLint].([]string); ok && len(msgs) > 0 {
			ew.printf("\n<details>\n<summary>pyflakes output (%d)</summary>\n\n```\n%s\n```\n\n</details>\n",
				len(msgs), strings.Join(msgs, "\n"))
		}
		if m.opts.ShowPatch {
			if patch := patchFor(pr, f.Filename); patch != "" {
				ew.printf("\n<details>\n<summary>patch</summary>\n\n```diff\n%s\n```\n\n</details>\n",
					strings.TrimRight(redact.Patch(patch, f.Filename, m.opts.HidePaths), "\n"))
			}
		}
		ew.println("")
	}

	if m.opts.Profile != "" {
		ew.printf("*Scored with the `%s` profile.*\n", m.opts.Profile)
	}
	return ew.err
}

func scoreIcon(score int) string {
	switch {
	case score >= 80:
		return ":green_circle:"
	case score >= 50:
		return ":orange_circle:"
	default:
		return ":red_circle:"
	}
}

// mdEscape keeps table and emphasis characters in issue text literal.
func mdEscape(s string) string {
	r := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")
	return r.Replace(s)
}
