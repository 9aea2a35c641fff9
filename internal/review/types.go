package review

import (
	"github.com/dshills/prscore/internal/analyzer"
)

// FileResult is the outcome for one changed file. Additions, Deletions and
// Penalty are kept for renderers and are not part of the JSON report.
type FileResult struct {
	Filename  string           `json:"filename"`
	Issues    []analyzer.Issue `json:"issues"`
	Metrics   map[string]any   `json:"metrics"`
	Additions int              `json:"-"`
	Deletions int              `json:"-"`
	Penalty   int              `json:"-"`
}

// Report is the result of analysing one pull request. It carries no run
// identifiers or timings, so the same input always yields the same report.
type Report struct {
	Files      []FileResult `json:"files"`
	FinalScore int          `json:"final_score"`
	Penalty    int          `json:"penalty"`
}

// IssueCounts returns how many issues of each type the report holds.
func (r *Report) IssueCounts() map[analyzer.IssueType]int {
	counts := make(map[analyzer.IssueType]int)
	for _, f := range r.Files {
		for _, i := range f.Issues {
			counts[i.Type]++
		}
	}
	return counts
}

// TotalIssues returns the number of issues across all files.
func (r *Report) TotalIssues() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Issues)
	}
	return n
}

// MeetsMinimum reports whether the score is at least min. A non-positive
// min always passes.
func (r *Report) MeetsMinimum(min int) bool {
	return min <= 0 || r.FinalScore >= min
}
