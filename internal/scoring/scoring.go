package scoring

import (
	"sort"

	"github.com/dshills/prscore/internal/analyzer"
)

// MaxScore is the score of a change with no penalty.
const MaxScore = 100

// Rule is the weight and per-file cap for one issue type.
type Rule struct {
	Weight int `yaml:"weight" json:"weight" validate:"gte=0"`
	Cap    int `yaml:"cap" json:"cap" validate:"gte=0"`
}

// Policy maps issue types to rules. The zero value penalises nothing.
type Policy struct {
	name  string
	rules map[analyzer.IssueType]Rule
}

// NewPolicy copies rules into a new Policy.
func NewPolicy(name string, rules map[analyzer.IssueType]Rule) Policy {
	cp := make(map[analyzer.IssueType]Rule, len(rules))
	for k, v := range rules {
		cp[k] = v
	}
	return Policy{name: name, rules: cp}
}

// Name returns the profile name the policy was built from.
func (p Policy) Name() string { return p.name }

// Rule returns the rule for t.
func (p Policy) Rule(t analyzer.IssueType) (Rule, bool) {
	r, ok := p.rules[t]
	return r, ok
}

// Types returns the issue types with a rule, sorted.
func (p Policy) Types() []analyzer.IssueType {
	out := make([]analyzer.IssueType, 0, len(p.rules))
	for t := range p.rules {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Penalty is min(weight*n, cap) for t. Unknown types and non-positive
// counts cost nothing.
func (p Policy) Penalty(t analyzer.IssueType, n int) int {
	r, ok := p.rules[t]
	if !ok || n <= 0 {
		return 0
	}
	return min(r.Weight*n, r.Cap)
}

// FilePenalty sums the penalty of one file's issues. Counts of the same
// type are added before the cap is applied, so a type never costs more
// than its cap within a file.
func (p Policy) FilePenalty(issues []analyzer.Issue) int {
	counts := make(map[analyzer.IssueType]int)
	for _, i := range issues {
		counts[i.Type] += i.Count
	}
	total := 0
	for t, n := range counts {
		total += p.Penalty(t, n)
	}
	return total
}

// Score converts a total penalty into a score in [0, MaxScore].
func Score(penalty int) int {
	if penalty < 0 {
		penalty = 0
	}
	return max(0, MaxScore-penalty)
}
