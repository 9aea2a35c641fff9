package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TodoScope selects the text the TODO scan reads.
type TodoScope string

// TODO scan scopes. ScopePatch reads the whole patch, removed and context
// lines included.
const (
	ScopePatch TodoScope = "patch"
	ScopeAdded TodoScope = "added"
)

// ParseTodoScope validates s. The empty string selects ScopePatch.
func ParseTodoScope(s string) (TodoScope, error) {
	switch TodoScope(s) {
	case "", ScopePatch:
		return ScopePatch, nil
	case ScopeAdded:
		return ScopeAdded, nil
	}
	return "", fmt.Errorf("invalid todo scope %q (valid: patch, added)", s)
}

// TodoScanner counts lines that mention TODO or FIXME.
type TodoScanner struct {
	Scope TodoScope
}

// Name implements Analyzer.
func (TodoScanner) Name() string { return string(TypeTodo) }

// Analyze implements Analyzer.
func (s TodoScanner) Analyze(_ context.Context, in Input) (Result, error) {
	text := in.File.Patch
	if s.Scope == ScopeAdded {
		text = in.Added
	}
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "TODO") || strings.Contains(line, "FIXME") {
			n++
		}
	}
	if n == 0 {
		return Result{}, nil
	}
	return issue(TypeTodo, n, fmt.Sprintf("%d TODO/FIXME found", n)), nil
}

// DefaultSecretKeywords are the substrings SecretScanner looks for.
var DefaultSecretKeywords = []string{"PRIVATE_KEY", "API_KEY", "SECRET", "TOKEN"}

// SecretScanner flags added text that mentions credential-like keywords.
// It is a plain substring match and reports one issue listing every
// keyword found.
type SecretScanner struct {
	Keywords []string
}

// Name implements Analyzer.
func (SecretScanner) Name() string { return string(TypeSecret) }

// Analyze implements Analyzer.
func (s SecretScanner) Analyze(_ context.Context, in Input) (Result, error) {
	keywords := s.Keywords
	if keywords == nil {
		keywords = DefaultSecretKeywords
	}
	var found []string
	for _, k := range keywords {
		if strings.Contains(in.Added, k) {
			found = append(found, k)
		}
	}
	if len(found) == 0 {
		return Result{}, nil
	}
	return issue(TypeSecret, 1, "Possible secrets found: "+strings.Join(found, ", ")), nil
}

// DefaultLargeAddition is the added-text length, in characters, above
// which a non-source file is flagged.
const DefaultLargeAddition = 2000

// LargeAdditionDetector flags non-source files with a large added body.
type LargeAdditionDetector struct {
	Limit int
}

// Name implements Analyzer.
func (LargeAdditionDetector) Name() string { return string(TypeLargeAddition) }

// Analyze implements Analyzer.
func (d LargeAdditionDetector) Analyze(_ context.Context, in Input) (Result, error) {
	limit := d.Limit
	if limit <= 0 {
		limit = DefaultLargeAddition
	}
	if utf8.RuneCountInString(in.Added) <= limit {
		return Result{}, nil
	}
	return issue(TypeLargeAddition, 1, "Large addition; consider splitting"), nil
}
