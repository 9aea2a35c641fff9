package lang

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
)

// ErrUnparseable is returned when a fragment is not valid source for the
// language. Added-code fragments often are not.
var ErrUnparseable = errors.New("fragment does not parse")

// Block is one unit that receives a complexity score: a function, a
// method, or a class.
type Block struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Line       int    `json:"line"`
	Complexity int    `json:"complexity"`
}

// Block kinds.
const (
	KindFunction = "function"
	KindMethod   = "method"
	KindClass    = "class"
)

// Language is the set of structural checks available for one language.
type Language interface {
	// Name returns the canonical language name, e.g. "python".
	Name() string
	// Extensions returns the file extensions, with leading dot, that
	// select this language.
	Extensions() []string
	// Blocks returns every scored block in source order.
	Blocks(ctx context.Context, src []byte) ([]Block, error)
	// MissingDocstrings counts definitions without documentation.
	MissingDocstrings(ctx context.Context, src []byte) (int, error)
	// PrintCall matches ad-hoc console output calls.
	PrintCall() *regexp.Regexp
}

// Registry maps file extensions to languages.
type Registry struct {
	byExt map[string]Language
}

// NewRegistry builds a registry from langs. Later entries win when two
// languages claim the same extension.
func NewRegistry(langs ...Language) *Registry {
	r := &Registry{byExt: make(map[string]Language)}
	for _, l := range langs {
		for _, ext := range l.Extensions() {
			r.byExt[ext] = l
		}
	}
	return r
}

// DefaultRegistry returns a registry with the built-in languages.
func DefaultRegistry() *Registry {
	return NewRegistry(NewPython())
}

// Detect returns the language for filename, or nil when the file is not
// a recognised source file. Matching is case-sensitive.
func (r *Registry) Detect(filename string) Language {
	if r == nil {
		return nil
	}
	return r.byExt[filepath.Ext(filename)]
}
