package scoring

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dshills/prscore/internal/analyzer"
)

// Built-in profile names.
const (
	ProfileDefault = "default"
	ProfileStrict  = "strict"
)

var defaultRules = map[analyzer.IssueType]Rule{
	analyzer.TypeTodo:          {Weight: 5, Cap: 20},
	analyzer.TypeComplexity:    {Weight: 2, Cap: 20},
	analyzer.TypeDocstring:     {Weight: 1, Cap: 5},
	analyzer.TypePrint:         {Weight: 3, Cap: 3},
	analyzer.TypeLint:          {Weight: 1, Cap: 10},
	analyzer.TypeSecret:        {Weight: 25, Cap: 25},
	analyzer.TypeLargeAddition: {Weight: 5, Cap: 5},
}

// Default returns the standard weights.
func Default() Policy {
	return NewPolicy(ProfileDefault, defaultRules)
}

// Strict doubles every weight and cap of the default profile.
func Strict() Policy {
	rules := make(map[analyzer.IssueType]Rule, len(defaultRules))
	for t, r := range defaultRules {
		rules[t] = Rule{Weight: r.Weight * 2, Cap: r.Cap * 2}
	}
	return NewPolicy(ProfileStrict, rules)
}

var builtins = map[string]func() Policy{
	ProfileDefault: Default,
	ProfileStrict:  Strict,
}

// BuiltinNames lists the built-in profiles, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin returns the named built-in profile.
func Builtin(name string) (Policy, bool) {
	f, ok := builtins[name]
	if !ok {
		return Policy{}, false
	}
	return f(), true
}

// Profile is the YAML form of a policy.
//
//	name: team
//	rules:
//	  todo: {weight: 5, cap: 20}
//	  secret: {weight: 50, cap: 50}
//
// Types missing from rules fall back to the default profile when
// Inherit is true, and cost nothing otherwise.
type Profile struct {
	Name    string                      `yaml:"name" validate:"required"`
	Inherit bool                        `yaml:"inherit"`
	Rules   map[analyzer.IssueType]Rule `yaml:"rules" validate:"required,dive"`
}

var validate = validator.New()

// ParseProfile decodes and validates a YAML profile.
func ParseProfile(data []byte) (Policy, error) {
	var prof Profile
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return Policy{}, fmt.Errorf("parsing profile: %w", err)
	}
	if err := validate.Struct(prof); err != nil {
		return Policy{}, fmt.Errorf("invalid profile: %w", err)
	}
	for t := range prof.Rules {
		if !slices.Contains(analyzer.AllTypes, t) {
			return Policy{}, fmt.Errorf("invalid profile: unknown issue type %q", t)
		}
	}

	rules := make(map[analyzer.IssueType]Rule, len(defaultRules))
	if prof.Inherit {
		for t, r := range defaultRules {
			rules[t] = r
		}
	}
	for t, r := range prof.Rules {
		rules[t] = r
	}
	return NewPolicy(prof.Name, rules), nil
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading profile: %w", err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		return Policy{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Resolve returns the built-in profile called ref, or loads ref as a YAML
// file. An empty ref selects the default profile.
func Resolve(ref string) (Policy, error) {
	if ref == "" {
		return Default(), nil
	}
	if p, ok := Builtin(ref); ok {
		return p, nil
	}
	return LoadProfile(ref)
}
