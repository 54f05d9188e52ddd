// Package pattern holds the regular expression sets that define what a scan
// extracts. An extractor flavor is nothing more than a Set; the walking and
// caching machinery in the engine is shared by all of them.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// cleanupRe strips quoting and whitespace left over from a raw capture.
var cleanupRe = regexp.MustCompile(`[\s'"]`)

// EnvVars captures names passed to getenv(...) and environ.get(...).
var EnvVars = MustNew("env",
	`getenv\((\s*['"][A-Z_]+)`,
	`environ\.get\((\s*['"][A-Z_]+)`,
)

// Imports captures the top-level module of from/import statements.
var Imports = MustNew("imports",
	`from(\s*[a-z][a-zA-Z0-9_]+)[.\s]`,
	`import(\s*[a-z][a-zA-Z0-9_]+)[.\s]`,
)

var flavors = map[string]*Set{
	"env":     EnvVars,
	"imports": Imports,
}

// Rule is one compiled extraction expression. When the expression has a
// capture group the first group is the match; otherwise the whole match is.
type Rule struct {
	re *regexp.Regexp
}

func (r Rule) String() string { return r.re.String() }

func (r Rule) findAll(text string) []string {
	if r.re.NumSubexp() == 0 {
		return r.re.FindAllString(text, -1)
	}
	subs := r.re.FindAllStringSubmatch(text, -1)
	if len(subs) == 0 {
		return nil
	}
	out := make([]string, 0, len(subs))
	for _, sm := range subs {
		out = append(out, sm[1])
	}
	return out
}

// Set is an ordered, read-only list of rules.
type Set struct {
	name  string
	rules []Rule
}

// New compiles exprs in order into a Set.
func New(name string, exprs ...string) (*Set, error) {
	rules, err := compile(exprs)
	if err != nil {
		return nil, err
	}
	return &Set{name: name, rules: rules}, nil
}

// MustNew is like New but panics on an invalid expression. It is meant for
// package-level flavors.
func MustNew(name string, exprs ...string) *Set {
	s, err := New(name, exprs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the built-in flavor registered under name.
func Lookup(name string) (*Set, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "env"
	}
	s, ok := flavors[key]
	if !ok {
		return nil, fmt.Errorf("unknown flavor: %s", name)
	}
	return s, nil
}

// Flavors lists the names accepted by Lookup.
func Flavors() []string {
	return []string{"env", "imports"}
}

// Name reports the flavor name the set was built with.
func (s *Set) Name() string { return s.name }

// Rules returns a copy of the compiled rules.
func (s *Set) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// With returns a new set with exprs appended after the existing rules.
// The receiver is left untouched.
func (s *Set) With(exprs ...string) (*Set, error) {
	if len(exprs) == 0 {
		return s, nil
	}
	extra, err := compile(exprs)
	if err != nil {
		return nil, err
	}
	rules := make([]Rule, 0, len(s.rules)+len(extra))
	rules = append(rules, s.rules...)
	rules = append(rules, extra...)
	return &Set{name: s.name, rules: rules}, nil
}

// Apply runs every rule against text and concatenates the raw matches in
// rule order. Duplicates are kept.
func (s *Set) Apply(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, r := range s.rules {
		out = append(out, r.findAll(text)...)
	}
	return out
}

// Clean removes every whitespace and quote character from a raw match.
func Clean(raw string) string {
	return cleanupRe.ReplaceAllString(raw, "")
}

func compile(exprs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
		rules = append(rules, Rule{re: re})
	}
	return rules, nil
}
