// Package changelog categorizes conventional-commit subjects into named
// changelog sections and renders them as a markdown entry for one version.
// The version string itself is an input; relkit does not compute version
// bumps.
package changelog

import (
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"
)

// SectionRule maps commit subjects matching any of its patterns to a display
// section. Rules are evaluated in order and the first match wins, so a
// catch-all rule belongs last.
type SectionRule struct {
	Title    string   `yaml:"title"`
	Patterns []string `yaml:"patterns"`
}

// Section is one rendered changelog section: a title and the subjects that
// matched its rule, in input order.
type Section struct {
	Title    string
	Messages []string
}

// DefaultRules returns the built-in categorization rules.
func DefaultRules() []SectionRule {
	return []SectionRule{
		{Title: "⚠️ Breaking Changes", Patterns: []string{`BREAKING CHANGE`, `^feat!:`}},
		{Title: "✨ Features", Patterns: []string{`^feat:`}},
		{Title: "🐛 Fixes", Patterns: []string{`^fix:`}},
		{Title: "🧰 Other", Patterns: []string{`.*`}},
	}
}

// LoadRules reads a YAML rules file: a list of {title, patterns} entries.
func LoadRules(r io.Reader) ([]SectionRule, error) {
	var rules []SectionRule
	if err := yaml.NewDecoder(r).Decode(&rules); err != nil {
		return nil, fmt.Errorf("parsing section rules: %w", err)
	}

	for i, rule := range rules {
		if rule.Title == "" {
			return nil, fmt.Errorf("section rule %d: title is required", i)
		}
		if len(rule.Patterns) == 0 {
			return nil, fmt.Errorf("section rule %d (%s): at least one pattern is required", i, rule.Title)
		}
	}
	return rules, nil
}

// compiledRule pairs a rule title with its compiled patterns.
type compiledRule struct {
	title    string
	patterns []*regexp.Regexp
}

func compileRules(rules []SectionRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		cr := compiledRule{title: rule.Title}
		for _, pattern := range rule.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("section %q: invalid pattern %q: %w", rule.Title, pattern, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}

func (r compiledRule) matches(message string) bool {
	for _, re := range r.patterns {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// GroupMessages buckets commit subjects into sections by first matching
// rule. Sections come back in rule order, or in the explicit order when one
// is given (titles missing from order keep rule order and follow it).
// Sections with no messages are dropped.
func GroupMessages(messages []string, rules []SectionRule, order []string) ([]Section, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]string, len(compiled))
	for _, message := range messages {
		for _, rule := range compiled {
			if rule.matches(message) {
				buckets[rule.title] = append(buckets[rule.title], message)
				break
			}
		}
	}

	titles := make([]string, 0, len(compiled))
	if len(order) > 0 {
		inOrder := make(map[string]bool, len(order))
		for _, title := range order {
			inOrder[title] = true
			titles = append(titles, title)
		}
		for _, rule := range compiled {
			if !inOrder[rule.title] {
				titles = append(titles, rule.title)
			}
		}
	} else {
		for _, rule := range compiled {
			titles = append(titles, rule.title)
		}
	}

	sections := make([]Section, 0, len(titles))
	for _, title := range titles {
		if msgs := buckets[title]; len(msgs) > 0 {
			sections = append(sections, Section{Title: title, Messages: msgs})
		}
	}
	return sections, nil
}
