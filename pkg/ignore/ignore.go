// Package ignore implements name-based exclusion rules for the snapshot
// engine. Rules are matched against an entry's base name only, never the
// full path, so a rule excludes matching files and directories at any
// nesting depth.
package ignore

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// DefaultRules is the built-in rule set applied to every run: dependency
// and VCS directories plus lockfiles and environment files.
var DefaultRules = []string{
	"node_modules",
	"vendor",
	".git",
	".github",
	"*.lock",
	"package-lock.json",
	".env",
}

// Matcher reports whether a base name is excluded by the rule set.
type Matcher interface {
	Matches(name string) bool
	MatchesWithRule(name string) (bool, *Rule)
}

// Rule is a single compiled exclusion rule.
type Rule struct {
	Pattern *regexp.Regexp // Compiled regular expression for the rule.
	Negate  bool           // Indicates the rule re-includes matches (starts with '!').
	Raw     string         // Original rule text, for reporting.
}

// RuleSet is an ordered collection of compiled rules. Later rules win, so
// a negated rule after a match re-includes the name.
type RuleSet struct {
	rules  []*Rule
	logger *zap.Logger
}

// NewRuleSet compiles the given rule lines into a RuleSet. Empty lines and
// '#' comments are dropped; invalid lines are logged and skipped.
func NewRuleSet(logger *zap.Logger, lines ...string) *RuleSet {
	if logger == nil {
		logger = zap.NewNop()
	}
	rs := &RuleSet{logger: logger}
	rs.Add(lines...)
	return rs
}

// Default returns a RuleSet compiled from DefaultRules.
func Default(logger *zap.Logger) *RuleSet {
	return NewRuleSet(logger, DefaultRules...)
}

// Add compiles additional rule lines and appends them after the existing
// rules.
func (rs *RuleSet) Add(lines ...string) {
	for _, line := range lines {
		rule := parseRuleLine(line)
		if rule == nil {
			continue
		}
		rs.rules = append(rs.rules, rule)
		rs.logger.Debug("Compiled ignore rule",
			zap.String("rule", rule.Raw),
			zap.Bool("negate", rule.Negate))
	}
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Matches checks if the given base name is excluded by any rule.
func (rs *RuleSet) Matches(name string) bool {
	matched, _ := rs.MatchesWithRule(name)
	return matched
}

// MatchesWithRule checks the base name against every rule in order and
// returns the decision together with the rule that determined it.
func (rs *RuleSet) MatchesWithRule(name string) (bool, *Rule) {
	matched := false
	var matchedRule *Rule

	for _, rule := range rs.rules {
		if rule.Pattern.MatchString(name) {
			matchedRule = rule
			matched = !rule.Negate
		}
	}

	return matched, matchedRule
}

// parseRuleLine compiles one rule line into a Rule. Returns nil for empty
// lines, comments, and patterns that fail to compile.
func parseRuleLine(line string) *Rule {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// Escaped leading '#' or '!' are literal.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	compiled, err := regexp.Compile(wildcardToRegex(trimmed))
	if err != nil {
		return nil
	}

	return &Rule{
		Pattern: compiled,
		Negate:  negate,
		Raw:     line,
	}
}

// wildcardToRegex converts a rule into an unanchored regular expression:
// '*' expands to zero or more characters, '?' to a single character, and
// everything else is literal. The result matches anywhere in the name
// ("contains" semantics), so "node_modules" and ".env" need no anchors.
func wildcardToRegex(pattern string) string {
	escaped := escapeSpecialChars(pattern)
	escaped = strings.ReplaceAll(escaped, "*", ".*")
	escaped = strings.ReplaceAll(escaped, "?", ".")
	return escaped
}

// escapeSpecialChars escapes regex metacharacters except '*' and '?'.
func escapeSpecialChars(pattern string) string {
	specialChars := `\.+()|^$[]{}`
	for _, char := range specialChars {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}
