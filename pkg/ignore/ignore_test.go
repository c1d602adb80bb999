package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesMatchKnownNames(t *testing.T) {
	rs := Default(nil)

	matching := []string{
		"node_modules",
		"vendor",
		".git",
		".github",
		"yarn.lock",
		"Cargo.lock",
		"package-lock.json",
		".env",
	}
	for _, name := range matching {
		assert.True(t, rs.Matches(name), "expected %q to be ignored", name)
	}

	clean := []string{
		"main.go",
		"README.md",
		"config.yaml",
		"clock.go",
		"environment.md",
	}
	for _, name := range clean {
		assert.False(t, rs.Matches(name), "expected %q to pass", name)
	}
}

func TestContainsSemantics(t *testing.T) {
	rs := Default(nil)

	// Matching is substring-anchored on the base name, so derived names
	// that contain a rule are excluded too.
	assert.True(t, rs.Matches(".env.local"))
	assert.True(t, rs.Matches("secrets.env"))
	assert.True(t, rs.Matches(".gitignore"))
}

func TestWildcardExpansion(t *testing.T) {
	rs := NewRuleSet(nil, "*.tmp", "build?")

	assert.True(t, rs.Matches("scratch.tmp"))
	assert.True(t, rs.Matches(".tmp"), "star matches zero characters")
	assert.True(t, rs.Matches("build1"))
	assert.False(t, rs.Matches("build"), "question mark needs one character")
	assert.False(t, rs.Matches("notes.txt"))
}

func TestNegationReincludes(t *testing.T) {
	rs := NewRuleSet(nil, "*.lock", "!important.lock")

	assert.True(t, rs.Matches("yarn.lock"))
	assert.False(t, rs.Matches("important.lock"))
}

func TestAddAppendsAfterDefaults(t *testing.T) {
	rs := Default(nil)
	before := rs.Len()

	rs.Add("*.bak", "", "# a comment")

	require.Equal(t, before+1, rs.Len(), "blank lines and comments are dropped")
	assert.True(t, rs.Matches("data.bak"))
}

func TestMatchesWithRuleReportsDecidingRule(t *testing.T) {
	rs := NewRuleSet(nil, "*.lock")

	matched, rule := rs.MatchesWithRule("yarn.lock")
	require.True(t, matched)
	require.NotNil(t, rule)
	assert.Equal(t, "*.lock", rule.Raw)

	matched, rule = rs.MatchesWithRule("main.go")
	assert.False(t, matched)
	assert.Nil(t, rule)
}

func TestLiteralRegexCharactersAreEscaped(t *testing.T) {
	rs := NewRuleSet(nil, "a+b.txt")

	assert.True(t, rs.Matches("a+b.txt"))
	assert.False(t, rs.Matches("aab.txt"), "'+' is literal, not a quantifier")
}
