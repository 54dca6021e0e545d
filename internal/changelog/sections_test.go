package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMessagesDefaultRules(t *testing.T) {
	t.Parallel()

	messages := []string{
		"feat: add graph command",
		"fix: handle empty history",
		"feat!: drop legacy config",
		"chore: bump deps",
		"refactor: BREAKING CHANGE in emitter API",
	}

	sections, err := GroupMessages(messages, DefaultRules(), nil)
	require.NoError(t, err)

	require.Len(t, sections, 4)
	assert.Equal(t, "⚠️ Breaking Changes", sections[0].Title)
	assert.Equal(t, []string{"feat!: drop legacy config", "refactor: BREAKING CHANGE in emitter API"}, sections[0].Messages)
	assert.Equal(t, "✨ Features", sections[1].Title)
	assert.Equal(t, []string{"feat: add graph command"}, sections[1].Messages)
	assert.Equal(t, "🐛 Fixes", sections[2].Title)
	assert.Equal(t, []string{"fix: handle empty history"}, sections[2].Messages)
	assert.Equal(t, "🧰 Other", sections[3].Title)
	assert.Equal(t, []string{"chore: bump deps"}, sections[3].Messages)
}

func TestGroupMessagesFirstMatchWins(t *testing.T) {
	t.Parallel()

	// "feat!:" matches both the breaking rule and the catch-all; only the
	// breaking bucket receives it.
	sections, err := GroupMessages([]string{"feat!: new API"}, DefaultRules(), nil)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "⚠️ Breaking Changes", sections[0].Title)
}

func TestGroupMessagesEmptySectionsDropped(t *testing.T) {
	t.Parallel()

	sections, err := GroupMessages([]string{"fix: one thing"}, DefaultRules(), nil)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "🐛 Fixes", sections[0].Title)
}

func TestGroupMessagesExplicitOrder(t *testing.T) {
	t.Parallel()

	messages := []string{"feat: a", "fix: b"}
	order := []string{"🐛 Fixes", "✨ Features"}

	sections, err := GroupMessages(messages, DefaultRules(), order)
	require.NoError(t, err)

	require.Len(t, sections, 2)
	assert.Equal(t, "🐛 Fixes", sections[0].Title)
	assert.Equal(t, "✨ Features", sections[1].Title)
}

func TestGroupMessagesOrderKeepsUnlistedTitles(t *testing.T) {
	t.Parallel()

	messages := []string{"feat: a", "chore: b"}
	order := []string{"🧰 Other"}

	sections, err := GroupMessages(messages, DefaultRules(), order)
	require.NoError(t, err)

	require.Len(t, sections, 2)
	assert.Equal(t, "🧰 Other", sections[0].Title)
	assert.Equal(t, "✨ Features", sections[1].Title)
}

func TestGroupMessagesInvalidPattern(t *testing.T) {
	t.Parallel()

	rules := []SectionRule{{Title: "Broken", Patterns: []string{"["}}}
	_, err := GroupMessages([]string{"msg"}, rules, nil)
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	t.Run("valid rules file", func(t *testing.T) {
		t.Parallel()
		src := `
- title: Features
  patterns: ["^feat:"]
- title: Everything else
  patterns: [".*"]
`
		rules, err := LoadRules(strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, rules, 2)
		assert.Equal(t, "Features", rules[0].Title)
		assert.Equal(t, []string{"^feat:"}, rules[0].Patterns)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		t.Parallel()
		_, err := LoadRules(strings.NewReader(`[{patterns: [".*"]}]`))
		assert.ErrorContains(t, err, "title is required")
	})

	t.Run("missing patterns rejected", func(t *testing.T) {
		t.Parallel()
		_, err := LoadRules(strings.NewReader(`[{title: Features}]`))
		assert.ErrorContains(t, err, "at least one pattern")
	})

	t.Run("invalid yaml rejected", func(t *testing.T) {
		t.Parallel()
		_, err := LoadRules(strings.NewReader("\t not yaml"))
		assert.Error(t, err)
	})
}
