package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEntry(t *testing.T) {
	t.Parallel()

	sections := []Section{
		{Title: "✨ Features", Messages: []string{"feat: graph command", "feat: changelog command"}},
		{Title: "🐛 Fixes", Messages: []string{"fix: empty history"}},
	}

	want := "_Released 2026-08-31_\n" +
		"\n" +
		"### ✨ Features\n" +
		"- feat: graph command\n" +
		"- feat: changelog command\n" +
		"\n" +
		"### 🐛 Fixes\n" +
		"- fix: empty history"

	assert.Equal(t, want, RenderEntry("2026-08-31", sections))
}

func TestRenderEntryWithoutDate(t *testing.T) {
	t.Parallel()

	got := RenderEntry("", []Section{{Title: "🧰 Other", Messages: []string{"chore: tidy"}}})
	assert.Equal(t, "### 🧰 Other\n- chore: tidy", got)
}

func TestRenderEntryNoSections(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "_Released 2026-08-31_\n\nNo notable changes.", RenderEntry("2026-08-31", nil))
	assert.Equal(t, "No notable changes.", RenderEntry("", nil))
}

func TestRenderEntryDeterministic(t *testing.T) {
	t.Parallel()

	sections := []Section{{Title: "✨ Features", Messages: []string{"feat: a"}}}
	assert.Equal(t, RenderEntry("2026-01-01", sections), RenderEntry("2026-01-01", sections))
}
