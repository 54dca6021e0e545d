package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintUpdated(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	PrintUpdated(&buf, "Release Graph", "README.md")
	assert.Equal(t, "✓ Updated \"Release Graph\" section in README.md\n", buf.String())
}

func TestPrintWarning(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	PrintWarning(&buf, "some remotes failed to fetch")
	assert.Equal(t, "⚠ some remotes failed to fetch\n", buf.String())
}
