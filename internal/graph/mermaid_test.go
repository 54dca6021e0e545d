package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMermaid(t *testing.T) {
	t.Parallel()

	ops := []Op{
		{Kind: OpRoot},
		{Kind: OpCommit, Text: "a1 init"},
		{Kind: OpBranch, Name: "dev"},
		{Kind: OpCommit, Text: "a2 start dev"},
		{Kind: OpCheckout, Name: "main"},
		{Kind: OpMerge, Name: "dev"},
		{Kind: OpCommit, Text: "a3 release", Tags: []string{"v1.0", "stable"}},
	}

	want := "```mermaid\n" +
		"gitGraph\n" +
		"    commit id: \"root\"\n" +
		"    commit id: \"a1 init\"\n" +
		"    branch dev\n" +
		"    commit id: \"a2 start dev\"\n" +
		"    checkout main\n" +
		"    merge dev\n" +
		"    commit id: \"a3 release\" tag: \"v1.0\" tag: \"stable\"\n" +
		"```"

	assert.Equal(t, want, RenderMermaid(ops))
}

func TestRenderMermaidDeterministic(t *testing.T) {
	t.Parallel()

	records := []Record{
		{ID: "a1", Subject: "init"},
		{ID: "a2", Decorations: []string{"dev", "tag: v0.1"}, Subject: "start", Parents: []string{"a1"}},
		{ID: "a3", Subject: "merge", Parents: []string{"a2", "a1"}},
	}

	first := RenderMermaid(BuildOps(records, Options{}))
	second := RenderMermaid(BuildOps(records, Options{}))
	assert.Equal(t, first, second)
}

func TestRenderMermaidEmptySequence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "```mermaid\ngitGraph\n```", RenderMermaid(nil))
}
