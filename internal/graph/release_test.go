package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReleaseOpsEmpty(t *testing.T) {
	t.Parallel()

	ops := BuildReleaseOps(nil, Options{})
	assert.Equal(t, []Op{{Kind: OpRoot}}, ops)
}

func TestBuildReleaseOpsNewestOnMain(t *testing.T) {
	t.Parallel()

	ops := BuildReleaseOps([]Release{{Tag: "v2.0.0", Subject: "big rewrite"}}, Options{})

	require.Len(t, ops, 2)
	assert.Equal(t, OpRoot, ops[0].Kind)
	assert.Equal(t, OpCommit, ops[1].Kind)
	assert.Equal(t, "v2.0.0 big rewrite", ops[1].Text)
	assert.Equal(t, []string{"v2.0.0"}, ops[1].Tags)
}

func TestBuildReleaseOpsOlderReleasesBranchAndMerge(t *testing.T) {
	t.Parallel()

	releases := []Release{
		{Tag: "v1.1.0", Subject: "minor release"},
		{Tag: "v1.0.0", Subject: "first release"},
	}

	ops := BuildReleaseOps(releases, Options{MainBranch: "main"})

	want := []Op{
		{Kind: OpRoot},
		{Kind: OpCommit, Text: "v1.1.0 minor release", Tags: []string{"v1.1.0"}},
		{Kind: OpBranch, Name: "release-v1.0.0"},
		{Kind: OpCheckout, Name: "release-v1.0.0"},
		{Kind: OpCommit, Text: "v1.0.0 first release", Tags: []string{"v1.0.0"}},
		{Kind: OpCheckout, Name: "main"},
		{Kind: OpMerge, Name: "release-v1.0.0"},
	}
	assert.Equal(t, want, ops)
}

func TestBuildReleaseOpsTruncatesSubjects(t *testing.T) {
	t.Parallel()

	ops := BuildReleaseOps([]Release{
		{Tag: "v1.0.0", Subject: "a very long release subject that keeps going"},
	}, Options{})

	require.Len(t, ops, 2)
	assert.Equal(t, "v1.0.0 a very long release subje…", ops[1].Text)
}
