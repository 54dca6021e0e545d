package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDecorations(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		tokens []string
		want   []Decoration
	}{
		"tag token": {
			tokens: []string{"tag: v1.0"},
			want:   []Decoration{{Kind: DecorationTag, Name: "v1.0"}},
		},
		"branch token": {
			tokens: []string{"dev"},
			want:   []Decoration{{Kind: DecorationBranch, Name: "dev"}},
		},
		"remote branch normalized": {
			tokens: []string{"origin/feature/login"},
			want:   []Decoration{{Kind: DecorationBranch, Name: "feature/login"}},
		},
		"local and remote dedup to one branch": {
			tokens: []string{"main", "origin/main"},
			want:   []Decoration{{Kind: DecorationBranch, Name: "main"}},
		},
		"pointer without matching branch kept": {
			tokens: []string{"HEAD -> dev"},
			want:   []Decoration{{Kind: DecorationPointer, Name: "dev"}},
		},
		"pointer duplicating branch dropped": {
			tokens: []string{"HEAD -> main", "main"},
			want:   []Decoration{{Kind: DecorationBranch, Name: "main"}},
		},
		"detached head skipped": {
			tokens: []string{"HEAD"},
			want:   []Decoration{},
		},
		"order preserved": {
			tokens: []string{"dev", "tag: v2.0", "origin/hotfix"},
			want: []Decoration{
				{Kind: DecorationBranch, Name: "dev"},
				{Kind: DecorationTag, Name: "v2.0"},
				{Kind: DecorationBranch, Name: "hotfix"},
			},
		},
		"empty tokens skipped": {
			tokens: []string{"", "  ", "dev"},
			want:   []Decoration{{Kind: DecorationBranch, Name: "dev"}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyDecorations(tc.tokens)
			assert.Equal(t, tc.want, got)
		})
	}
}
