package graph

import "strings"

// DecorationKind distinguishes the three ref annotations git attaches to
// commits in decorated log output.
type DecorationKind int

const (
	// DecorationBranch is a local or remote-tracking branch ref.
	DecorationBranch DecorationKind = iota
	// DecorationTag is a tag ref ("tag: v1.0").
	DecorationTag
	// DecorationPointer is the current-position marker ("HEAD -> main").
	// It never introduces a branch; it only names the branch the walker
	// currently sits on.
	DecorationPointer
)

// Decoration is one classified ref annotation.
type Decoration struct {
	Kind DecorationKind
	Name string
}

const (
	tagPrefix        = "tag: "
	pointerSeparator = " -> "
	remotePrefix     = "origin/"
)

// ClassifyDecorations turns the raw comma-split decoration tokens of one
// record into classified Decorations, preserving token order. Remote-tracking
// branch refs are normalized to their local name. A pointer token whose
// target duplicates another decoration on the same record is dropped, as is
// a bare detached "HEAD".
func ClassifyDecorations(tokens []string) []Decoration {
	decorations := make([]Decoration, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		switch {
		case token == "" || token == "HEAD":
			continue
		case strings.HasPrefix(token, tagPrefix):
			decorations = append(decorations, Decoration{
				Kind: DecorationTag,
				Name: strings.TrimPrefix(token, tagPrefix),
			})
		case strings.Contains(token, pointerSeparator):
			_, name, _ := strings.Cut(token, pointerSeparator)
			name = strings.TrimPrefix(name, remotePrefix)
			decorations = append(decorations, Decoration{
				Kind: DecorationPointer,
				Name: name,
			})
		default:
			name := strings.TrimPrefix(token, remotePrefix)
			if seen[name] {
				continue
			}
			seen[name] = true
			decorations = append(decorations, Decoration{
				Kind: DecorationBranch,
				Name: name,
			})
		}
	}

	return dropDuplicatePointers(decorations)
}

// dropDuplicatePointers removes pointer decorations whose target branch also
// appears as a branch decoration on the same record. The pointer carries no
// extra information in that case.
func dropDuplicatePointers(decorations []Decoration) []Decoration {
	branches := make(map[string]bool, len(decorations))
	for _, d := range decorations {
		if d.Kind == DecorationBranch {
			branches[d.Name] = true
		}
	}

	out := decorations[:0]
	for _, d := range decorations {
		if d.Kind == DecorationPointer && branches[d.Name] {
			continue
		}
		out = append(out, d)
	}
	return out
}
