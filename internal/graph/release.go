package graph

// releaseSubjectLimit is the tighter subject threshold for the release graph,
// where tag names already take up label space.
const releaseSubjectLimit = 25

// Release pairs a tag with the subject of the commit it points at.
type Release struct {
	Tag     string
	Subject string
}

// BuildReleaseOps produces a simplified release-focused operation sequence
// from a list of tagged releases, newest first. The newest release lands on
// the main branch; every older release is drawn as a short-lived release
// branch merged back into main. An empty list yields just the root anchor.
func BuildReleaseOps(releases []Release, opts Options) []Op {
	opts = opts.withDefaults()

	ops := []Op{{Kind: OpRoot}}

	for i, rel := range releases {
		commit := Op{
			Kind: OpCommit,
			Text: rel.Tag + " " + shortSubject(rel.Subject, releaseSubjectLimit),
			Tags: []string{rel.Tag},
		}

		if i == 0 {
			ops = append(ops, commit)
			continue
		}

		branch := "release-" + rel.Tag
		ops = append(ops,
			Op{Kind: OpBranch, Name: branch},
			Op{Kind: OpCheckout, Name: branch},
			commit,
			Op{Kind: OpCheckout, Name: opts.MainBranch},
			Op{Kind: OpMerge, Name: branch},
		)
	}

	return ops
}
