package graph

// branchState tracks, for one walk, which branches are known, the last
// identifier attached to each, and the branch new commits attach to.
// It is owned exclusively by BuildOps for the duration of a single walk.
type branchState struct {
	heads   map[string]string
	order   []string
	current string
}

// newBranchState seeds the tracker with the walk's starting branch. The walk
// can open with ordinary commits that carry no decoration at all, so the
// starting branch must exist before the first record is processed.
func newBranchState(start string) *branchState {
	return &branchState{
		heads:   map[string]string{start: ""},
		order:   []string{start},
		current: start,
	}
}

// ensure registers name if it is not yet tracked, makes it the current
// branch, and reports whether a new branch was created. Re-declaring a known
// name is a no-op so a branch ref repeated across records never produces a
// duplicate creation.
func (s *branchState) ensure(name, head string) bool {
	if _, ok := s.heads[name]; ok {
		return false
	}
	s.heads[name] = head
	s.order = append(s.order, name)
	s.current = name
	return true
}

// advance records head as the new last-seen identifier for name.
func (s *branchState) advance(name, head string) {
	if _, ok := s.heads[name]; !ok {
		return
	}
	s.heads[name] = head
}

// branchWithHead returns the first tracked branch whose last-seen head equals
// id. Branches are scanned in creation order so resolution is deterministic
// when two branches coincidentally share a head. Histories are small (bounded
// by the log query window), so a linear scan is adequate.
func (s *branchState) branchWithHead(id string) (string, bool) {
	for _, name := range s.order {
		if s.heads[name] == id {
			return name, true
		}
	}
	return "", false
}
