package graph

import "strings"

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for the emitter. Pass nil to
// disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// OpKind identifies a graph operation.
type OpKind int

const (
	// OpRoot is the synthetic anchor commit emitted before any record.
	OpRoot OpKind = iota
	// OpCommit is an ordinary commit with a label and optional tags.
	OpCommit
	// OpBranch introduces a new branch.
	OpBranch
	// OpCheckout switches the active branch.
	OpCheckout
	// OpMerge merges the named branch into the active one.
	OpMerge
)

// Op is one element of the renderer-agnostic operation sequence. Name is set
// for branch, checkout, and merge operations; Text and Tags for commits.
type Op struct {
	Kind OpKind
	Name string
	Text string
	Tags []string
}

// DefaultSubjectLimit is the rune threshold past which commit subjects are
// truncated in commit labels.
const DefaultSubjectLimit = 30

// Options configures a history walk.
type Options struct {
	// MainBranch is the branch the walk starts on. Defaults to "main".
	MainBranch string
	// SubjectLimit is the maximum subject length in runes before
	// truncation. Defaults to DefaultSubjectLimit.
	SubjectLimit int
}

func (o Options) withDefaults() Options {
	if o.MainBranch == "" {
		o.MainBranch = "main"
	}
	if o.SubjectLimit <= 0 {
		o.SubjectLimit = DefaultSubjectLimit
	}
	return o
}

// BuildOps folds an oldest-first record sequence into a graph operation
// sequence. Records must arrive in topological-reverse order so branch heads
// are established before later merges reference them.
//
// Per record: branch decorations not yet tracked each emit a branch creation
// and make that branch current; secondary parents that match a tracked
// branch head each emit a merge immediately before the record's commit; the
// commit itself carries the short identifier, the shortened subject, and any
// tag decorations. The current branch then advances to the record's
// identifier. A synthetic root commit always opens the sequence, anchoring
// the diagram even for an empty history.
func BuildOps(records []Record, opts Options) []Op {
	opts = opts.withDefaults()

	ops := []Op{{Kind: OpRoot}}
	state := newBranchState(opts.MainBranch)

	for _, rec := range records {
		decorations := ClassifyDecorations(rec.Decorations)

		for _, d := range decorations {
			if d.Kind != DecorationBranch {
				continue
			}
			if state.ensure(d.Name, rec.ID) {
				ops = append(ops, Op{Kind: OpBranch, Name: d.Name})
			}
		}

		ops = append(ops, resolveMerges(state, rec)...)

		ops = append(ops, Op{
			Kind: OpCommit,
			Text: commitText(rec, opts.SubjectLimit),
			Tags: tagNames(decorations),
		})

		state.advance(state.current, rec.ID)
	}

	return ops
}

// resolveMerges emits one merge op for every secondary parent whose
// identifier matches a tracked branch head. The first parent is the mainline
// continuation and needs no explicit operation. An unmatched parent means
// the originating branch fell outside the queried window; the commit then
// renders as an ordinary commit.
func resolveMerges(state *branchState, rec Record) []Op {
	if len(rec.Parents) < 2 {
		return nil
	}

	var ops []Op
	for _, parent := range rec.Parents[1:] {
		name, ok := state.branchWithHead(parent)
		if !ok {
			logDebug("[graph] commit %s: no tracked branch head matches parent %s", rec.ID, parent)
			continue
		}
		ops = append(ops, Op{Kind: OpMerge, Name: name})
	}
	return ops
}

// commitText builds the commit label: short identifier plus shortened subject.
func commitText(rec Record, limit int) string {
	return rec.ID + " " + shortSubject(rec.Subject, limit)
}

// tagNames collects the tag decorations of one record, in order.
func tagNames(decorations []Decoration) []string {
	var tags []string
	for _, d := range decorations {
		if d.Kind == DecorationTag {
			tags = append(tags, d.Name)
		}
	}
	return tags
}

// shortSubject trims the subject, replaces embedded double quotes (which
// would break the mermaid syntax) with single quotes, and truncates to limit
// runes with an ellipsis marker.
func shortSubject(subject string, limit int) string {
	clean := strings.ReplaceAll(strings.TrimSpace(subject), `"`, "'")
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return clean
}
