package graph

import (
	"fmt"
	"strings"
)

// recordFieldCount is the number of pipe-delimited fields produced by the
// log format "%h|%d|%s|%p": identifier, decorations, subject, parents.
const recordFieldCount = 4

// Record is a single parsed commit from the history walk.
// Parents are ordered; the first parent is the mainline parent.
type Record struct {
	// ID is the abbreviated commit identifier.
	ID string
	// Decorations holds the raw ref tokens attached to the commit,
	// in the order git printed them. May be empty.
	Decorations []string
	// Subject is the single-line commit subject.
	Subject string
	// Parents holds zero or more parent identifiers. Zero parents
	// only occurs for a root commit.
	Parents []string
}

// MalformedRecordError indicates a log line did not split into the expected
// number of fields. The most likely cause is a commit subject that itself
// contains the pipe delimiter; the fixed-delimiter log format cannot
// represent such subjects and the whole render is aborted rather than
// risking a silently wrong graph.
type MalformedRecordError struct {
	Line   string
	Fields int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed log record: expected %d fields, got %d: %q",
		recordFieldCount, e.Fields, e.Line)
}

// ParseRecord parses one line of "%h|%d|%s|%p" log output into a Record.
// The decoration field arrives wrapped in parentheses (" (HEAD -> main, tag: v1.0)")
// and is unwrapped and comma-split here; classification of the individual
// tokens happens later in ClassifyDecorations.
func ParseRecord(line string) (Record, error) {
	parts := strings.Split(line, "|")
	if len(parts) != recordFieldCount {
		return Record{}, &MalformedRecordError{Line: line, Fields: len(parts)}
	}

	var decorations []string
	if deco := strings.Trim(parts[1], " ()"); deco != "" {
		decorations = strings.Split(deco, ", ")
	}

	var parents []string
	if parts[3] != "" {
		parents = strings.Fields(parts[3])
	}

	return Record{
		ID:          parts[0],
		Decorations: decorations,
		Subject:     parts[2],
		Parents:     parents,
	}, nil
}

// ParseRecords parses a full log listing, skipping blank lines.
// The first malformed line aborts the parse.
func ParseRecords(lines []string) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
