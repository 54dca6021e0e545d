// Package markdown splices named sections into markdown documents. It is the
// single landing point for generated content: the release graph goes into the
// README and changelog entries go into CHANGELOG.md, both under a level-two
// heading that is replaced in place on re-render.
package markdown

import (
	"fmt"
	"os"
	"strings"
)

const headingPrefix = "## "

// UpsertSection returns doc with body placed under the "## heading" section.
// An existing section is replaced up to (but not including) the next
// level-two heading or end of document; a missing section is appended.
// Content outside the section is left untouched.
func UpsertSection(doc, heading, body string) string {
	marker := "\n" + headingPrefix + heading + "\n"

	start := strings.Index(doc, marker)
	if start == -1 && strings.HasPrefix(doc, headingPrefix+heading+"\n") {
		// Section sits at the very top of the document.
		start = 0
		marker = headingPrefix + heading + "\n"
	}

	if start == -1 {
		head := strings.TrimRight(doc, "\n")
		if head != "" {
			head += "\n\n"
		}
		return head + headingPrefix + heading + "\n\n" + body + "\n"
	}

	rest := doc[start+len(marker):]
	section := marker + "\n" + body + "\n"

	next := strings.Index(rest, "\n"+headingPrefix)
	if next == -1 {
		return doc[:start] + section
	}
	return doc[:start] + section + rest[next:]
}

// WriteSection upserts the section into the file at path, creating the file
// when it does not exist.
func WriteSection(path, heading, body string) error {
	var doc string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		doc = string(data)
	case os.IsNotExist(err):
		doc = ""
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}

	updated := UpsertSection(doc, heading, body)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
