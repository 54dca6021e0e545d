package changelog

import "strings"

// RenderEntry produces the markdown body for one version's changelog entry.
// The body is meant to live under a "## <version>" heading managed by the
// markdown section writer, so it contains only the release date line and the
// section lists. Rendering the same input always yields identical text.
func RenderEntry(date string, sections []Section) string {
	var sb strings.Builder

	if date != "" {
		sb.WriteString("_Released " + date + "_\n")
	}

	for i, section := range sections {
		if i > 0 || date != "" {
			sb.WriteString("\n")
		}
		sb.WriteString("### " + section.Title + "\n")
		for _, message := range section.Messages {
			sb.WriteString("- " + message + "\n")
		}
	}

	if len(sections) == 0 {
		if date != "" {
			sb.WriteString("\n")
		}
		sb.WriteString("No notable changes.\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
