package graph

import (
	"fmt"
	"strings"
)

const (
	mermaidOpen    = "```mermaid"
	mermaidClose   = "```"
	mermaidKeyword = "gitGraph"
	mermaidIndent  = "    "
)

// RenderMermaid serializes an operation sequence into a self-contained
// mermaid gitGraph block. Each op maps to exactly one line, so rendering the
// same sequence always yields byte-identical text.
func RenderMermaid(ops []Op) string {
	var sb strings.Builder
	sb.WriteString(mermaidOpen + "\n")
	sb.WriteString(mermaidKeyword + "\n")
	for _, op := range ops {
		sb.WriteString(renderOp(op))
		sb.WriteString("\n")
	}
	sb.WriteString(mermaidClose)
	return sb.String()
}

func renderOp(op Op) string {
	switch op.Kind {
	case OpRoot:
		return mermaidIndent + `commit id: "root"`
	case OpCommit:
		line := fmt.Sprintf(`%scommit id: "%s"`, mermaidIndent, op.Text)
		for _, tag := range op.Tags {
			line += fmt.Sprintf(` tag: "%s"`, tag)
		}
		return line
	case OpBranch:
		return mermaidIndent + "branch " + op.Name
	case OpCheckout:
		return mermaidIndent + "checkout " + op.Name
	case OpMerge:
		return mermaidIndent + "merge " + op.Name
	default:
		return ""
	}
}
