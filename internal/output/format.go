// Package output provides terminal output formatting for the relkit CLI.
// It is kept free of other internal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// TerminalWidth returns the terminal width, defaulting to 80 when stdout is
// not a terminal.
func TerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSuccess prints a green checkmark followed by the message, with the
// target path highlighted separately when given.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintUpdated reports a document section update. The path is cyan so it
// stands out in a stream of output.
func PrintUpdated(out io.Writer, section, path string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s Updated %q section in %s\n", green("✓"), section, cyan(path))
}

// PrintWarning prints a yellow warning message.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("⚠"), message)
}
