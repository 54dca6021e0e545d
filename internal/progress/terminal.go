// Package progress detects terminal capabilities so long-running commands
// can show a spinner when attached to a terminal and degrade to plain
// output when piped.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// Symbols is the symbol set matching the terminal's capabilities.
type Symbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// Detect inspects stdout and the environment. NO_COLOR disables color and
// RELKIT_ASCII=1 forces the ASCII symbol set.
func Detect() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("RELKIT_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols picks the symbol set for the given capabilities. Unicode
// terminals get ✓/✗ with the braille spinner; everything else gets
// [OK]/[FAIL] with the classic |/-\ spinner.
func SelectSymbols(caps TerminalCapabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14,
		}
	}

	return Symbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9,
	}
}
