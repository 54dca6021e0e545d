// Package history keeps a small per-project log of relkit invocations in the
// state directory. Logging is best-effort: failures are reported on stderr
// and never fail the command that triggered them.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const historyFile = "history.yaml"

// Entry records one command invocation.
type Entry struct {
	Timestamp time.Time `yaml:"timestamp"`
	Command   string    `yaml:"command"`
	ExitCode  int       `yaml:"exit_code"`
	Duration  string    `yaml:"duration"`
}

// History is the on-disk run log, oldest entries first.
type History struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads the history file from stateDir. A missing file yields an empty
// history.
func Load(stateDir string) (*History, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, historyFile))
	if os.IsNotExist(err) {
		return &History{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var h History
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return &h, nil
}

// Save writes the history file into stateDir, creating the directory when
// needed.
func Save(stateDir string, h *History) error {
	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(stateDir, historyFile), data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Writer appends invocation entries with automatic pruning.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain.
	MaxEntries int
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{StateDir: stateDir, MaxEntries: maxEntries}
}

// LogEntry appends an entry, pruning the oldest past MaxEntries. Errors are
// non-fatal: they are written to stderr and don't cause command failures.
func (w *Writer) LogEntry(entry Entry) {
	if err := w.logEntry(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to log history: %v\n", err)
	}
}

func (w *Writer) logEntry(entry Entry) error {
	h, err := Load(w.StateDir)
	if err != nil {
		return err
	}

	h.Entries = append(h.Entries, entry)
	if w.MaxEntries > 0 && len(h.Entries) > w.MaxEntries {
		excess := len(h.Entries) - w.MaxEntries
		h.Entries = h.Entries[excess:]
	}

	return Save(w.StateDir, h)
}

// LogCommand is a convenience method to log a command execution.
func (w *Writer) LogCommand(command string, exitCode int, duration time.Duration) {
	w.LogEntry(Entry{
		Timestamp: time.Now(),
		Command:   command,
		ExitCode:  exitCode,
		Duration:  duration.String(),
	})
}
