package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// logFormat produces the four pipe-delimited fields the graph parser
// consumes: abbreviated hash, decorations, subject, abbreviated parents.
const logFormat = "%h|%d|%s|%p"

// HistorySourceError indicates a git history query failed. The query is not
// retried; the error carries the failing argv and captured stderr.
type HistorySourceError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *HistorySourceError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *HistorySourceError) Unwrap() error {
	return e.Err
}

// runGit executes one git command in dir and returns its stdout. A non-zero
// exit or spawn failure surfaces as a *HistorySourceError.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logDebug("[git] running: git %s", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return "", &HistorySourceError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

// LogLines returns the full decorated history as pipe-delimited lines in
// topological-reverse order (oldest first), the exact shape graph.ParseRecords
// consumes. Parent-before-child ordering is required so branch heads exist
// before later merges reference them.
func LogLines(ctx context.Context, dir string) ([]string, error) {
	out, err := runGit(ctx, dir,
		"log", "--all", "--decorate=short",
		"--pretty=format:"+logFormat,
		"--topo-order", "--reverse")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// MergedTags returns the tags reachable from branch, newest first by
// creation time.
func MergedTags(ctx context.Context, dir, branch string) ([]string, error) {
	out, err := runGit(ctx, dir, "tag", "--merged", branch, "--sort=-creatordate")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Subject returns the commit subject for ref.
func Subject(ctx context.Context, dir, ref string) (string, error) {
	out, err := runGit(ctx, dir, "log", "-1", "--pretty=format:%s", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LastTag returns the most recent tag reachable from HEAD, or an empty
// string when the repository has no tags yet.
func LastTag(ctx context.Context, dir string) (string, error) {
	out, err := runGit(ctx, dir, "describe", "--tags", "--abbrev=0")
	if err != nil {
		// git describe exits non-zero in an untagged repository; treat
		// that as "no tags" rather than a failed query.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logDebug("[git] LastTag: no tags found")
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RootCommit returns the identifier of the first parentless commit on branch.
func RootCommit(ctx context.Context, dir, branch string) (string, error) {
	out, err := runGit(ctx, dir, "rev-list", "--max-parents=0", branch)
	if err != nil {
		return "", err
	}
	lines := splitLines(out)
	if len(lines) == 0 {
		return "", &HistorySourceError{
			Args: []string{"rev-list", "--max-parents=0", branch},
			Err:  fmt.Errorf("no root commit on %s", branch),
		}
	}
	return lines[0], nil
}

// SubjectsSince returns the commit subjects on branch after from, newest
// first. An empty from means the whole history of branch.
func SubjectsSince(ctx context.Context, dir, from, branch string) ([]string, error) {
	args := []string{"log", "--pretty=format:%s"}
	if from != "" {
		args = append(args, from+".."+branch)
	} else {
		args = append(args, branch)
	}

	out, err := runGit(ctx, dir, args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// splitLines splits command output into non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
