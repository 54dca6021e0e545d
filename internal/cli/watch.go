package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relkit/internal/errors"
	"github.com/raveheart1/relkit/internal/git"
)

// watchDebounce batches the burst of filesystem events a single git
// operation produces into one re-render.
const watchDebounce = 500 * time.Millisecond

// watchRepository blocks, re-running render whenever the repository's refs
// change, until interrupted.
func watchRepository(ctx context.Context, cmd *cobra.Command, render func() error) error {
	root, err := git.RepositoryRoot("")
	if err != nil {
		return describeGitError(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.Runtime,
			"Filesystem watching is unavailable on this system")
	}
	defer watcher.Close()

	gitDir := filepath.Join(root, ".git")
	for _, dir := range []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	} {
		if _, statErr := os.Stat(dir); statErr != nil {
			continue
		}
		if addErr := watcher.Add(dir); addErr != nil {
			return errors.Wrap(addErr, errors.Runtime,
				"Check that the .git directory is readable")
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.PrintErrln("Watching repository for changes. Press Ctrl+C to stop.")

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !refEvent(event) {
				continue
			}
			debounce.Reset(watchDebounce)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("Watch error: %v\n", watchErr)
		case <-debounce.C:
			if renderErr := render(); renderErr != nil {
				cmd.PrintErrf("Render failed: %v\n", renderErr)
			}
		}
	}
}

// refEvent reports whether a filesystem event plausibly changed the commit
// topology. Lock files churn on every git invocation and are ignored.
func refEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if filepath.Ext(name) == ".lock" {
		return false
	}
	switch name {
	case "HEAD", "packed-refs", "ORIG_HEAD", "FETCH_HEAD":
		return true
	}
	// Anything under refs/ is a branch or tag tip.
	return filepath.Base(filepath.Dir(event.Name)) == "heads" ||
		filepath.Base(filepath.Dir(event.Name)) == "tags"
}
