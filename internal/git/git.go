// Package git exposes the repository operations relkit needs: repository
// detection, current-branch lookup, remote fetching, and the decorated log
// and tag queries that feed the graph and changelog generators. Repository
// level operations use the go-git library; the log and tag queries shell out
// to the git CLI because go-git does not express decorated, topologically
// ordered log output or creatordate-sorted tag listings.
package git

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/sync/errgroup"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing path, traversing up the
// directory tree to find the repository root. An empty path means the
// current working directory.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository reports whether dir (or the current directory when empty) is
// inside a git repository.
func IsRepository(dir string) bool {
	_, err := openRepo(dir)
	return err == nil
}

// CurrentBranch returns the name of the checked-out branch, or an empty
// string in detached HEAD state.
func CurrentBranch(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD")
		return "", nil
	}
	return head.Name().Short(), nil
}

// RepositoryRoot returns the absolute path of the worktree root.
func RepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// FetchAllRemotes fetches branch refs from every configured remote
// concurrently. Individual fetch failures are reported on stderr and turn
// the return value false; they do not abort the remaining fetches. SSH
// remotes are skipped when no SSH agent is available.
func FetchAllRemotes(ctx context.Context, dir string) (bool, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return false, err
	}

	remotes, err := repo.Remotes()
	if err != nil || len(remotes) == 0 {
		logDebug("[git] FetchAllRemotes: no remotes configured")
		return true, nil
	}

	var (
		mu           sync.Mutex
		allSucceeded = true
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, remote := range remotes {
		g.Go(func() error {
			if err := fetchRemote(ctx, repo, remote); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to fetch from remote %q: %v\n",
					remote.Config().Name, err)
				mu.Lock()
				allSucceeded = false
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	logDebug("[git] FetchAllRemotes: completed, all succeeded: %v", allSucceeded)
	return allSucceeded, nil
}

// fetchRemote fetches branch refs from a single remote.
func fetchRemote(ctx context.Context, repo *git.Repository, remote *git.Remote) error {
	remoteConfig := remote.Config()
	if len(remoteConfig.URLs) == 0 {
		return nil
	}
	url := remoteConfig.URLs[0]

	if isSSHURL(url) && os.Getenv("SSH_AUTH_SOCK") == "" {
		logDebug("[git] skipping remote %q: SSH URL without SSH agent", remoteConfig.Name)
		return nil
	}

	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteConfig.Name,
		Auth:       authForURL(url),
		Prune:      true,
		RefSpecs: []config.RefSpec{
			config.RefSpec("+refs/heads/*:refs/remotes/" + remoteConfig.Name + "/*"),
		},
	})
	if err == git.NoErrAlreadyUpToDate || ctx.Err() != nil {
		return nil
	}
	return err
}

// authForURL returns SSH agent auth for SSH remotes; HTTPS remotes rely on
// ambient credential helpers.
func authForURL(url string) transport.AuthMethod {
	if !isSSHURL(url) {
		return nil
	}
	auth, err := ssh.NewSSHAgentAuth("git")
	if err != nil {
		logDebug("[git] SSH agent auth failed: %v", err)
		return nil
	}
	return auth
}

func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}
