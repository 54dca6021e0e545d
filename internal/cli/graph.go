package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relkit/internal/config"
	"github.com/raveheart1/relkit/internal/errors"
	"github.com/raveheart1/relkit/internal/git"
	"github.com/raveheart1/relkit/internal/graph"
	"github.com/raveheart1/relkit/internal/markdown"
	"github.com/raveheart1/relkit/internal/output"
	"github.com/raveheart1/relkit/internal/progress"
)

var (
	graphReadmeFlag   string
	graphHeadingFlag  string
	graphStdoutFlag   bool
	graphReleasesFlag bool
	graphFetchFlag    bool
	graphWatchFlag    bool
	graphLimitFlag    int
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render a mermaid git graph into the README",
	Long: `Render the repository's branch/merge history as a mermaid gitGraph block
and splice it into the README under a named heading. Re-running replaces the
existing section in place; the rest of the document is left untouched.

Examples:
  relkit graph                   # Update the graph section in README.md
  relkit graph --stdout          # Print the mermaid block instead of writing
  relkit graph --releases        # Tag-focused release graph
  relkit graph --fetch           # Fetch remotes before rendering
  relkit graph --watch           # Re-render whenever the repository changes`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringVar(&graphReadmeFlag, "readme", "", "Document to write the graph section into")
	graphCmd.Flags().StringVar(&graphHeadingFlag, "heading", "", "Section heading the graph lives under")
	graphCmd.Flags().BoolVar(&graphStdoutFlag, "stdout", false, "Print the mermaid block instead of writing the README")
	graphCmd.Flags().BoolVar(&graphReleasesFlag, "releases", false, "Render a tag-focused release graph")
	graphCmd.Flags().BoolVar(&graphFetchFlag, "fetch", false, "Fetch all remotes before rendering")
	graphCmd.Flags().BoolVar(&graphWatchFlag, "watch", false, "Keep running and re-render when the repository changes")
	graphCmd.Flags().IntVar(&graphLimitFlag, "limit", 0, "Commit subject truncation threshold in runes")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGraphFlags(cmd, cfg)

	if !git.IsRepository("") {
		errors.PrintError(notARepository())
		return NewExitError(ExitNotARepository)
	}

	ctx := cmd.Context()
	if graphFetchFlag {
		if err := fetchRemotes(ctx, cmd); err != nil {
			return describeGitError(err)
		}
	}

	render := func() error { return renderGraphOnce(ctx, cmd, cfg) }
	if err := render(); err != nil {
		return err
	}

	if graphWatchFlag && !graphStdoutFlag {
		return watchRepository(ctx, cmd, render)
	}
	return nil
}

// applyGraphFlags folds explicit command-line flags over the loaded
// configuration.
func applyGraphFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("readme") {
		cfg.Graph.Readme = graphReadmeFlag
	}
	if cmd.Flags().Changed("heading") {
		cfg.Graph.Heading = graphHeadingFlag
	}
	if cmd.Flags().Changed("limit") {
		cfg.Graph.SubjectLimit = graphLimitFlag
	}
}

// renderGraphOnce builds the mermaid block and either prints it or splices
// it into the configured document.
func renderGraphOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration) error {
	text, err := buildGraphText(ctx, cfg)
	if err != nil {
		return describeGitError(err)
	}

	if graphStdoutFlag {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	if err := markdown.WriteSection(cfg.Graph.Readme, cfg.Graph.Heading, text); err != nil {
		return errors.Wrap(err, errors.Runtime,
			fmt.Sprintf("Check that %s is writable", cfg.Graph.Readme))
	}
	output.PrintUpdated(cmd.OutOrStdout(), cfg.Graph.Heading, cfg.Graph.Readme)
	return nil
}

// buildGraphText produces the rendered mermaid block for the configured
// graph mode. The full history graph reconstructs branch/merge topology from
// the decorated log; the release graph draws one commit per reachable tag.
func buildGraphText(ctx context.Context, cfg *config.Configuration) (string, error) {
	opts := graph.Options{
		MainBranch:   cfg.DefaultBranch,
		SubjectLimit: cfg.Graph.SubjectLimit,
	}

	if graphReleasesFlag {
		releases, err := collectReleases(ctx, cfg)
		if err != nil {
			return "", err
		}
		return graph.RenderMermaid(graph.BuildReleaseOps(releases, opts)), nil
	}

	lines, err := git.LogLines(ctx, "")
	if err != nil {
		return "", err
	}
	records, err := graph.ParseRecords(lines)
	if err != nil {
		return "", err
	}
	return graph.RenderMermaid(graph.BuildOps(records, opts)), nil
}

// collectReleases lists the tags merged into the default branch, newest
// first, capped at the configured maximum, with the subject of each tagged
// commit.
func collectReleases(ctx context.Context, cfg *config.Configuration) ([]graph.Release, error) {
	tags, err := git.MergedTags(ctx, "", cfg.DefaultBranch)
	if err != nil {
		return nil, err
	}
	if len(tags) > cfg.Graph.MaxReleases {
		tags = tags[:cfg.Graph.MaxReleases]
	}

	releases := make([]graph.Release, 0, len(tags))
	for _, tag := range tags {
		subject, err := git.Subject(ctx, "", tag)
		if err != nil {
			return nil, err
		}
		releases = append(releases, graph.Release{Tag: tag, Subject: subject})
	}
	return releases, nil
}

// fetchRemotes fetches all remotes, showing a spinner when attached to a
// terminal.
func fetchRemotes(ctx context.Context, cmd *cobra.Command) error {
	var s *spinner.Spinner
	if caps := progress.Detect(); caps.IsTTY {
		symbols := progress.SelectSymbols(caps)
		s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond)
		s.Suffix = " Fetching remotes..."
		s.Start()
	}

	ok, err := git.FetchAllRemotes(ctx, "")
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}
	if !ok {
		output.PrintWarning(cmd.ErrOrStderr(), "some remotes failed to fetch; the graph may be stale")
	}
	return nil
}

// describeGitError lifts engine and history-source failures into structured
// CLI errors with remediation hints.
func describeGitError(err error) error {
	var malformed *graph.MalformedRecordError
	if stderrors.As(err, &malformed) {
		return errors.Wrap(err, errors.Runtime,
			"A commit subject containing '|' cannot be represented in the log format",
			"Reword the offending commit subject, or exclude it from the queried range")
	}

	var source *git.HistorySourceError
	if stderrors.As(err, &source) {
		return errors.Wrap(err, errors.Repository,
			"Check that git is installed and the repository is readable")
	}
	return err
}

func notARepository() *errors.CLIError {
	return errors.NewRepositoryError(
		"not a git repository",
		"Run relkit from inside a git repository",
		"Or run 'git init' to create one",
	)
}
