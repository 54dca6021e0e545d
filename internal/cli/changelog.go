package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/raveheart1/relkit/internal/changelog"
	"github.com/raveheart1/relkit/internal/config"
	"github.com/raveheart1/relkit/internal/errors"
	"github.com/raveheart1/relkit/internal/git"
	"github.com/raveheart1/relkit/internal/markdown"
	"github.com/raveheart1/relkit/internal/output"
)

var (
	changelogPathFlag   string
	changelogRulesFlag  string
	changelogStdoutFlag bool
	changelogSinceFlag  string
)

var changelogCmd = &cobra.Command{
	Use:   "changelog <version>",
	Short: "Add a changelog entry for the given version",
	Long: `Collect the commit subjects since the last tag, group them into sections
by conventional-commit style prefixes, and splice the rendered entry into the
changelog under a heading named after the version.

The version string is used verbatim as the section heading; relkit does not
compute or validate version numbers.

Examples:
  relkit changelog 1.4.0             # Write the entry into CHANGELOG.md
  relkit changelog 1.4.0 --stdout    # Print the entry instead of writing
  relkit changelog 1.4.0 --since v1.3.0`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runChangelog,
}

func init() {
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().StringVar(&changelogPathFlag, "path", "", "Changelog document to write into")
	changelogCmd.Flags().StringVar(&changelogRulesFlag, "rules", "", "YAML file with section grouping rules")
	changelogCmd.Flags().BoolVar(&changelogStdoutFlag, "stdout", false, "Print the rendered entry instead of writing the changelog")
	changelogCmd.Flags().StringVar(&changelogSinceFlag, "since", "", "Collect subjects since this ref instead of the last tag")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	version := args[0]
	if version == "" {
		return errors.NewArgumentError(
			"version must not be empty",
			"Pass the release version as the first argument, e.g. 'relkit changelog 1.4.0'",
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("path") {
		cfg.Changelog.Path = changelogPathFlag
	}

	if !git.IsRepository("") {
		errors.PrintError(notARepository())
		return NewExitError(ExitNotARepository)
	}

	ctx := cmd.Context()
	from := changelogSinceFlag
	if from == "" {
		from, err = rangeBase(cmd, cfg)
		if err != nil {
			return describeGitError(err)
		}
	}

	subjects, err := git.SubjectsSince(ctx, "", from, cfg.DefaultBranch)
	if err != nil {
		return describeGitError(err)
	}

	rules, err := sectionRules(cfg)
	if err != nil {
		return err
	}
	sections, err := changelog.GroupMessages(subjects, rules, cfg.Changelog.GroupOrder)
	if err != nil {
		return errors.Wrap(err, errors.Configuration,
			"Fix the invalid pattern in the section rules file")
	}

	entry := changelog.RenderEntry(time.Now().Format("2006-01-02"), sections)

	if changelogStdoutFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "## %s\n\n%s\n", version, entry)
		return nil
	}

	if err := markdown.WriteSection(cfg.Changelog.Path, version, entry); err != nil {
		return errors.Wrap(err, errors.Runtime,
			fmt.Sprintf("Check that %s is writable", cfg.Changelog.Path))
	}
	output.PrintSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("Added %s entry to %s", version, cfg.Changelog.Path))
	return nil
}

// rangeBase picks the starting ref for subject collection: the most recent
// tag when one exists, otherwise the root commit so the entry covers the
// whole history.
func rangeBase(cmd *cobra.Command, cfg *config.Configuration) (string, error) {
	ctx := cmd.Context()
	tag, err := git.LastTag(ctx, "")
	if err != nil {
		return "", err
	}
	if tag != "" {
		return tag, nil
	}
	return git.RootCommit(ctx, "", cfg.DefaultBranch)
}

// sectionRules loads grouping rules from the --rules flag, the configured
// rules file, or falls back to the built-in conventional-commit rules.
func sectionRules(cfg *config.Configuration) ([]changelog.SectionRule, error) {
	path := changelogRulesFlag
	if path == "" {
		path = cfg.Changelog.RulesFile
	}
	if path == "" {
		return changelog.DefaultRules(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration,
			fmt.Sprintf("Check that the rules file %s exists and is readable", path))
	}
	defer f.Close()

	rules, err := changelog.LoadRules(f)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration,
			fmt.Sprintf("invalid section rules in %s", path),
			"Rules are a YAML list of {title, patterns} entries")
	}
	return rules, nil
}
