// Package cli wires the relkit commands: rendering the release graph into
// the README and generating categorized changelog entries from commit
// history.
package cli

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relkit/internal/config"
	"github.com/raveheart1/relkit/internal/errors"
	"github.com/raveheart1/relkit/internal/git"
	"github.com/raveheart1/relkit/internal/graph"
	"github.com/raveheart1/relkit/internal/history"
)

var (
	configFlag  string
	debugFlag   bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "relkit",
	Short: "Release bookkeeping for git repositories",
	Long: `relkit automates release bookkeeping for git repositories: it renders a
mermaid graph of the branch/merge history into your README and generates
categorized changelog entries from conventional commit subjects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			color.NoColor = true
		}
		if debugFlag {
			logger := func(format string, args ...any) {
				cmd.PrintErrf(format+"\n", args...)
			}
			git.SetDebugLogger(logger)
			graph.SetDebugLogger(logger)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default .relkit/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// Execute runs the root command, logs the invocation to the run history,
// and renders structured errors.
func Execute() error {
	start := time.Now()
	err := rootCmd.Execute()

	logInvocation(err, time.Since(start))

	if err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			errors.PrintError(cliErr)
		} else if _, ok := err.(*ExitError); !ok {
			rootCmd.PrintErrf("Error: %v\n", err)
		}
		return NewExitError(exitCodeFor(err))
	}
	return nil
}

// logInvocation appends this run to the project history file. Logging only
// happens when a .relkit state directory already exists, so running relkit
// in an arbitrary directory leaves nothing behind.
func logInvocation(err error, elapsed time.Duration) {
	stateDir := config.StateDir()
	if _, statErr := os.Stat(stateDir); statErr != nil {
		return
	}

	maxEntries := config.DefaultMaxHistoryEntries
	if cfg, cfgErr := config.Load(configFlag); cfgErr == nil {
		maxEntries = cfg.MaxHistoryEntries
	}

	command := "relkit"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	history.NewWriter(stateDir, maxEntries).LogCommand(command, exitCodeFor(err), elapsed)
}

// loadConfig loads configuration honoring the persistent --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check the syntax of .relkit/config.yml",
			"Run with --config to point at an explicit config file")
	}
	return cfg, nil
}
