// Package cli implements the changelog command-line interface.
// Each subcommand lives in its own file and registers itself with the root
// command in init().
package cli

import (
	"github.com/spf13/cobra"

	"github.com/joshiayush/changelog/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Generate a versioned changelog from commit history",
	Long: `changelog turns conventional commit summaries into a versioned,
deduplicated CHANGELOG.md and merges newly discovered entries into an
existing file without duplicating or losing history.

Commits are classified by their summary prefix (feat:, fix:, docs:, ...);
a "!" before the ":" marks a breaking change. Each run appends a new
section carrying the semantic version the release must have given the mix
of changes found.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
// Structured CLI errors are printed with remediation guidance; everything
// else is printed as a runtime error.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	cliErr := errors.AsCLIError(err)
	if cliErr == nil {
		cliErr = errors.Wrap(err, errors.Runtime)
	}
	errors.PrintError(cliErr)

	if cliErr.Category == errors.Argument {
		return ExitInvalidArguments
	}
	return ExitFailure
}
