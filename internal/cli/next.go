package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshiayush/changelog/internal/changelog"
	"github.com/joshiayush/changelog/internal/errors"
	"github.com/joshiayush/changelog/internal/git"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the version the next release would carry",
	Long: `Next runs the collection and filtering pipeline without writing
anything and prints the version each pending section would be assigned.

Prints nothing and exits successfully when there are no new entries.

Examples:
  changelog next
  changelog next -r ../repo -f pkg/parser`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNext(cmd)
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().StringVarP(&generateRepoFlag, "repo", "r", "", "Path to the git repository (default: current directory)")
	nextCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "", "Changelog file to diff against (default: CHANGELOG.md)")
	nextCmd.Flags().StringVarP(&generateURLFlag, "url", "u", "", "Repository URL for entry links (default: resolved from origin)")
	nextCmd.Flags().StringSliceVarP(&generateFollowFlag, "follow", "f", nil, "Restrict to commits touching a path; repeatable")
}

func runNext(cmd *cobra.Command) error {
	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	repo, err := git.Open(cfg.Repo)
	if err != nil {
		return errors.RepositoryNotFound(cfg.Repo)
	}

	url := cfg.URL
	if url == "" {
		url, err = repo.RemoteURL()
		if err != nil {
			return errors.MissingRemoteURL()
		}
	} else {
		url = git.NormalizeURL(url)
	}

	prior, err := changelog.LoadFile(cfg.Output)
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}

	generator := &changelog.Generator{Source: repo, URL: url, Follow: cfg.Follow}
	scopes, err := generator.Collect(cmd.Context())
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}

	tags, err := repo.Tags()
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}

	versioned, _ := changelog.Plan(scopes, changelog.Parse(prior), tags)
	for _, scope := range versioned {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", scope.Name, scope.Version)
	}
	return nil
}
