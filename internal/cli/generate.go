package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joshiayush/changelog/internal/changelog"
	"github.com/joshiayush/changelog/internal/config"
	"github.com/joshiayush/changelog/internal/errors"
	"github.com/joshiayush/changelog/internal/git"
)

var (
	generateRepoFlag    string
	generateOutputFlag  string
	generateURLFlag     string
	generateFollowFlag  []string
	generateDryRunFlag  bool
	generateWatchFlag   bool
	generateVerboseFlag bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate or update the changelog from commit history",
	Long: `Generate walks the repository's commit history, classifies each commit
summary, drops entries the existing changelog already records, and writes
the new sections on top of the old content.

Each surviving scope gets a section header carrying the semantic version
the release must have: a breaking change bumps major, feat/add bump minor,
fix/perf/refactor bump patch, and docs/test/deprecated leave the version
unchanged.

Examples:
  changelog generate                      # whole repository, ./CHANGELOG.md
  changelog generate -r ../repo -o docs/CHANGELOG.md
  changelog generate -f pkg/parser -f pkg/render   # one section per path
  changelog generate --dry-run            # print instead of writing
  changelog generate --watch              # regenerate on new commits`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateRepoFlag, "repo", "r", "", "Path to the git repository (default: current directory)")
	generateCmd.Flags().StringVarP(&generateOutputFlag, "output", "o", "", "Changelog file path (default: CHANGELOG.md)")
	generateCmd.Flags().StringVarP(&generateURLFlag, "url", "u", "", "Repository URL for entry links (default: resolved from origin)")
	generateCmd.Flags().StringSliceVarP(&generateFollowFlag, "follow", "f", nil, "Restrict to commits touching a path; repeatable, one section per path")
	generateCmd.Flags().BoolVar(&generateDryRunFlag, "dry-run", false, "Print the generated document instead of writing it")
	generateCmd.Flags().BoolVar(&generateWatchFlag, "watch", false, "Keep running and regenerate when the repository changes")
	generateCmd.Flags().BoolVarP(&generateVerboseFlag, "verbose", "v", false, "Enable debug logging")
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		stderr := cmd.ErrOrStderr()
		git.SetDebugLogger(func(format string, args ...any) {
			fmt.Fprintf(stderr, format+"\n", args...)
		})
	}

	regenerate := func() error {
		return generateOnce(cmd.Context(), cfg, cmd.OutOrStdout(), generateDryRunFlag)
	}

	if err := regenerate(); err != nil {
		return err
	}

	if generateWatchFlag {
		return watchGenerate(cmd.Context(), cfg.Repo, cmd.ErrOrStderr(), regenerate)
	}
	return nil
}

// loadGenerateConfig merges the layered configuration with any flags set on
// the command line; flags win.
func loadGenerateConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration)
	}

	flags := cmd.Flags()
	if flags.Changed("repo") {
		cfg.Repo = generateRepoFlag
	}
	if flags.Changed("output") {
		cfg.Output = generateOutputFlag
	}
	if flags.Changed("url") {
		cfg.URL = generateURLFlag
	}
	if flags.Changed("follow") {
		cfg.Follow = generateFollowFlag
	}
	if flags.Changed("verbose") {
		cfg.Verbose = generateVerboseFlag
	}
	return cfg, nil
}

func generateOnce(ctx context.Context, cfg *config.Configuration, out io.Writer, dryRun bool) error {
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

	generator := &changelog.Generator{
		Source: repo,
		URL:    url,
		Follow: cfg.Follow,
	}

	spin := startSpinner("Collecting commit history...")
	document, err := generator.Run(ctx, prior)
	stopSpinner(spin)
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}

	if dryRun {
		fmt.Fprint(out, document)
		return nil
	}

	if err := changelog.WriteFile(cfg.Output, document); err != nil {
		return errors.InvalidOutputPath(cfg.Output, err)
	}
	fmt.Fprintf(out, "Wrote changelog to %s\n", cfg.Output)
	return nil
}

// startSpinner starts a progress spinner on stderr when it is a terminal.
// Returns nil otherwise; stopSpinner treats nil as a no-op.
func startSpinner(message string) *spinner.Spinner {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s
}

func stopSpinner(s *spinner.Spinner) {
	if s != nil {
		s.Stop()
	}
}
