package cli

import (
	errs "errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshiayush/changelog/internal/changelog"
	"github.com/joshiayush/changelog/internal/config"
	"github.com/joshiayush/changelog/internal/errors"
)

var (
	showLastFlag   int
	showPlainFlag  bool
	showFormatFlag string
	showFileFlag   string
)

var showCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Display entries from an existing changelog",
	Long: `Show re-parses an existing CHANGELOG.md and displays its entries.

By default, shows the 5 most recent entries. Pass a section name or a
version to see all of that section's entries, or use --last to control the
entry count. Use --format yaml for machine-readable output.

Examples:
  changelog show                 # 5 most recent entries
  changelog show v1.2.0          # all entries of the v1.2.0 section
  changelog show "All Changes"   # section by name (newest match)
  changelog show --last 10       # 10 most recent entries
  changelog show --format yaml   # whole document as YAML`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showLastFlag, "last", 5, "Number of entries to show")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	showCmd.Flags().StringVar(&showFormatFlag, "format", "text", "Output format: text or yaml")
	showCmd.Flags().StringVarP(&showFileFlag, "file", "F", "", "Changelog file to read (default: configured output)")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := showFileFlag
	if path == "" {
		cfg, err := config.Load("")
		if err != nil {
			return errors.Wrap(err, errors.Configuration)
		}
		path = cfg.Output
	}

	body, err := changelog.LoadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.Runtime)
	}
	doc := changelog.Parse(body)

	switch showFormatFlag {
	case "yaml":
		return showYAML(doc, cmd)
	case "text":
		// handled below
	default:
		return errors.NewArgumentError(
			fmt.Sprintf("unknown format %q", showFormatFlag),
			"Use --format text or --format yaml",
		)
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag}

	if len(args) == 1 {
		return showSection(doc, args[0], cmd, opts)
	}
	return showLastEntries(doc, showLastFlag, cmd, opts)
}

func showYAML(doc changelog.Document, cmd *cobra.Command) error {
	out, err := yaml.Marshal(doc.Export())
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func showSection(doc changelog.Document, key string, cmd *cobra.Command, opts changelog.FormatOptions) error {
	section, err := doc.Section(key)
	if err != nil {
		var notFound *changelog.SectionNotFoundError
		if errs.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Section %q not found.\n\n", key)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available sections:\n")
			for _, title := range doc.SectionTitles() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", title)
			}
			return err
		}
		return fmt.Errorf("finding section: %w", err)
	}

	return changelog.FormatSection(section, cmd.OutOrStdout(), opts)
}

func showLastEntries(doc changelog.Document, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	entries := doc.LastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := doc.EntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}
