package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshiayush/changelog/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "changelog %s (commit %s, built %s)\n",
			version.Version, version.Commit, version.BuildDate)
		if version.IsDevBuild() {
			fmt.Fprintln(cmd.OutOrStdout(), "development build; version info is set at release time")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
