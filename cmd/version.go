package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fetchit/pkg/version"
)

// versionCmd displays the current version of fetchit.
// The --short flag prints the version number only.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of fetchit",
	Long:  `Display the current version information of the fetchit CLI tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		if short {
			fmt.Fprintln(cmd.OutOrStdout(), v.Version)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	RootCmd.AddCommand(versionCmd)
}
