package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const devVersion = "(devel)"

// version is set via -ldflags at build time.
var version = devVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "factz", version)
	},
}
