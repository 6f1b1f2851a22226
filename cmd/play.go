package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the practice app",
	Long: `Start the interactive practice app.

Each session starts from a fresh weight table unless --resume is given, in
which case it continues from the table saved after your last round.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resume, _ := cmd.Flags().GetBool("resume")
		return runApp(cmd, resume)
	},
}

func init() {
	playCmd.Flags().Bool("resume", false, "Continue from the last saved weight table")
}
