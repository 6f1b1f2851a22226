package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all learner data",
	Long:  "Erase sessions, rounds, answers and saved weight tables. LLM request logs are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()

		if !yes {
			fmt.Fprint(out, "This erases all practice history. Continue? [y/N] ")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Reset(context.Background()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(out, "All learner data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
