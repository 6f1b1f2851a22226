package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().QuerySessionSummaries(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
			return nil
		}

		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"Started", "Duration", "Rounds", "Correct", "Accuracy", "Level"})
		for _, sess := range sessions {
			accuracy := "—"
			if sess.Questions > 0 {
				accuracy = fmt.Sprintf("%.0f%%", float64(sess.Correct)/float64(sess.Questions)*100)
			}
			duration := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)
			if !sess.Ended() {
				duration = "unfinished"
			}
			tw.Append([]string{
				sess.StartedAt.Local().Format("2006-01-02 15:04"),
				duration,
				strconv.Itoa(sess.Rounds),
				fmt.Sprintf("%d/%d", sess.Correct, sess.Questions),
				accuracy,
				fmt.Sprintf("%d → %d", sess.StartLevel, sess.EndLevel),
			})
		}
		tw.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
