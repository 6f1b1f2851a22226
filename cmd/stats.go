package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/factz/internal/insights"
	"github.com/abhisek/factz/internal/selector"
	"github.com/abhisek/factz/internal/store"
)

// missedLimit is the number of least-accurate facts listed.
const missedLimit = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the saved weight table and answer accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()

		saved, err := store.LatestDrillState(ctx, s.SnapshotRepo())
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if saved == nil {
			fmt.Fprintln(out, "No practice recorded yet. Run `factz` to start.")
			return nil
		}
		table, err := saved.Table()
		if err != nil {
			return fmt.Errorf("restore weight table: %w", err)
		}

		fmt.Fprintf(out, "Level %d after %d rounds\n\n", saved.Level, saved.Rounds)
		renderWeights(out, table)

		ws := insights.Analyze(table)
		fmt.Fprintf(out, "\nmean %.2f  median %.2f  sd %.2f  min %.1f  max %.1f\n",
			ws.Mean, ws.Median, ws.StdDev, ws.Min, ws.Max)
		fmt.Fprintf(out, "%d mastered, %d struggling of %d facts\n", ws.Mastered, ws.Struggling, ws.Count)

		facts, err := s.EventRepo().FactAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		renderMissed(out, facts)
		return nil
	},
}

// renderWeights prints the table as a grid, rows by columns.
func renderWeights(out io.Writer, table *selector.WeightTable) {
	n := table.Size()
	tw := tablewriter.NewWriter(out)

	header := make([]string, n+1)
	header[0] = "×"
	for c := 1; c <= n; c++ {
		header[c] = strconv.Itoa(c)
	}
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)

	for r := 1; r <= n; r++ {
		row := make([]string, n+1)
		row[0] = strconv.Itoa(r)
		for c := 1; c <= n; c++ {
			row[c] = fmt.Sprintf("%.1f", table.Weight(r, c))
		}
		tw.Append(row)
	}
	tw.Render()
}

// renderMissed lists the facts with the lowest accuracy.
func renderMissed(out io.Writer, facts []store.FactAccuracy) {
	var missed []store.FactAccuracy
	for _, f := range facts {
		if f.Correct < f.Attempts {
			missed = append(missed, f)
		}
	}
	if len(missed) == 0 {
		return
	}
	sort.SliceStable(missed, func(i, j int) bool {
		return missed[i].Accuracy() < missed[j].Accuracy()
	})
	if len(missed) > missedLimit {
		missed = missed[:missedLimit]
	}

	fmt.Fprintln(out, "\nMost missed")
	tw := tablewriter.NewWriter(out)
	tw.SetHeader([]string{"Fact", "Attempts", "Correct", "Accuracy"})
	for _, f := range missed {
		q := selector.Question{Row: f.Row, Col: f.Col}
		tw.Append([]string{
			q.String(),
			strconv.Itoa(f.Attempts),
			strconv.Itoa(f.Correct),
			fmt.Sprintf("%.0f%%", f.Accuracy()*100),
		})
	}
	tw.Render()
}
