package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/factz/internal/llm"
	"github.com/abhisek/factz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK"})
		rows := 0
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			tw.Append([]string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				ok,
			})
			rows++
		}
		if rows == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}
		tw.Render()
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printLLMEvent(out io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(out, "ID:        %d\n", e.ID)
	fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(out, "Model:     %s\n", e.Model)
	fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(out, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
	}

	sep := strings.Repeat("─", 60)
	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		body := part.body
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(out, "\n%s\n%s\n%s\n%s\n", sep, part.title, sep, body)
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()

		usage, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Usage by purpose")
		tw := tablewriter.NewWriter(out)
		tw.SetHeader([]string{"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms"})
		tw.SetAlignment(tablewriter.ALIGN_RIGHT)
		var calls, in, outTokens int
		for _, u := range usage {
			tw.Append([]string{
				u.Purpose,
				strconv.Itoa(u.Calls),
				strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens),
				strconv.Itoa(u.InputTokens + u.OutputTokens),
				strconv.Itoa(u.AvgLatencyMs),
			})
			calls += u.Calls
			in += u.InputTokens
			outTokens += u.OutputTokens
		}
		tw.SetFooter([]string{"Total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTokens), strconv.Itoa(in + outTokens), ""})
		tw.Render()

		models, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(models) > 0 {
			fmt.Fprintln(out, "\nEstimated cost (USD)")
			renderCosts(out, models)
		}
		return nil
	},
}

func renderCosts(out io.Writer, models []store.LLMModelUsage) {
	tw := tablewriter.NewWriter(out)
	tw.SetHeader([]string{"Model", "Calls", "Input", "Output", "Cost"})
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)

	var total float64
	var unknown []string
	for _, mu := range models {
		cost := "?"
		if mc := llm.LookupCost(mu.Model); mc != nil {
			c := mc.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unknown = append(unknown, mu.Model)
		}
		tw.Append([]string{
			truncate(mu.Model, 32),
			strconv.Itoa(mu.Calls),
			strconv.Itoa(mu.InputTokens),
			strconv.Itoa(mu.OutputTokens),
			cost,
		})
	}

	label := "Total"
	if len(unknown) > 0 {
		label = "Total (partial)"
	}
	tw.SetFooter([]string{label, "", "", "", formatCost(total)})
	tw.Render()

	if len(unknown) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. "+llm.PurposeTips+")")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
