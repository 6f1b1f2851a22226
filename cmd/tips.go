package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/factz/internal/coach"
	"github.com/abhisek/factz/internal/llm"
	"github.com/abhisek/factz/internal/selector"
)

var tipsCmd = &cobra.Command{
	Use:   "tips FACT...",
	Short: "Ask the LLM for memory tips on facts (no database)",
	Long: `Generate memory tips for the given facts, e.g. factz tips 7x8 6x9.

This is a stateless developer tool for checking tip quality: nothing is
recorded and no practice data is read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		facts := make([]selector.Question, 0, len(args))
		for _, a := range args {
			q, err := selector.ParseQuestion(a)
			if err != nil {
				return err
			}
			facts = append(facts, q)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		// No event sink: preview calls are not logged.
		provider, err := llm.NewProviderFromEnv(ctx, nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		cc := coach.DefaultConfig()
		cc.MaxFacts = len(facts)
		tips, err := coach.NewService(provider, cc).Tips(ctx, facts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Tips from %s\n\n", provider.ModelID())
		for _, t := range tips {
			fmt.Fprintf(out, "%-8s %s\n", t.Fact, t.Tip)
		}
		return nil
	},
}
