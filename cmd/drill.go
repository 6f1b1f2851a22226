package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	core "github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/selector"
	"github.com/abhisek/factz/internal/store"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Practice in plain line mode (no full-screen UI)",
	Long: `Practice on stdin/stdout, one question per line.

Enter an answer and press Enter; leave it blank to skip. Type q to end the
session early and see the summary.`,
	RunE: runDrill,
}

func init() {
	drillCmd.Flags().IntP("rounds", "r", 0, "Stop after N rounds (0 = until you quit)")
	drillCmd.Flags().IntP("level", "l", 0, "Starting level (default from config)")
	drillCmd.Flags().Bool("classic", false, "Draw from the full table with no levels or damping")
	drillCmd.Flags().Uint64("seed", 0, "Random seed for reproducible rounds (0 = random)")
	drillCmd.Flags().Bool("resume", false, "Continue from the last saved weight table")
	drillCmd.Flags().Bool("no-save", false, "Do not record progress")
}

func runDrill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rounds, _ := cmd.Flags().GetInt("rounds")
	level, _ := cmd.Flags().GetInt("level")
	classic, _ := cmd.Flags().GetBool("classic")
	seed, _ := cmd.Flags().GetUint64("seed")
	resume, _ := cmd.Flags().GetBool("resume")
	noSave, _ := cmd.Flags().GetBool("no-save")

	c := *cfg
	if classic {
		c.SetVariant(selector.VariantClassic)
	}
	if level > 0 {
		c.Drill.StartLevel = level
	}

	var opts []core.Option
	if seed != 0 {
		opts = append(opts, core.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	if !noSave || resume {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if !noSave {
			opts = append(opts, core.WithRecorder(store.NewRecorder(st)))
		}
		if resume {
			saved, err := store.LatestDrillState(ctx, st.SnapshotRepo())
			if err != nil {
				return fmt.Errorf("load saved drill: %w", err)
			}
			if saved != nil {
				opts = append(opts, core.WithState(*saved))
			}
		}
	}

	d, err := core.New(c.Drill, opts...)
	if err != nil {
		return err
	}
	return playLines(ctx, d, rounds, cmd.InOrStdin(), cmd.OutOrStdout())
}

// playLines runs rounds of d on in/out until maxRounds is reached (0 means
// no limit), input ends, or the learner types q.
func playLines(ctx context.Context, d *core.Drill, maxRounds int, in io.Reader, out io.Writer) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)

	for round := 1; maxRounds == 0 || round <= maxRounds; round++ {
		if round > 1 {
			if _, err := d.Next(ctx); err != nil {
				return err
			}
		}

		batch := d.Current()
		fmt.Fprintf(out, "\n── Round %d · level %d ──\n", round, d.Level())

		answers, quit := readAnswers(scanner, out, batch)
		if quit {
			break
		}

		res, err := d.Submit(ctx, answers)
		if err != nil {
			return err
		}
		printRound(out, res, d.Config().Selector.MaxLevel)
	}

	printSummary(out, d.Finish(ctx))
	return nil
}

// readAnswers prompts for each question. quit is set when input ends or
// the learner types q before finishing the round.
func readAnswers(scanner *bufio.Scanner, out io.Writer, batch selector.Batch) (answers []string, quit bool) {
	answers = make([]string, batch.Len())
	for i, q := range batch.Questions {
		fmt.Fprintf(out, "%2d) %2d × %-2d = ", i+1, q.Row, q.Col)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return nil, true
		}
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "q") {
			return nil, true
		}
		answers[i] = text
	}
	return answers, false
}

func printRound(out io.Writer, res *core.RoundResult, maxLevel int) {
	fmt.Fprintln(out)
	for _, r := range res.Results {
		if r.Correct {
			fmt.Fprintf(out, "  ✓ %s = %d\n", r.Question, r.Expected)
			continue
		}
		given := r.Input
		if !r.Answered() {
			given = "—"
		}
		fmt.Fprintf(out, "  ✗ %s = %d  (you said %s)\n", r.Question, r.Expected, given)
	}

	switch {
	case res.LeveledUp():
		fmt.Fprintf(out, "\nPerfect round! Level up: now practicing up to %d × %d.\n", res.LevelAfter, res.LevelAfter)
	case res.AllCorrect && res.LevelAfter == maxLevel:
		fmt.Fprintln(out, "\nPerfect round at the top level!")
	default:
		fmt.Fprintf(out, "\n%d / %d correct.\n", res.Correct, res.Total)
	}
}

func printSummary(out io.Writer, sum core.SessionSummary) {
	fmt.Fprintln(out, "\n── Session summary ──")
	fmt.Fprintf(out, "Rounds:      %d\n", sum.Rounds)
	fmt.Fprintf(out, "Correct:     %d / %d (%.0f%%)\n", sum.Correct, sum.Questions, sum.Accuracy*100)
	fmt.Fprintf(out, "Level:       %d → %d\n", sum.StartLevel, sum.Level)
	fmt.Fprintf(out, "Best streak: %d\n", sum.BestStreak)
	if len(sum.Hardest) > 0 {
		facts := make([]string, len(sum.Hardest))
		for i, fw := range sum.Hardest {
			facts[i] = fw.Question.String()
		}
		fmt.Fprintf(out, "Keep practicing: %s\n", strings.Join(facts, ", "))
	}
}
