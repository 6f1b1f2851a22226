package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/factz/internal/app"
	"github.com/abhisek/factz/internal/coach"
	"github.com/abhisek/factz/internal/llm"
	"github.com/abhisek/factz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, resume bool) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		Drill:         cfg.Drill,
		EventRepo:     eventRepo,
		SnapshotRepo:  st.SnapshotRepo(),
		Recorder:      store.NewRecorder(st),
		Resume:        resume,
		LatestVersion: latestVersion(ctx),
	}

	provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Info().Msg("no LLM provider configured, memory tips disabled")
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
		fmt.Fprintln(os.Stderr, "Memory tips will be disabled.")
	default:
		opts.Coach = coach.NewService(provider, coach.DefaultConfig())
	}

	return app.Run(opts)
}
