package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/factz/internal/selfupdate"
)

// updateCheckTimeout bounds the release lookup done at TUI launch.
const updateCheckTimeout = 2 * time.Second

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update factz to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Fprintln(cmd.OutOrStdout(), p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(cmd.OutOrStdout(), "Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintln(cmd.OutOrStdout(), "Already running the latest version.")
			return nil
		case os.IsPermission(err):
			return fmt.Errorf("%w\n\nTry running: sudo factz update", err)
		}
		return err
	},
}

// latestVersion returns the newest release tag when it is newer than
// this build, or "" when there is none or the lookup fails.
func latestVersion(ctx context.Context) string {
	if version == devVersion {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	result, err := selfupdate.NewChecker(selfupdate.WithTimeout(updateCheckTimeout)).
		Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		log.Debug().Err(err).Msg("update check failed")
		return ""
	}
	if !result.UpdateAvailable {
		return ""
	}
	return result.LatestVersion
}
