package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/factz/internal/config"
	"github.com/abhisek/factz/internal/logging"
	"github.com/abhisek/factz/internal/store"
)

var (
	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "factz",
	Short: "Adaptive times-table practice",
	Long: `Factz drills multiplication facts ten at a time. Facts you miss come back
more often, facts you know fade out, and a perfect round unlocks the next
factor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FACTZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides FACTZ_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and installs the logger.
func setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	opts := logging.Options{Level: c.Log.Level, File: c.Log.File}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts.Level = "debug"
		opts.Console = true
	}
	closer, err := logging.Setup(opts)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	logCloser = closer

	log.Debug().Str("command", cmd.CommandPath()).Msg("starting")
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FACTZ_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
