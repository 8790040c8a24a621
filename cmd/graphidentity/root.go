package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gcanossa/graphidentity/internal/config"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "graphidentity",
	Short: "graphidentity - identity persistence on a property graph",
	Long: `graphidentity persists identity entities (users, roles, claims,
logins) as nodes and relationships in a Neo4j property graph and maps
them back to typed values.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with the signal-aware context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "graphidentity.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(userCmd)
}

// loadConfig runs before any command, loading configuration and wiring
// the process logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loaded, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}
