package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gcanossa/graphidentity/internal/graph"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Verify connectivity to the graph engine",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provider, err := graph.NewProvider(cfg.Graph, slog.Default())
		if err != nil {
			return err
		}
		if err := provider.Connect(ctx); err != nil {
			return err
		}
		defer provider.Close(ctx)

		health := provider.Health(ctx)
		fmt.Printf("%s: %s\n", health.State, health.Message)
		return nil
	},
}
