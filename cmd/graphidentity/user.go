package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"gopkg.in/yaml.v3"

	"github.com/gcanossa/graphidentity/internal/graph"
	"github.com/gcanossa/graphidentity/internal/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect user entities in the graph",
}

var userFindCmd = &cobra.Command{
	Use:   "find <username>",
	Short: "Find a user by exact user name",
	Args:  cobra.ExactArgs(1),
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

		var users store.UserStore = store.NewGraphUserStore(provider)
		if cfg.Tracing.Enabled {
			users = store.NewTracedUserStore(users, otel.Tracer("graphidentity"))
		}

		user, ok, err := users.FindByName(ctx, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("user %q not found", args[0])
		}

		data, err := yaml.Marshal(user)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	userCmd.AddCommand(userFindCmd)
}
