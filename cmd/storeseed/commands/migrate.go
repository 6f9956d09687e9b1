package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/database"
)

// Migrate returns the command that applies pending schema migrations.
func Migrate(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			schema, err := database.Version(ctx, db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", schema)
			return nil
		},
	}
}
