package commands

import (
	"github.com/spf13/cobra"

	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/store"
)

// Show returns the command that prints the provisioned hierarchy as JSON.
func Show(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the website, group and store hierarchy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			h, err := store.New(db).Hierarchy(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), h)
		},
	}
}
