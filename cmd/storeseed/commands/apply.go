package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/provision"
	"github.com/johnwards/storeseed/internal/setup"
)

// Apply returns the command that provisions the store hierarchy.
//
// The hierarchy is applied as a recorded data patch: once it has run against
// a database, later runs report it as already applied and change nothing.
func Apply(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Provision the store hierarchy",
		Long: `Provision the root category, website, store group and stores.

Every entity is looked up before it is created, and the whole hierarchy is
written in one transaction. Re-running against the same database is a no-op.

The hierarchy is recorded as the patch "create_store_hierarchy". Once that
patch is recorded, later runs skip it even when --layout names a different
layout; reset the hierarchy (POST /_storeseed/reset) to provision a new one.

Examples:
  # Provision the built-in B2B layout
  storeseed apply --db storeseed.db

  # Provision a custom layout
  storeseed apply --layout layout.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			layout, err := loadLayout(cfg)
			if err != nil {
				return err
			}

			db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			patch := provision.NewPatch(layout, nil)
			applied, err := setup.NewRunner(db).Run(ctx, patch)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already applied\n", provision.PatchName)
				if cfg.LayoutPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "layout %s was not applied: the recorded hierarchy is kept\n", cfg.LayoutPath)
				}
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), patch.Report())
		},
	}
}
