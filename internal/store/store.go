package store

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of *sql.DB and *sql.Tx the stores need, so the same
// stores run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Gateway holds one sub-store per persisted entity kind.
type Gateway struct {
	DB         DBTX
	Categories CategoryStore
	Websites   WebsiteStore
	Groups     GroupStore
	Stores     StoreViewStore
	Patches    PatchStore
}

// New creates a Gateway with all sub-stores bound to db.
func New(db DBTX) *Gateway {
	return &Gateway{
		DB:         db,
		Categories: NewSQLiteCategoryStore(db),
		Websites:   NewSQLiteWebsiteStore(db),
		Groups:     NewSQLiteGroupStore(db),
		Stores:     NewSQLiteStoreViewStore(db),
		Patches:    NewSQLitePatchStore(db),
	}
}

// hierarchyTables lists the data tables in foreign-key-safe deletion order.
var hierarchyTables = []string{
	"stores",
	"store_groups",
	"websites",
	"patch_list",
}

// Reset deletes every provisioned row, keeping only the tree root category,
// so that the hierarchy can be provisioned again from scratch.
func (g *Gateway) Reset(ctx context.Context) error {
	for _, table := range hierarchyTables {
		if _, err := g.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
			return fmt.Errorf("clear table %s: %w", table, err)
		}
	}
	if _, err := g.DB.ExecContext(ctx, `DELETE FROM categories WHERE id <> 1`); err != nil {
		return fmt.Errorf("clear table categories: %w", err)
	}
	return nil
}
