package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Group is a store group: locale stores under one website sharing one root
// category. DefaultStoreID is zero until a default store has been assigned.
type Group struct {
	ID             int64  `json:"id"`
	WebsiteID      int64  `json:"websiteId"`
	Name           string `json:"name"`
	RootCategoryID int64  `json:"rootCategoryId"`
	DefaultStoreID int64  `json:"defaultStoreId"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// GroupFilter selects store groups by exact name within one website.
type GroupFilter struct {
	Name      string
	WebsiteID int64
}

// GroupStore defines the interface for store group persistence.
type GroupStore interface {
	Get(ctx context.Context, id int64) (*Group, error)
	Find(ctx context.Context, filter GroupFilter) ([]*Group, error)
	List(ctx context.Context) ([]*Group, error)
	Save(ctx context.Context, g *Group) error
}

// SQLiteGroupStore implements GroupStore backed by SQLite.
type SQLiteGroupStore struct {
	db DBTX
}

// NewSQLiteGroupStore creates a new SQLiteGroupStore.
func NewSQLiteGroupStore(db DBTX) *SQLiteGroupStore {
	return &SQLiteGroupStore{db: db}
}

const groupColumns = `id, website_id, name, root_category_id, default_store_id, created_at, updated_at`

func scanGroup(row interface{ Scan(...any) error }) (*Group, error) {
	var g Group
	var defaultStore sql.NullInt64
	if err := row.Scan(&g.ID, &g.WebsiteID, &g.Name, &g.RootCategoryID, &defaultStore, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.DefaultStoreID = defaultStore.Int64
	return &g, nil
}

// Get retrieves a single store group by id.
func (s *SQLiteGroupStore) Get(ctx context.Context, id int64) (*Group, error) {
	g, err := scanGroup(s.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM store_groups WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get store group: %w", err)
	}
	return g, nil
}

// Find returns the store groups matching filter, lowest id first.
func (s *SQLiteGroupStore) Find(ctx context.Context, filter GroupFilter) ([]*Group, error) {
	return s.query(ctx,
		`SELECT `+groupColumns+` FROM store_groups WHERE name = ? AND website_id = ? ORDER BY id ASC`,
		filter.Name, filter.WebsiteID,
	)
}

// List returns all store groups ordered by website, then id.
func (s *SQLiteGroupStore) List(ctx context.Context) ([]*Group, error) {
	return s.query(ctx, `SELECT `+groupColumns+` FROM store_groups ORDER BY website_id ASC, id ASC`)
}

func (s *SQLiteGroupStore) query(ctx context.Context, query string, args ...any) ([]*Group, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query store groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store group: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

// Save inserts g when it has no id yet and assigns the new id, otherwise it
// updates the existing row. A zero DefaultStoreID is stored as NULL.
func (s *SQLiteGroupStore) Save(ctx context.Context, g *Group) error {
	ts := now()

	if g.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO store_groups (website_id, name, root_category_id, default_store_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			g.WebsiteID, g.Name, g.RootCategoryID, nullableID(g.DefaultStoreID), ts, ts,
		)
		if err != nil {
			return fmt.Errorf("insert store group: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		g.ID = id
		g.CreatedAt = ts
		g.UpdatedAt = ts
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE store_groups SET website_id = ?, name = ?, root_category_id = ?, default_store_id = ?, updated_at = ?
		 WHERE id = ?`,
		g.WebsiteID, g.Name, g.RootCategoryID, nullableID(g.DefaultStoreID), ts, g.ID,
	)
	if err != nil {
		return fmt.Errorf("update store group %d: %w", g.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update store group %d: %w", g.ID, ErrNotFound)
	}
	g.UpdatedAt = ts
	return nil
}
