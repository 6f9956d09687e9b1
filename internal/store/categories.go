package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Category is a node of the catalog category tree. Path is the materialized
// chain of ancestor ids ending in the category's own id; it stays empty until
// the category has been saved once and has an id.
type Category struct {
	ID              int64  `json:"id"`
	ParentID        int64  `json:"parentId"`
	Name            string `json:"name"`
	Path            string `json:"path"`
	Level           int    `json:"level"`
	Position        int    `json:"position"`
	IsActive        bool   `json:"isActive"`
	IncludeInMenu   bool   `json:"includeInMenu"`
	AvailableSortBy string `json:"availableSortBy"`
	DefaultSortBy   string `json:"defaultSortBy"`
	DisplayMode     string `json:"displayMode"`
	IsAnchor        bool   `json:"isAnchor"`
	StoreID         int64  `json:"storeId"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// CategoryFilter selects categories by exact name and tree level.
type CategoryFilter struct {
	Name  string
	Level int
}

// CategoryStore defines the interface for category persistence.
type CategoryStore interface {
	Get(ctx context.Context, id int64) (*Category, error)
	Find(ctx context.Context, filter CategoryFilter) ([]*Category, error)
	Save(ctx context.Context, c *Category) error
}

// SQLiteCategoryStore implements CategoryStore backed by SQLite.
type SQLiteCategoryStore struct {
	db DBTX
}

// NewSQLiteCategoryStore creates a new SQLiteCategoryStore.
func NewSQLiteCategoryStore(db DBTX) *SQLiteCategoryStore {
	return &SQLiteCategoryStore{db: db}
}

const categoryColumns = `id, parent_id, name, path, level, position, is_active, include_in_menu,
	available_sort_by, default_sort_by, display_mode, is_anchor, store_id, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.ParentID, &c.Name, &c.Path, &c.Level, &c.Position, &c.IsActive, &c.IncludeInMenu,
		&c.AvailableSortBy, &c.DefaultSortBy, &c.DisplayMode, &c.IsAnchor, &c.StoreID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get retrieves a single category by id.
func (s *SQLiteCategoryStore) Get(ctx context.Context, id int64) (*Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Find returns the categories matching filter, lowest id first.
func (s *SQLiteCategoryStore) Find(ctx context.Context, filter CategoryFilter) ([]*Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ? AND level = ? ORDER BY id ASC`,
		filter.Name, filter.Level,
	)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

// Save inserts c when it has no id yet and assigns the new id, otherwise it
// updates the existing row.
func (s *SQLiteCategoryStore) Save(ctx context.Context, c *Category) error {
	ts := now()

	if c.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO categories (parent_id, name, path, level, position, is_active, include_in_menu,
				available_sort_by, default_sort_by, display_mode, is_anchor, store_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ParentID, c.Name, c.Path, c.Level, c.Position, c.IsActive, c.IncludeInMenu,
			c.AvailableSortBy, c.DefaultSortBy, c.DisplayMode, c.IsAnchor, c.StoreID, ts, ts,
		)
		if err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		c.ID = id
		c.CreatedAt = ts
		c.UpdatedAt = ts
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET parent_id = ?, name = ?, path = ?, level = ?, position = ?, is_active = ?,
			include_in_menu = ?, available_sort_by = ?, default_sort_by = ?, display_mode = ?, is_anchor = ?,
			store_id = ?, updated_at = ?
		 WHERE id = ?`,
		c.ParentID, c.Name, c.Path, c.Level, c.Position, c.IsActive,
		c.IncludeInMenu, c.AvailableSortBy, c.DefaultSortBy, c.DisplayMode, c.IsAnchor,
		c.StoreID, ts, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update category %d: %w", c.ID, ErrNotFound)
	}
	c.UpdatedAt = ts
	return nil
}
