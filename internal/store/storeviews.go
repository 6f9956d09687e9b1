package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// StoreView is a locale store: the finest configuration scope, belonging to
// exactly one store group.
type StoreView struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	WebsiteID int64  `json:"websiteId"`
	GroupID   int64  `json:"groupId"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// StoreViewStore defines the interface for store view persistence.
type StoreViewStore interface {
	Get(ctx context.Context, id int64) (*StoreView, error)
	LoadByCode(ctx context.Context, code string) (*StoreView, error)
	List(ctx context.Context) ([]*StoreView, error)
	Save(ctx context.Context, v *StoreView) error
}

// SQLiteStoreViewStore implements StoreViewStore backed by SQLite.
type SQLiteStoreViewStore struct {
	db DBTX
}

// NewSQLiteStoreViewStore creates a new SQLiteStoreViewStore.
func NewSQLiteStoreViewStore(db DBTX) *SQLiteStoreViewStore {
	return &SQLiteStoreViewStore{db: db}
}

const storeViewColumns = `id, code, website_id, group_id, name, is_active, sort_order, created_at, updated_at`

func scanStoreView(row interface{ Scan(...any) error }) (*StoreView, error) {
	var v StoreView
	if err := row.Scan(&v.ID, &v.Code, &v.WebsiteID, &v.GroupID, &v.Name, &v.IsActive, &v.SortOrder, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// Get retrieves a single store view by id.
func (s *SQLiteStoreViewStore) Get(ctx context.Context, id int64) (*StoreView, error) {
	v, err := scanStoreView(s.db.QueryRowContext(ctx,
		`SELECT `+storeViewColumns+` FROM stores WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return v, nil
}

// LoadByCode retrieves a store view by its unique code.
func (s *SQLiteStoreViewStore) LoadByCode(ctx context.Context, code string) (*StoreView, error) {
	v, err := scanStoreView(s.db.QueryRowContext(ctx,
		`SELECT `+storeViewColumns+` FROM stores WHERE code = ?`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load store %q: %w", code, err)
	}
	return v, nil
}

// List returns all store views ordered by group, sort order, then id.
func (s *SQLiteStoreViewStore) List(ctx context.Context) ([]*StoreView, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+storeViewColumns+` FROM stores ORDER BY group_id ASC, sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*StoreView
	for rows.Next() {
		v, err := scanStoreView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

// Save inserts v when it has no id yet and assigns the new id, otherwise it
// updates the existing row.
func (s *SQLiteStoreViewStore) Save(ctx context.Context, v *StoreView) error {
	ts := now()

	if v.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO stores (code, website_id, group_id, name, is_active, sort_order, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.Code, v.WebsiteID, v.GroupID, v.Name, v.IsActive, v.SortOrder, ts, ts,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("store code %q already exists: %w", v.Code, ErrConflict)
			}
			return fmt.Errorf("insert store: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		v.ID = id
		v.CreatedAt = ts
		v.UpdatedAt = ts
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE stores SET code = ?, website_id = ?, group_id = ?, name = ?, is_active = ?, sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		v.Code, v.WebsiteID, v.GroupID, v.Name, v.IsActive, v.SortOrder, ts, v.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("store code %q already exists: %w", v.Code, ErrConflict)
		}
		return fmt.Errorf("update store %d: %w", v.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update store %d: %w", v.ID, ErrNotFound)
	}
	v.UpdatedAt = ts
	return nil
}
