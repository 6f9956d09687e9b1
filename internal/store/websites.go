package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Website is the top tier of the tenant hierarchy, identified by its code.
type Website struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	SortOrder int    `json:"sortOrder"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// WebsiteStore defines the interface for website persistence.
type WebsiteStore interface {
	Get(ctx context.Context, id int64) (*Website, error)
	LoadByCode(ctx context.Context, code string) (*Website, error)
	List(ctx context.Context) ([]*Website, error)
	Save(ctx context.Context, w *Website) error
}

// SQLiteWebsiteStore implements WebsiteStore backed by SQLite.
type SQLiteWebsiteStore struct {
	db DBTX
}

// NewSQLiteWebsiteStore creates a new SQLiteWebsiteStore.
func NewSQLiteWebsiteStore(db DBTX) *SQLiteWebsiteStore {
	return &SQLiteWebsiteStore{db: db}
}

const websiteColumns = `id, code, name, is_default, sort_order, created_at, updated_at`

func scanWebsite(row interface{ Scan(...any) error }) (*Website, error) {
	var w Website
	if err := row.Scan(&w.ID, &w.Code, &w.Name, &w.IsDefault, &w.SortOrder, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Get retrieves a single website by id.
func (s *SQLiteWebsiteStore) Get(ctx context.Context, id int64) (*Website, error) {
	w, err := scanWebsite(s.db.QueryRowContext(ctx,
		`SELECT `+websiteColumns+` FROM websites WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get website: %w", err)
	}
	return w, nil
}

// LoadByCode retrieves a website by its unique code.
func (s *SQLiteWebsiteStore) LoadByCode(ctx context.Context, code string) (*Website, error) {
	w, err := scanWebsite(s.db.QueryRowContext(ctx,
		`SELECT `+websiteColumns+` FROM websites WHERE code = ?`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load website %q: %w", code, err)
	}
	return w, nil
}

// List returns all websites ordered by sort order, then id.
func (s *SQLiteWebsiteStore) List(ctx context.Context) ([]*Website, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+websiteColumns+` FROM websites ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Website
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

// Save inserts w when it has no id yet and assigns the new id, otherwise it
// updates the existing row.
func (s *SQLiteWebsiteStore) Save(ctx context.Context, w *Website) error {
	ts := now()

	if w.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO websites (code, name, is_default, sort_order, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			w.Code, w.Name, w.IsDefault, w.SortOrder, ts, ts,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("website code %q already exists: %w", w.Code, ErrConflict)
			}
			return fmt.Errorf("insert website: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		w.ID = id
		w.CreatedAt = ts
		w.UpdatedAt = ts
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE websites SET code = ?, name = ?, is_default = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		w.Code, w.Name, w.IsDefault, w.SortOrder, ts, w.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("website code %q already exists: %w", w.Code, ErrConflict)
		}
		return fmt.Errorf("update website %d: %w", w.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update website %d: %w", w.ID, ErrNotFound)
	}
	w.UpdatedAt = ts
	return nil
}
