package store

import (
	"context"
	"fmt"
	"strings"
)

// PatchRecord marks a data patch as applied.
type PatchRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AppliedAt string `json:"appliedAt"`
}

// PatchStore defines the interface for the applied-patch ledger.
type PatchStore interface {
	IsApplied(ctx context.Context, names ...string) (bool, error)
	Record(ctx context.Context, name string) error
	List(ctx context.Context) ([]*PatchRecord, error)
}

// SQLitePatchStore implements PatchStore backed by SQLite.
type SQLitePatchStore struct {
	db DBTX
}

// NewSQLitePatchStore creates a new SQLitePatchStore.
func NewSQLitePatchStore(db DBTX) *SQLitePatchStore {
	return &SQLitePatchStore{db: db}
}

// IsApplied reports whether any of names has been recorded.
func (s *SQLitePatchStore) IsApplied(ctx context.Context, names ...string) (bool, error) {
	if len(names) == 0 {
		return false, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM patch_list WHERE patch_name IN (`+placeholders+`)`, args...,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("check patch: %w", err)
	}
	return count > 0, nil
}

// Record marks name as applied.
func (s *SQLitePatchStore) Record(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO patch_list (patch_name, applied_at) VALUES (?, ?)`, name, now(),
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("patch %q already recorded: %w", name, ErrConflict)
		}
		return fmt.Errorf("record patch %q: %w", name, err)
	}
	return nil
}

// List returns all recorded patches in application order.
func (s *SQLitePatchStore) List(ctx context.Context) ([]*PatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, patch_name, applied_at FROM patch_list ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list patches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*PatchRecord
	for rows.Next() {
		var p PatchRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan patch: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}
