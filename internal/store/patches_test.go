package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/johnwards/storeseed/internal/store"
	"github.com/johnwards/storeseed/internal/testhelpers"
)

var _ store.PatchStore = (*store.SQLitePatchStore)(nil)

func TestPatchRecordAndIsApplied(t *testing.T) {
	s := store.NewSQLitePatchStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	applied, err := s.IsApplied(ctx, "create_hierarchy")
	if err != nil {
		t.Fatalf("is applied: %v", err)
	}
	if applied {
		t.Fatal("expected patch not applied yet")
	}

	if err := s.Record(ctx, "create_hierarchy"); err != nil {
		t.Fatalf("record: %v", err)
	}

	applied, err = s.IsApplied(ctx, "legacy_name", "create_hierarchy")
	if err != nil {
		t.Fatalf("is applied: %v", err)
	}
	if !applied {
		t.Error("expected patch applied under one of the names")
	}

	if err := s.Record(ctx, "create_hierarchy"); !errors.Is(err, store.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate record, got %v", err)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Name != "create_hierarchy" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestPatchIsAppliedNoNames(t *testing.T) {
	s := store.NewSQLitePatchStore(testhelpers.NewMigratedDB(t))

	applied, err := s.IsApplied(context.Background())
	if err != nil {
		t.Fatalf("is applied: %v", err)
	}
	if applied {
		t.Error("expected false for empty name list")
	}
}
