package setup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/johnwards/storeseed/internal/setup"
	"github.com/johnwards/storeseed/internal/store"
	"github.com/johnwards/storeseed/internal/testhelpers"
)

type fakePatch struct {
	name    string
	deps    []string
	aliases []string
	err     error
	calls   *[]string
	apply   func(ctx context.Context, g *store.Gateway) error
}

func (p *fakePatch) Name() string           { return p.name }
func (p *fakePatch) Dependencies() []string { return p.deps }
func (p *fakePatch) Aliases() []string      { return p.aliases }

func (p *fakePatch) Apply(ctx context.Context, g *store.Gateway) error {
	if p.calls != nil {
		*p.calls = append(*p.calls, p.name)
	}
	if p.apply != nil {
		if err := p.apply(ctx, g); err != nil {
			return err
		}
	}
	return p.err
}

func TestRunAppliesInDependencyOrder(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	var calls []string

	child := &fakePatch{name: "child", deps: []string{"parent"}, calls: &calls}
	parent := &fakePatch{name: "parent", calls: &calls}

	applied, err := setup.NewRunner(db).Run(context.Background(), child, parent)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(calls) != 2 || calls[0] != "parent" || calls[1] != "child" {
		t.Errorf("apply order = %v, want [parent child]", calls)
	}
	if len(applied) != 2 {
		t.Errorf("applied = %v, want 2 names", applied)
	}
}

func TestRunSkipsAppliedPatches(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	ctx := context.Background()
	var calls []string
	p := &fakePatch{name: "once", calls: &calls}

	r := setup.NewRunner(db)
	if _, err := r.Run(ctx, p); err != nil {
		t.Fatalf("first run: %v", err)
	}
	applied, err := r.Run(ctx, p)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second run applied %v, want none", applied)
	}
	if len(calls) != 1 {
		t.Errorf("patch applied %d times, want 1", len(calls))
	}
}

func TestRunAliasCountsAsApplied(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	ctx := context.Background()

	if err := store.NewSQLitePatchStore(db).Record(ctx, "old_name"); err != nil {
		t.Fatalf("record: %v", err)
	}

	var calls []string
	p := &fakePatch{name: "new_name", aliases: []string{"old_name"}, calls: &calls}
	if _, err := setup.NewRunner(db).Run(ctx, p); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("patch applied despite alias being recorded")
	}
}

func TestRunRollsBackFailedPatch(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	ctx := context.Background()
	cause := errors.New("boom")

	p := &fakePatch{
		name: "failing",
		err:  cause,
		apply: func(ctx context.Context, g *store.Gateway) error {
			return g.Websites.Save(ctx, &store.Website{Code: "tmp", Name: "Temp"})
		},
	}

	_, err := setup.NewRunner(db).Run(ctx, p)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}

	if _, err := store.NewSQLiteWebsiteStore(db).LoadByCode(ctx, "tmp"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected website write rolled back, got %v", err)
	}
	applied, err := store.NewSQLitePatchStore(db).IsApplied(ctx, "failing")
	if err != nil {
		t.Fatalf("is applied: %v", err)
	}
	if applied {
		t.Error("failed patch must not be recorded")
	}
}

func TestRunUnknownDependency(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)

	p := &fakePatch{name: "orphan", deps: []string{"missing"}}
	_, err := setup.NewRunner(db).Run(context.Background(), p)
	if !errors.Is(err, setup.ErrUnknownDependency) {
		t.Errorf("expected ErrUnknownDependency, got %v", err)
	}
}

func TestRunDependencyAlreadyRecorded(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	ctx := context.Background()

	if err := store.NewSQLitePatchStore(db).Record(ctx, "earlier"); err != nil {
		t.Fatalf("record: %v", err)
	}

	var calls []string
	p := &fakePatch{name: "later", deps: []string{"earlier"}, calls: &calls}
	if _, err := setup.NewRunner(db).Run(ctx, p); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(calls) != 1 {
		t.Errorf("patch applied %d times, want 1", len(calls))
	}
}

func TestRunDependencyCycle(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)

	a := &fakePatch{name: "a", deps: []string{"b"}}
	b := &fakePatch{name: "b", deps: []string{"a"}}
	_, err := setup.NewRunner(db).Run(context.Background(), a, b)
	if !errors.Is(err, setup.ErrDependencyCycle) {
		t.Errorf("expected ErrDependencyCycle, got %v", err)
	}
}
