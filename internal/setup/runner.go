// Package setup applies data patches once each, in dependency order, inside
// a transaction per patch, and records them in the patch_list ledger.
package setup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/johnwards/storeseed/internal/store"
)

var (
	// ErrUnknownDependency is returned when a patch depends on a name that is
	// neither supplied to the runner nor already applied.
	ErrUnknownDependency = errors.New("unknown patch dependency")

	// ErrDependencyCycle is returned when patch dependencies form a cycle.
	ErrDependencyCycle = errors.New("patch dependency cycle")
)

// Patch is a one-shot data change. Dependencies name patches that must be
// applied first; Aliases are former names that count as this patch being
// applied.
type Patch interface {
	Name() string
	Dependencies() []string
	Aliases() []string
	Apply(ctx context.Context, g *store.Gateway) error
}

// Runner applies patches against db.
type Runner struct {
	db *sql.DB
}

// NewRunner creates a Runner.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// Run applies every pending patch and returns the names of those applied in
// this call. The first failing patch is rolled back and stops the run;
// patches committed before it stay applied.
func (r *Runner) Run(ctx context.Context, patches ...Patch) ([]string, error) {
	ordered, err := r.order(ctx, patches)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, p := range ordered {
		ok, err := r.apply(ctx, p)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, p.Name())
		}
	}
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, p Patch) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin patch %s: %w", p.Name(), err)
	}

	g := store.New(tx)
	names := append([]string{p.Name()}, p.Aliases()...)
	done, err := g.Patches.IsApplied(ctx, names...)
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("check patch %s: %w", p.Name(), err)
	}
	if done {
		_ = tx.Rollback()
		slog.Debug("patch already applied", "patch", p.Name())
		return false, nil
	}

	if err := p.Apply(ctx, g); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("apply patch %s: %w", p.Name(), err)
	}
	if err := g.Patches.Record(ctx, p.Name()); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit patch %s: %w", p.Name(), err)
	}

	slog.Info("patch applied", "patch", p.Name())
	return true, nil
}

// order sorts patches so every patch follows its dependencies, keeping the
// supplied order otherwise. A dependency outside the set must already be
// recorded as applied.
func (r *Runner) order(ctx context.Context, patches []Patch) ([]Patch, error) {
	byName := make(map[string]Patch, len(patches))
	for _, p := range patches {
		byName[p.Name()] = p
		for _, alias := range p.Aliases() {
			byName[alias] = p
		}
	}

	ledger := store.NewSQLitePatchStore(r.db)
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(patches))
	ordered := make([]Patch, 0, len(patches))

	var visit func(p Patch) error
	visit = func(p Patch) error {
		switch state[p.Name()] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrDependencyCycle, p.Name())
		}
		state[p.Name()] = visiting

		for _, dep := range p.Dependencies() {
			if d, ok := byName[dep]; ok {
				if err := visit(d); err != nil {
					return err
				}
				continue
			}
			applied, err := ledger.IsApplied(ctx, dep)
			if err != nil {
				return err
			}
			if !applied {
				return fmt.Errorf("%w: %s requires %s", ErrUnknownDependency, p.Name(), dep)
			}
		}

		state[p.Name()] = done
		ordered = append(ordered, p)
		return nil
	}

	for _, p := range patches {
		if err := visit(p); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
