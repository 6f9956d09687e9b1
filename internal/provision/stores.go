package provision

import (
	"context"
	"errors"
	"log/slog"

	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/store"
)

// StoreSpec describes one locale store to ensure.
type StoreSpec struct {
	Code      string
	Name      string
	Active    bool
	SortOrder int
}

// SpecsFromLayout converts layout stores to specs, keeping their order.
func SpecsFromLayout(stores []config.StoreLayout) []StoreSpec {
	specs := make([]StoreSpec, 0, len(stores))
	for _, s := range stores {
		specs = append(specs, StoreSpec{Code: s.Code, Name: s.Name, Active: s.Active, SortOrder: s.SortOrder})
	}
	return specs
}

// EnsureStores creates every store in specs that does not exist yet, in
// order, and returns the id resolved for the first spec whether it was found
// or created. That id is zero if the first store yielded none.
func (p *Provisioner) EnsureStores(ctx context.Context, websiteID, groupID int64, specs []StoreSpec) (int64, error) {
	ids, err := p.ensureStores(ctx, websiteID, groupID, specs)
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	return ids[0], nil
}

// ensureStores returns the id resolved for each spec, in spec order.
func (p *Provisioner) ensureStores(ctx context.Context, websiteID, groupID int64, specs []StoreSpec) ([]int64, error) {
	ids := make([]int64, 0, len(specs))
	for _, spec := range specs {
		id, err := p.ensureStore(ctx, websiteID, groupID, spec)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (p *Provisioner) ensureStore(ctx context.Context, websiteID, groupID int64, spec StoreSpec) (int64, error) {
	v, err := p.stores.LoadByCode(ctx, spec.Code)
	switch {
	case err == nil:
		p.resolved(KindStore, false)
		slog.Debug("store exists", "code", spec.Code, "id", v.ID)
		return v.ID, nil
	case !errors.Is(err, store.ErrNotFound):
		return 0, persistenceErr(KindStore, "load", err)
	}

	v = &store.StoreView{
		Code:      spec.Code,
		WebsiteID: websiteID,
		GroupID:   groupID,
		Name:      spec.Name,
		IsActive:  spec.Active,
		SortOrder: spec.SortOrder,
	}
	if err := p.stores.Save(ctx, v); err != nil {
		return 0, persistenceErr(KindStore, "save", err)
	}

	p.resolved(KindStore, true)
	slog.Info("store created", "code", spec.Code, "id", v.ID, "group_id", groupID)
	return v.ID, nil
}

// AssignDefaultStore points the group's default store at defaultStoreID.
//
// A zero id skips the assignment without error and the group keeps whatever
// default it had. The skip is logged and counted.
func (p *Provisioner) AssignDefaultStore(ctx context.Context, groupID, defaultStoreID int64) error {
	if defaultStoreID == 0 {
		p.report.DefaultStoreSkipped = true
		p.observer.DefaultStoreSkipped()
		slog.Warn("default store id unresolved, leaving store group default unset", "group_id", groupID)
		return nil
	}

	g, err := p.groups.Get(ctx, groupID)
	if err != nil {
		return persistenceErr(KindStoreGroup, "reload", err)
	}
	g.DefaultStoreID = defaultStoreID
	if err := p.groups.Save(ctx, g); err != nil {
		return persistenceErr(KindStoreGroup, "save default store of", err)
	}

	p.report.DefaultStoreID = defaultStoreID
	slog.Info("default store assigned", "group_id", groupID, "store_id", defaultStoreID)
	return nil
}
