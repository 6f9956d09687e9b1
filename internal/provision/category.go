package provision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/johnwards/storeseed/internal/store"
)

// Defaults written to a freshly created root category.
const (
	categoryAvailableSortBy = "position,name"
	categoryDefaultSortBy   = "position"
	categoryDisplayMode     = "PRODUCTS"
	categoryGlobalStoreID   = 0
)

// EnsureRootCategory returns the id of the category named name at level,
// creating it under parentID when none exists. When several match, the one
// with the lowest id wins.
//
// A new category is written twice: the first save yields its id, the second
// stores the path "{parentID}/{id}" that depends on it.
func (p *Provisioner) EnsureRootCategory(ctx context.Context, name string, parentID int64, level int) (int64, error) {
	found, err := p.categories.Find(ctx, store.CategoryFilter{Name: name, Level: level})
	if err != nil {
		return 0, persistenceErr(KindCategory, "find", err)
	}
	if len(found) > 0 {
		c := found[0]
		if c.ID == 0 || c.Level != level {
			return 0, missingID(KindCategory)
		}
		p.resolved(KindCategory, false)
		slog.Debug("root category exists", "name", name, "id", c.ID)
		return c.ID, nil
	}

	c := &store.Category{
		ParentID:        parentID,
		Name:            name,
		Level:           level,
		Position:        p.layout.RootCategory.Position,
		IsActive:        true,
		IncludeInMenu:   true,
		AvailableSortBy: categoryAvailableSortBy,
		DefaultSortBy:   categoryDefaultSortBy,
		DisplayMode:     categoryDisplayMode,
		IsAnchor:        false,
		StoreID:         categoryGlobalStoreID,
	}
	if err := p.categories.Save(ctx, c); err != nil {
		return 0, persistenceErr(KindCategory, "save", err)
	}
	if c.ID == 0 {
		return 0, missingID(KindCategory)
	}

	c.Path = fmt.Sprintf("%d/%d", parentID, c.ID)
	if err := p.categories.Save(ctx, c); err != nil {
		return 0, persistenceErr(KindCategory, "save path of", err)
	}

	p.resolved(KindCategory, true)
	slog.Info("root category created", "name", name, "id", c.ID, "path", c.Path)
	return c.ID, nil
}
