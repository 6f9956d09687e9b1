package provision

import (
	"context"
	"log/slog"

	"github.com/johnwards/storeseed/internal/store"
)

// EnsureStoreGroup returns the id of the group named name within websiteID,
// creating it linked to rootCategoryID when none exists. The default store
// is left unset on creation.
func (p *Provisioner) EnsureStoreGroup(ctx context.Context, name string, websiteID, rootCategoryID int64) (int64, error) {
	found, err := p.groups.Find(ctx, store.GroupFilter{Name: name, WebsiteID: websiteID})
	if err != nil {
		return 0, persistenceErr(KindStoreGroup, "find", err)
	}
	if len(found) > 0 {
		if found[0].ID == 0 {
			return 0, missingID(KindStoreGroup)
		}
		p.resolved(KindStoreGroup, false)
		slog.Debug("store group exists", "name", name, "id", found[0].ID)
		return found[0].ID, nil
	}

	g := &store.Group{
		WebsiteID:      websiteID,
		Name:           name,
		RootCategoryID: rootCategoryID,
	}
	if err := p.groups.Save(ctx, g); err != nil {
		return 0, persistenceErr(KindStoreGroup, "save", err)
	}
	if g.ID == 0 {
		return 0, missingID(KindStoreGroup)
	}

	p.resolved(KindStoreGroup, true)
	slog.Info("store group created", "name", name, "id", g.ID, "website_id", websiteID)
	return g.ID, nil
}
