package provision

import (
	"context"
	"errors"
	"log/slog"

	"github.com/johnwards/storeseed/internal/store"
)

// EnsureWebsite returns the id of the website with code, creating a
// non-default website when none exists. An existing website is not modified.
func (p *Provisioner) EnsureWebsite(ctx context.Context, code, name string, sortOrder int) (int64, error) {
	w, err := p.websites.LoadByCode(ctx, code)
	switch {
	case err == nil:
		if w.ID == 0 {
			return 0, missingID(KindWebsite)
		}
		p.resolved(KindWebsite, false)
		slog.Debug("website exists", "code", code, "id", w.ID)
		return w.ID, nil
	case !errors.Is(err, store.ErrNotFound):
		return 0, persistenceErr(KindWebsite, "load", err)
	}

	w = &store.Website{
		Code:      code,
		Name:      name,
		IsDefault: false,
		SortOrder: sortOrder,
	}
	if err := p.websites.Save(ctx, w); err != nil {
		return 0, persistenceErr(KindWebsite, "save", err)
	}
	if w.ID == 0 {
		return 0, missingID(KindWebsite)
	}

	p.resolved(KindWebsite, true)
	slog.Info("website created", "code", code, "id", w.ID)
	return w.ID, nil
}
