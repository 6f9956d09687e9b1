package provision_test

import (
	"context"
	"time"

	"github.com/johnwards/storeseed/internal/store"
)

// memGateway is an in-memory gateway that logs every call and can fail or
// withhold ids on demand.
type memGateway struct {
	nextID     int64
	categories []*store.Category
	websites   map[string]*store.Website
	groups     map[int64]*store.Group
	stores     map[string]*store.StoreView

	calls []string

	failGroupSave error
	failStoreLoad error
	noStoreIDFor  map[string]bool
	withholdID    map[string]bool  // entity kind -> save succeeds without an id
	fixedIDs      map[string]int64 // entity kind -> id to assign on insert
}

func newMemGateway() *memGateway {
	return &memGateway{
		websites:     map[string]*store.Website{},
		groups:       map[int64]*store.Group{},
		stores:       map[string]*store.StoreView{},
		noStoreIDFor: map[string]bool{},
		withholdID:   map[string]bool{},
		fixedIDs:     map[string]int64{},
	}
}

func (m *memGateway) id(kind string) int64 {
	if id, ok := m.fixedIDs[kind]; ok {
		delete(m.fixedIDs, kind)
		return id
	}
	m.nextID++
	return m.nextID
}

type memCategories struct{ m *memGateway }

func (c memCategories) Find(_ context.Context, f store.CategoryFilter) ([]*store.Category, error) {
	c.m.calls = append(c.m.calls, "category.find")
	var out []*store.Category
	for _, cat := range c.m.categories {
		if cat.Name == f.Name && cat.Level == f.Level {
			cp := *cat
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (c memCategories) Save(_ context.Context, cat *store.Category) error {
	c.m.calls = append(c.m.calls, "category.save")
	if cat.ID == 0 && c.m.withholdID["category"] {
		return nil
	}
	if cat.ID == 0 {
		cat.ID = c.m.id("category")
		cp := *cat
		c.m.categories = append(c.m.categories, &cp)
		return nil
	}
	for i, existing := range c.m.categories {
		if existing.ID == cat.ID {
			cp := *cat
			c.m.categories[i] = &cp
			return nil
		}
	}
	return store.ErrNotFound
}

type memWebsites struct{ m *memGateway }

func (w memWebsites) LoadByCode(_ context.Context, code string) (*store.Website, error) {
	w.m.calls = append(w.m.calls, "website.load")
	site, ok := w.m.websites[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *site
	return &cp, nil
}

func (w memWebsites) Save(_ context.Context, site *store.Website) error {
	w.m.calls = append(w.m.calls, "website.save")
	if site.ID == 0 && w.m.withholdID["website"] {
		return nil
	}
	if site.ID == 0 {
		site.ID = w.m.id("website")
	}
	cp := *site
	w.m.websites[site.Code] = &cp
	return nil
}

type memGroups struct{ m *memGateway }

func (g memGroups) Get(_ context.Context, id int64) (*store.Group, error) {
	g.m.calls = append(g.m.calls, "group.get")
	grp, ok := g.m.groups[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *grp
	return &cp, nil
}

func (g memGroups) Find(_ context.Context, f store.GroupFilter) ([]*store.Group, error) {
	g.m.calls = append(g.m.calls, "group.find")
	var out []*store.Group
	for _, grp := range g.m.groups {
		if grp.Name == f.Name && grp.WebsiteID == f.WebsiteID {
			cp := *grp
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (g memGroups) Save(_ context.Context, grp *store.Group) error {
	g.m.calls = append(g.m.calls, "group.save")
	if g.m.failGroupSave != nil {
		return g.m.failGroupSave
	}
	if grp.ID == 0 && g.m.withholdID["group"] {
		return nil
	}
	if grp.ID == 0 {
		grp.ID = g.m.id("group")
	}
	cp := *grp
	g.m.groups[grp.ID] = &cp
	return nil
}

type memStores struct{ m *memGateway }

func (s memStores) LoadByCode(_ context.Context, code string) (*store.StoreView, error) {
	s.m.calls = append(s.m.calls, "store.load")
	if s.m.failStoreLoad != nil {
		return nil, s.m.failStoreLoad
	}
	v, ok := s.m.stores[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (s memStores) Save(_ context.Context, v *store.StoreView) error {
	s.m.calls = append(s.m.calls, "store.save")
	if s.m.noStoreIDFor[v.Code] {
		return nil
	}
	if v.ID == 0 {
		v.ID = s.m.id("store")
	}
	cp := *v
	s.m.stores[v.Code] = &cp
	return nil
}

type recordingObserver struct {
	resolved map[string]int
	skips    int
	runs     []error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{resolved: map[string]int{}}
}

func (o *recordingObserver) EntityResolved(kind, outcome string) {
	o.resolved[kind+"/"+outcome]++
}

func (o *recordingObserver) DefaultStoreSkipped() { o.skips++ }

func (o *recordingObserver) RunFinished(err error, _ time.Duration) {
	o.runs = append(o.runs, err)
}
