package store

import (
	"context"
	"errors"
	"fmt"
)

// Hierarchy is a read-only snapshot of websites, their store groups and the
// stores under each group.
type Hierarchy struct {
	Websites []WebsiteNode `json:"websites"`
}

// WebsiteNode is a website with its store groups.
type WebsiteNode struct {
	Website
	Groups []GroupNode `json:"groups"`
}

// GroupNode is a store group with its root category and stores. RootCategory
// is nil when the referenced category no longer exists.
type GroupNode struct {
	Group
	RootCategory *Category   `json:"rootCategory"`
	Stores       []StoreView `json:"stores"`
}

// Hierarchy loads the full website → group → store tree.
func (g *Gateway) Hierarchy(ctx context.Context) (*Hierarchy, error) {
	websites, err := g.Websites.List(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := g.Groups.List(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := g.Stores.List(ctx)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int64][]StoreView)
	for _, s := range stores {
		byGroup[s.GroupID] = append(byGroup[s.GroupID], *s)
	}

	byWebsite := make(map[int64][]GroupNode)
	for _, grp := range groups {
		node := GroupNode{Group: *grp, Stores: byGroup[grp.ID]}
		if node.Stores == nil {
			node.Stores = []StoreView{}
		}
		cat, err := g.Categories.Get(ctx, grp.RootCategoryID)
		switch {
		case err == nil:
			node.RootCategory = cat
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("load root category %d: %w", grp.RootCategoryID, err)
		}
		byWebsite[grp.WebsiteID] = append(byWebsite[grp.WebsiteID], node)
	}

	h := &Hierarchy{Websites: make([]WebsiteNode, 0, len(websites))}
	for _, w := range websites {
		node := WebsiteNode{Website: *w, Groups: byWebsite[w.ID]}
		if node.Groups == nil {
			node.Groups = []GroupNode{}
		}
		h.Websites = append(h.Websites, node)
	}
	return h, nil
}
