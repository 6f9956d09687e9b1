// Package provision seeds the store hierarchy: a root category, a website, a
// store group and its locale stores. Every step finds the entity by its
// identity first and creates it only when absent, so re-running is a no-op.
package provision

import (
	"context"
	"log/slog"
	"time"

	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/metrics"
	"github.com/johnwards/storeseed/internal/store"
)

// Entity kinds used in reports and metrics.
const (
	KindCategory   = "category"
	KindWebsite    = "website"
	KindStoreGroup = "store_group"
	KindStore      = "store"
)

// CategoryRepository is the category persistence the provisioner needs.
type CategoryRepository interface {
	Find(ctx context.Context, filter store.CategoryFilter) ([]*store.Category, error)
	Save(ctx context.Context, c *store.Category) error
}

// WebsiteRepository is the website persistence the provisioner needs.
type WebsiteRepository interface {
	LoadByCode(ctx context.Context, code string) (*store.Website, error)
	Save(ctx context.Context, w *store.Website) error
}

// GroupRepository is the store group persistence the provisioner needs.
type GroupRepository interface {
	Get(ctx context.Context, id int64) (*store.Group, error)
	Find(ctx context.Context, filter store.GroupFilter) ([]*store.Group, error)
	Save(ctx context.Context, g *store.Group) error
}

// StoreRepository is the store view persistence the provisioner needs.
type StoreRepository interface {
	LoadByCode(ctx context.Context, code string) (*store.StoreView, error)
	Save(ctx context.Context, v *store.StoreView) error
}

// Observer receives provisioning events. *metrics.Recorder implements it.
type Observer interface {
	EntityResolved(kind, outcome string)
	DefaultStoreSkipped()
	RunFinished(err error, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) EntityResolved(string, string)    {}
func (nopObserver) DefaultStoreSkipped()             {}
func (nopObserver) RunFinished(error, time.Duration) {}

// Config wires a Provisioner to its collaborators.
type Config struct {
	Categories CategoryRepository
	Websites   WebsiteRepository
	Groups     GroupRepository
	Stores     StoreRepository
	Layout     config.Layout
	Observer   Observer // optional
}

// Report summarises one provisioning run.
type Report struct {
	RootCategoryID      int64          `json:"rootCategoryId"`
	WebsiteID           int64          `json:"websiteId"`
	GroupID             int64          `json:"groupId"`
	StoreIDs            []int64        `json:"storeIds"`
	DefaultStoreID      int64          `json:"defaultStoreId"`
	DefaultStoreSkipped bool           `json:"defaultStoreSkipped"`
	Created             map[string]int `json:"created"`
	Existing            map[string]int `json:"existing"`
}

// CreatedTotal returns the number of entities created during the run.
func (r Report) CreatedTotal() int {
	n := 0
	for _, c := range r.Created {
		n += c
	}
	return n
}

// Provisioner runs the find-or-create sequence. It is not safe for
// concurrent use.
type Provisioner struct {
	categories CategoryRepository
	websites   WebsiteRepository
	groups     GroupRepository
	stores     StoreRepository
	layout     config.Layout
	observer   Observer

	report Report
}

// New creates a Provisioner from cfg.
func New(cfg Config) *Provisioner {
	obs := cfg.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	return &Provisioner{
		categories: cfg.Categories,
		websites:   cfg.Websites,
		groups:     cfg.Groups,
		stores:     cfg.Stores,
		layout:     cfg.Layout,
		observer:   obs,
		report:     newReport(),
	}
}

// NewFromGateway creates a Provisioner backed by the sub-stores of g.
func NewFromGateway(g *store.Gateway, layout config.Layout, obs Observer) *Provisioner {
	return New(Config{
		Categories: g.Categories,
		Websites:   g.Websites,
		Groups:     g.Groups,
		Stores:     g.Stores,
		Layout:     layout,
		Observer:   obs,
	})
}

func newReport() Report {
	return Report{Created: map[string]int{}, Existing: map[string]int{}}
}

// Apply provisions the whole hierarchy top-down: root category, website,
// store group, stores. The first error aborts the run and is returned as a
// *Failure naming the step.
func (p *Provisioner) Apply(ctx context.Context) (Report, error) {
	start := time.Now()
	p.report = newReport()

	err := p.apply(ctx)
	p.observer.RunFinished(err, time.Since(start))
	if err != nil {
		slog.Error("store hierarchy provisioning failed", "error", err)
		return p.report, err
	}

	slog.Info("store hierarchy provisioned",
		"website_id", p.report.WebsiteID,
		"group_id", p.report.GroupID,
		"default_store_id", p.report.DefaultStoreID,
		"created", p.report.CreatedTotal(),
	)
	return p.report, nil
}

func (p *Provisioner) apply(ctx context.Context) error {
	rc := p.layout.RootCategory
	categoryID, err := p.EnsureRootCategory(ctx, rc.Name, rc.ParentID, rc.Level)
	if err != nil {
		return &Failure{Step: StepRootCategory, Err: err}
	}
	p.report.RootCategoryID = categoryID

	ws := p.layout.Website
	websiteID, err := p.EnsureWebsite(ctx, ws.Code, ws.Name, ws.SortOrder)
	if err != nil {
		return &Failure{Step: StepWebsite, Err: err}
	}
	p.report.WebsiteID = websiteID

	groupID, err := p.EnsureStoreGroup(ctx, p.layout.Group.Name, websiteID, categoryID)
	if err != nil {
		return &Failure{Step: StepStoreGroup, Err: err}
	}
	p.report.GroupID = groupID

	storeIDs, err := p.ensureStores(ctx, websiteID, groupID, SpecsFromLayout(p.layout.Stores))
	if err != nil {
		return &Failure{Step: StepStores, Err: err}
	}
	p.report.StoreIDs = storeIDs

	var defaultID int64
	if len(storeIDs) > 0 {
		defaultID = storeIDs[0]
	}

	if err := p.AssignDefaultStore(ctx, groupID, defaultID); err != nil {
		return &Failure{Step: StepDefaultStore, Err: err}
	}
	return nil
}

func (p *Provisioner) resolved(kind string, created bool) {
	if created {
		p.report.Created[kind]++
		p.observer.EntityResolved(kind, metrics.OutcomeCreated)
		return
	}
	p.report.Existing[kind]++
	p.observer.EntityResolved(kind, metrics.OutcomeExisting)
}
