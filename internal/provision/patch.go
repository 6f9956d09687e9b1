package provision

import (
	"context"

	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/store"
)

// PatchName identifies the hierarchy patch in the applied-patch ledger.
const PatchName = "create_store_hierarchy"

// Patch adapts the provisioner to the setup runner: the runner opens the
// transaction and hands over a gateway bound to it.
type Patch struct {
	Layout   config.Layout
	Observer Observer

	report Report
}

// NewPatch returns a hierarchy patch for layout.
func NewPatch(layout config.Layout, obs Observer) *Patch {
	return &Patch{Layout: layout, Observer: obs}
}

// Name implements setup.Patch.
func (p *Patch) Name() string { return PatchName }

// Dependencies implements setup.Patch. The hierarchy has no predecessors.
func (p *Patch) Dependencies() []string { return nil }

// Aliases implements setup.Patch.
func (p *Patch) Aliases() []string { return nil }

// Apply provisions the hierarchy through g.
func (p *Patch) Apply(ctx context.Context, g *store.Gateway) error {
	report, err := NewFromGateway(g, p.Layout, p.Observer).Apply(ctx)
	p.report = report
	return err
}

// Report returns the report of the most recent Apply.
func (p *Patch) Report() Report { return p.report }
