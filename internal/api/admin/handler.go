package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/johnwards/storeseed/internal/api"
	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/metrics"
	"github.com/johnwards/storeseed/internal/provision"
	"github.com/johnwards/storeseed/internal/setup"
	"github.com/johnwards/storeseed/internal/store"
)

// Handler serves the admin API at /_storeseed/.
type Handler struct {
	db       *sql.DB
	layout   config.Layout
	recorder *metrics.Recorder
}

// ApplyResult is the body returned by Apply and Reset. Report is nil when the
// hierarchy patch was already recorded and nothing ran.
type ApplyResult struct {
	Applied []string          `json:"applied"`
	Report  *provision.Report `json:"report,omitempty"`
}

// Apply provisions the hierarchy unless it has already been applied.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	result, err := h.apply(r.Context())
	if err != nil {
		writeApplyError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, result)
}

// Reset deletes the provisioned hierarchy and patch ledger, then provisions
// again from scratch.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := ResetData(ctx, h.db); err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(fmt.Sprintf("failed to reset: %s", err), api.CorrelationID(ctx)))
		return
	}

	result, err := h.apply(ctx)
	if err != nil {
		writeApplyError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, result)
}

// Hierarchy returns the website → group → store tree.
func (h *Handler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	tree, err := store.New(h.db).Hierarchy(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(fmt.Sprintf("load hierarchy: %s", err), api.CorrelationID(r.Context())))
		return
	}
	api.WriteJSON(w, http.StatusOK, tree)
}

// Patches lists the applied-patch ledger.
func (h *Handler) Patches(w http.ResponseWriter, r *http.Request) {
	records, err := store.New(h.db).Patches.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(fmt.Sprintf("list patches: %s", err), api.CorrelationID(r.Context())))
		return
	}
	out := make([]store.PatchRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, *rec)
	}
	api.WriteJSON(w, http.StatusOK, api.Results[store.PatchRecord]{Results: out})
}

// Health reports that the server and its database are reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		api.WriteError(w, http.StatusServiceUnavailable,
			api.NewInternalError(fmt.Sprintf("database unreachable: %s", err), api.CorrelationID(r.Context())))
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) apply(ctx context.Context) (*ApplyResult, error) {
	patch := provision.NewPatch(h.layout, h.recorder)
	applied, err := setup.NewRunner(h.db).Run(ctx, patch)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Applied: applied}
	if result.Applied == nil {
		result.Applied = []string{}
	}
	if len(applied) > 0 {
		report := patch.Report()
		result.Report = &report
	}
	return result, nil
}

func writeApplyError(w http.ResponseWriter, r *http.Request, err error) {
	corrID := api.CorrelationID(r.Context())
	slog.Error("provisioning failed", "error", err, "correlation_id", corrID)

	var failure *provision.Failure
	if errors.As(err, &failure) {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewProvisioningError(err.Error(), string(failure.Step), corrID))
		return
	}
	api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
}

// ResetData clears the provisioned hierarchy and the patch ledger in one
// transaction.
func ResetData(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	if err := store.New(tx).Reset(ctx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
