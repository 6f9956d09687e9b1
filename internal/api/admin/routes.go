package admin

import (
	"database/sql"
	"net/http"

	"github.com/johnwards/storeseed/internal/api"
	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/metrics"
)

// RegisterRoutes registers all admin API endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, db *sql.DB, layout config.Layout, recorder *metrics.Recorder) {
	h := &Handler{db: db, layout: layout, recorder: recorder}

	mux.HandleFunc("POST /_storeseed/apply", h.Apply)
	mux.HandleFunc("POST /_storeseed/reset", h.Reset)
	mux.HandleFunc("GET /_storeseed/hierarchy", h.Hierarchy)
	mux.HandleFunc("GET /_storeseed/patches", h.Patches)
	mux.HandleFunc("GET "+api.HealthPath, h.Health)
	mux.Handle("GET "+api.MetricsPath, recorder.Handler())
}
