package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnwards/storeseed/internal/api"
	"github.com/johnwards/storeseed/internal/api/admin"
	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/metrics"
	"github.com/johnwards/storeseed/internal/provision"
	"github.com/johnwards/storeseed/internal/setup"
)

const shutdownTimeout = 10 * time.Second

// Serve returns the command that runs the admin HTTP server.
func Serve(cfg *config.Config) *cobra.Command {
	var applyOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, applyOnStart)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (env STORESEED_ADDR)")
	cmd.Flags().StringVar(&cfg.AuthToken, "auth-token", cfg.AuthToken, "bearer token for admin routes (env STORESEED_AUTH_TOKEN)")
	cmd.Flags().BoolVar(&applyOnStart, "apply", true, "provision the hierarchy before serving")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, applyOnStart bool) error {
	layout, err := loadLayout(cfg)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	recorder := metrics.NewRecorder()

	if applyOnStart {
		if _, err := setup.NewRunner(db).Run(ctx, provision.NewPatch(layout, recorder)); err != nil {
			return fmt.Errorf("provision hierarchy: %w", err)
		}
	}

	mux := http.NewServeMux()
	admin.RegisterRoutes(mux, db, layout, recorder)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			api.CorrelationID(r.Context()),
		))
	})

	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Auth(cfg.AuthToken),
		api.JSONContentType(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting storeseed server", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
