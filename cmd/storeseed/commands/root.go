// Package commands defines the storeseed cobra commands.
package commands

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/johnwards/storeseed/internal/config"
	"github.com/johnwards/storeseed/internal/database"
)

// Root returns the root command. Persistent flags default to the values
// loaded from the environment.
func Root() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:           "storeseed",
		Short:         "Provision the B2B store hierarchy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (env STORESEED_DB)")
	flags.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "YAML hierarchy layout (env STORESEED_LAYOUT)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error (env STORESEED_LOG_LEVEL)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text, json or auto (env STORESEED_LOG_FORMAT)")

	cmd.AddCommand(Migrate(&cfg))
	cmd.AddCommand(Apply(&cfg))
	cmd.AddCommand(Show(&cfg))
	cmd.AddCommand(Serve(&cfg))
	cmd.AddCommand(Version())

	return cmd
}

func setupLogging(w io.Writer, level, format string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	format = strings.ToLower(format)
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "text"
		}
	}

	switch format {
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format %q (want text, json or auto)", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// openDB opens the configured database and brings its schema up to date.
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func loadLayout(cfg *config.Config) (config.Layout, error) {
	if cfg.LayoutPath == "" {
		return config.DefaultLayout(), nil
	}
	layout, err := config.LoadLayout(cfg.LayoutPath)
	if err != nil {
		return config.Layout{}, fmt.Errorf("load layout: %w", err)
	}
	return layout, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
