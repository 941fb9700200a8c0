package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vippsas/structgrep"
	"github.com/vippsas/structgrep/cache"
	"github.com/vippsas/structgrep/internal/log"
	"github.com/vippsas/structgrep/langs"
	"github.com/vippsas/structgrep/nfa"
)

var (
	cacheBackendFlag string
	cacheDSNFlag     string
	addrFlag         string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve structgrep compiles backed by a shared machine cache",
		RunE:  runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&cacheBackendFlag, "cache-backend", "", "postgres or mssql")
	serveCmd.Flags().StringVar(&cacheDSNFlag, "cache-dsn", "", "connection string for --cache-backend")
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

// runServe opens the configured backend, wraps it in a cache.Lookup,
// and serves GET /compile?pattern=...&lang=... over plain HTTP,
// returning the serialized machine. There is intentionally no matching
// endpoint here: matching runs file-local on whichever host has the
// source checked out, only the (expensive, shareable) compile step is
// centralized.
func runServe(cmd *cobra.Command, args []string) error {
	if cacheBackendFlag == "" || cacheDSNFlag == "" {
		return errors.New("serve requires --cache-backend and --cache-dsn")
	}

	var db cache.DB
	var err error
	switch cacheBackendFlag {
	case "postgres":
		db, err = cache.OpenPostgres(cacheDSNFlag)
	case "mssql":
		db, err = cache.OpenMSSQL(cacheDSNFlag)
	default:
		return fmt.Errorf("unknown --cache-backend %q: want postgres or mssql", cacheBackendFlag)
	}
	if err != nil {
		return err
	}

	backend, err := cache.NewBackend(db)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := backend.EnsureTable(ctx); err != nil {
		return err
	}

	logger := log.Logger()
	lookup := cache.NewLookup(backend, func(query string, opts langs.Options) (*nfa.Machine, error) {
		return structgrep.Compile(query, opts)
	}, logger)

	http.HandleFunc("/compile", func(w http.ResponseWriter, r *http.Request) {
		pattern := r.URL.Query().Get("pattern")
		ext := r.URL.Query().Get("lang")
		opts := langs.ForExtension(ext)

		machine, err := lookup.Machine(r.Context(), pattern, opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := cache.Marshal(machine)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(data)
	})

	logger.WithField("addr", addrFlag).Info("structgrep serve listening")
	return http.ListenAndServe(addrFlag, nil)
}
