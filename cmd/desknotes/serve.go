package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"desknotes/internal/http"
)

var (
	serveAddr       string
	serveGCOnStart  bool
	shutdownTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes API for the UI host",
	Long: `Opens the database and attachments directory and serves the notes API
on a loopback address. On SIGINT or SIGTERM the server stops accepting
requests and every pending content change is written before exit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg)
		if err != nil {
			fatal("failed to start", err)
		}

		addr := cfg.APIAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		router := http.NewRouter(&http.Deps{
			NotesService:    a.service,
			Attachments:     a.store,
			DB:              a.db,
			AttachmentsRoot: a.store.Root(),
			AllowedOrigins:  cfg.UIOrigins,
			Gatherer:        a.registry,
		})
		server := &nethttp.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if serveGCOnStart {
			// Sweep files left behind by a previous run that exited before
			// its delayed collection fired.
			a.startSweep(ctx)
		}

		serveErr := make(chan error, 1)
		go func() {
			slog.Info("Starting API server", "addr", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				stop()
				_ = a.close(context.Background())
				fatal("API server failed", err)
			}
		case <-ctx.Done():
			slog.Info("Shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("API server shutdown incomplete", "error", err)
		}
		if err := a.close(shutdownCtx); err != nil {
			fatal("failed to shut down cleanly", err)
		}
		slog.Info("Shutdown complete")
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides API_ADDR)")
	serveCmd.Flags().BoolVar(&serveGCOnStart, "gc-on-start", true, "collect orphaned attachments of every note at startup")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "time allowed for flushing pending content on exit")
	rootCmd.AddCommand(serveCmd)
}
