package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"desknotes/internal/attachments"
	"desknotes/internal/autosave"
	"desknotes/internal/config"
	"desknotes/internal/gc"
	"desknotes/internal/metrics"
	"desknotes/internal/service"
	"desknotes/internal/storage"
)

// app is the wired object graph shared by the subcommands.
type app struct {
	db        *sql.DB
	registry  *prometheus.Registry
	notes     *storage.NoteRepo
	store     *attachments.Store
	collector *gc.Collector
	pipeline  *autosave.Pipeline
	service   service.NotesService

	sweeps sync.WaitGroup
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema, err := storage.Migrate(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath, "position_column", schema.HasPosition)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	noteRepo := storage.NewNoteRepo(db, schema)
	imageRepo := storage.NewImageRepo(db)

	store, err := attachments.NewStore(cfg.AttachmentsDir, attachments.NewRefs(cfg.AttachmentScheme), imageRepo, rec)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.Info("Attachments store ready", "root", store.Root(), "scheme", cfg.AttachmentScheme)

	collector := gc.NewCollector(noteRepo, store,
		gc.WithGracePeriod(cfg.GCGracePeriod),
		gc.WithMetrics(rec),
	)
	pipeline := autosave.New(noteRepo, collector, autosave.Config{
		Debounce: cfg.SaveDebounce,
		GCDelay:  cfg.GCDelay,
	}, rec, slog.Default())

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := service.NewNotesService(noteRepo, store, collector, pipeline, validate)

	return &app{
		db:        db,
		registry:  reg,
		notes:     noteRepo,
		store:     store,
		collector: collector,
		pipeline:  pipeline,
		service:   svc,
	}, nil
}

// startSweep collects orphaned attachments of every note in the background.
// The sweep stops early when ctx is cancelled; close waits for it.
func (a *app) startSweep(ctx context.Context) {
	a.sweeps.Add(1)
	go func() {
		defer a.sweeps.Done()
		slog.Info("Starting background attachment sweep")
		res, err := a.collector.CollectAll(ctx)
		if err != nil {
			slog.Error("Attachment sweep completed with errors", "error", err, "deleted", res.DeletedCount)
			return
		}
		slog.Info("Attachment sweep completed", "deleted", res.DeletedCount)
	}()
}

// waitSweeps blocks until background sweeps return or ctx expires.
func (a *app) waitSweeps(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.sweeps.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("attachment sweep still running: %w", ctx.Err())
	}
}

// close flushes pending content and waits for background sweeps before
// releasing the database.
func (a *app) close(ctx context.Context) error {
	var errs []error
	if err := a.pipeline.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush pending content: %w", err))
	}
	if err := a.waitSweeps(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	return errors.Join(errs...)
}
