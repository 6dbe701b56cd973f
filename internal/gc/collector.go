// Package gc removes attachment files that a note's content no longer references.
package gc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"desknotes/internal/attachments"
	"desknotes/internal/contextutil"
	"desknotes/internal/metrics"
	"desknotes/internal/storage"
)

// NoteSource provides note content for reference extraction.
// It is satisfied by storage.NoteRepo.
type NoteSource interface {
	List(ctx context.Context) ([]storage.Note, error)
	GetContent(ctx context.Context, id int64) (string, bool, error)
}

// FileStore is the attachment store as seen by the collector.
// It is satisfied by *attachments.Store.
type FileStore interface {
	Refs() attachments.Refs
	ListFiles(noteID int64) ([]attachments.StoredFile, error)
	RemoveFile(ctx context.Context, noteID int64, filename string) error
}

// Result reports what a collection pass did.
type Result struct {
	DeletedCount int
}

// Option configures a Collector.
type Option func(*Collector)

// WithGracePeriod keeps unreferenced files younger than d. This covers the
// window between storing a pasted image and the save that references it.
func WithGracePeriod(d time.Duration) Option {
	return func(c *Collector) {
		c.grace = d
	}
}

// WithMetrics records collection passes on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(c *Collector) {
		c.metrics = rec
	}
}

// Collector reconciles stored attachment files against note content.
// Overlapping passes for the same note share one run; different notes run
// independently.
type Collector struct {
	notes   NoteSource
	files   FileStore
	grace   time.Duration
	metrics *metrics.Recorder
	now     func() time.Time
	flight  singleflight.Group
}

// NewCollector creates a Collector.
func NewCollector(notes NoteSource, files FileStore, opts ...Option) *Collector {
	c := &Collector{
		notes: notes,
		files: files,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectOrphans deletes the files of a note that its current content does
// not reference. Individual deletion failures are logged and skipped, so the
// pass can simply be run again.
func (c *Collector) CollectOrphans(ctx context.Context, noteID int64) (Result, error) {
	v, err, shared := c.flight.Do(strconv.FormatInt(noteID, 10), func() (any, error) {
		return c.collect(ctx, noteID)
	})
	if shared {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "joined in-flight collection", "note_id", noteID)
	}
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (c *Collector) collect(ctx context.Context, noteID int64) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	content, _, err := c.notes.GetContent(ctx, noteID)
	if err != nil {
		c.metrics.GCRun(0, err)
		return Result{}, fmt.Errorf("failed to read note content: %w", err)
	}
	referenced := c.files.Refs().Referenced(noteID, content)

	files, err := c.files.ListFiles(noteID)
	if err != nil {
		c.metrics.GCRun(0, err)
		return Result{}, fmt.Errorf("failed to list attachments: %w", err)
	}

	now := c.now()
	var result Result
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			c.metrics.GCRun(result.DeletedCount, nil)
			return result, err
		}
		if _, ok := referenced[f.Name]; ok {
			continue
		}
		if c.grace > 0 && now.Sub(f.ModTime) < c.grace {
			logger.DebugContext(ctx, "keeping recent unreferenced attachment", "note_id", noteID, "filename", f.Name)
			continue
		}

		if err := c.files.RemoveFile(ctx, noteID, f.Name); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.WarnContext(ctx, "failed to delete orphaned attachment", "note_id", noteID, "filename", f.Name, "error", err)
			}
			continue
		}
		result.DeletedCount++
	}

	c.metrics.GCRun(result.DeletedCount, nil)
	if result.DeletedCount > 0 {
		logger.InfoContext(ctx, "collected orphaned attachments", "note_id", noteID, "deleted", result.DeletedCount, "referenced", len(referenced))
	}
	return result, nil
}

// CollectAll runs a pass for every note.
// Errors for individual notes are logged but don't stop the sweep.
func (c *Collector) CollectAll(ctx context.Context) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	notes, err := c.notes.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list notes: %w", err)
	}

	var (
		total      Result
		errorCount int
	)
	for _, note := range notes {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		res, err := c.CollectOrphans(ctx, note.ID)
		if err != nil {
			errorCount++
			logger.ErrorContext(ctx, "failed to collect note attachments", "note_id", note.ID, "error", err)
			continue
		}
		total.DeletedCount += res.DeletedCount
	}

	logger.InfoContext(ctx, "collection completed", "notes", len(notes), "deleted", total.DeletedCount, "errors", errorCount)

	if errorCount > 0 {
		return total, fmt.Errorf("collection completed with %d errors", errorCount)
	}
	return total, nil
}
