// Package autosave coalesces content-changed notifications into debounced
// writes and schedules attachment collection after each persisted change.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"desknotes/internal/contextutil"
	"desknotes/internal/gc"
	"desknotes/internal/metrics"
)

// ErrClosed is returned for changes submitted after Close.
var ErrClosed = errors.New("autosave pipeline is closed")

// ContentWriter persists note content. It is satisfied by storage.NoteRepo.
type ContentWriter interface {
	UpdateContent(ctx context.Context, id int64, content string) error
}

// OrphanCollector runs an attachment collection pass for a note.
// It is satisfied by *gc.Collector.
type OrphanCollector interface {
	CollectOrphans(ctx context.Context, noteID int64) (gc.Result, error)
}

// Config holds the quiescence windows of the pipeline.
type Config struct {
	// Debounce is how long a note must stay unchanged before pending content is written.
	Debounce time.Duration
	// GCDelay is how long after the last write a collection pass runs.
	GCDelay time.Duration
}

// noteState is the per-note bookkeeping. Fields other than writeMu and saved
// are guarded by Pipeline.mu.
type noteState struct {
	// writeMu serializes writes for the note; saved is guarded by it.
	writeMu sync.Mutex
	saved   *string

	pending   *string
	gen       uint64
	gcGen     uint64
	writing   bool
	saveTimer *time.Timer
	gcTimer   *time.Timer
}

// idle reports whether nothing is pending, running or scheduled for the note.
func (st *noteState) idle() bool {
	return st.pending == nil && !st.writing && st.saveTimer == nil && st.gcTimer == nil
}

// Pipeline debounces content writes per note.
type Pipeline struct {
	writer    ContentWriter
	collector OrphanCollector
	cfg       Config
	metrics   *metrics.Recorder
	// bgCtx carries the logger for timer-driven work.
	bgCtx context.Context

	mu     sync.Mutex
	notes  map[int64]*noteState
	closed bool
	// primed is the note last passed to Prime. Its state outlives idle
	// periods so repeated identical content keeps being skipped.
	primed int64

	// timers counts armed timers whose callbacks have not finished.
	timers sync.WaitGroup
}

// New creates a Pipeline. collector and rec may be nil.
func New(writer ContentWriter, collector OrphanCollector, cfg Config, rec *metrics.Recorder, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		writer:    writer,
		collector: collector,
		cfg:       cfg,
		metrics:   rec,
		bgCtx:     contextutil.WithLogger(context.Background(), logger.With("component", "autosave")),
		notes:     make(map[int64]*noteState),
	}
}

// Changed records the latest content of a note and restarts its debounce
// window. Only the content present when the window elapses is written.
func (p *Pipeline) Changed(noteID int64, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	st := p.stateLocked(noteID)
	st.pending = &content
	st.gen++
	gen := st.gen
	p.armLocked(&st.saveTimer, p.cfg.Debounce, func() {
		p.debounceElapsed(noteID, gen)
	})
	return nil
}

// Save persists content immediately, replacing anything pending.
func (p *Pipeline) Save(ctx context.Context, noteID int64, content string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	st := p.stateLocked(noteID)
	st.pending = &content
	st.gen++
	p.stopLocked(&st.saveTimer)
	p.mu.Unlock()

	return p.Flush(ctx, noteID)
}

// Flush writes any pending content for a note synchronously. Callers use it
// before switching away from a note.
func (p *Pipeline) Flush(ctx context.Context, noteID int64) error {
	p.mu.Lock()
	st, ok := p.notes[noteID]
	p.mu.Unlock()
	if !ok {
		return nil
	}
	return p.write(ctx, noteID, st)
}

// Prime sets the content known to be persisted for a note, so an unchanged
// notification right after opening it does not cause a write. The previously
// primed note is released once idle.
func (p *Pipeline) Prime(noteID int64, content string) {
	p.mu.Lock()
	prev := p.primed
	p.primed = noteID
	if prev != noteID {
		if old, ok := p.notes[prev]; ok {
			p.releaseLocked(prev, old)
		}
	}
	st := p.stateLocked(noteID)
	p.mu.Unlock()

	st.writeMu.Lock()
	st.saved = &content
	st.writeMu.Unlock()
}

// Forget drops pending content and timers for a note. Used when the note is deleted.
func (p *Pipeline) Forget(noteID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.notes[noteID]
	if !ok {
		return
	}
	st.pending = nil
	st.gen++
	p.stopLocked(&st.saveTimer)
	p.stopLocked(&st.gcTimer)
	delete(p.notes, noteID)
	if p.primed == noteID {
		p.primed = 0
	}
}

// Close flushes every pending write and cancels scheduled collection passes.
// It waits for running timer callbacks until ctx is done.
func (p *Pipeline) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	states := make(map[int64]*noteState, len(p.notes))
	for id, st := range p.notes {
		p.stopLocked(&st.saveTimer)
		p.stopLocked(&st.gcTimer)
		states[id] = st
	}
	p.mu.Unlock()

	var errs []error
	for id, st := range states {
		if err := p.write(ctx, id, st); err != nil {
			errs = append(errs, fmt.Errorf("note %d: %w", id, err))
		}
	}

	done := make(chan struct{})
	go func() {
		p.timers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}

func (p *Pipeline) debounceElapsed(noteID int64, gen uint64) {
	p.mu.Lock()
	st, ok := p.notes[noteID]
	if !ok || st.gen != gen {
		// Superseded by a newer change, a Save or a Forget.
		p.mu.Unlock()
		return
	}
	st.saveTimer = nil
	p.mu.Unlock()

	if err := p.write(p.bgCtx, noteID, st); err != nil {
		contextutil.LoggerFromContext(p.bgCtx).Error("debounced content write failed", "note_id", noteID, "error", err)
	}
}

// write persists the pending content of st. Writes for one note never
// overlap; a write that started earlier finishes before a later one reads
// the pending content, so the last content wins.
func (p *Pipeline) write(ctx context.Context, noteID int64, st *noteState) error {
	st.writeMu.Lock()
	defer st.writeMu.Unlock()

	p.mu.Lock()
	content := st.pending
	st.pending = nil
	if content == nil {
		p.releaseLocked(noteID, st)
		p.mu.Unlock()
		return nil
	}
	st.writing = true
	p.mu.Unlock()

	logger := contextutil.LoggerFromContext(ctx)
	if st.saved != nil && *st.saved == *content {
		p.metrics.ContentWrite("skipped")
		logger.DebugContext(ctx, "content unchanged, skipping write", "note_id", noteID)
		p.finishWrite(noteID, st, false)
		return nil
	}

	if err := p.writer.UpdateContent(ctx, noteID, *content); err != nil {
		p.mu.Lock()
		if st.pending == nil {
			// Keep it for the next flush unless newer content arrived meanwhile.
			st.pending = content
		}
		st.writing = false
		p.mu.Unlock()
		p.metrics.ContentWrite("failed")
		return fmt.Errorf("failed to persist content: %w", err)
	}

	st.saved = content
	p.metrics.ContentWrite("written")
	logger.DebugContext(ctx, "content persisted", "note_id", noteID, "bytes", len(*content))

	p.finishWrite(noteID, st, true)
	return nil
}

// finishWrite ends a write started by write. A persisted change (re)arms the
// collection timer, so a burst of writes yields one pass; otherwise the note
// state is released if nothing else is outstanding.
func (p *Pipeline) finishWrite(noteID int64, st *noteState, persisted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st.writing = false
	if persisted && p.collector != nil && !p.closed && p.notes[noteID] == st {
		st.gcGen++
		gen := st.gcGen
		p.armLocked(&st.gcTimer, p.cfg.GCDelay, func() {
			p.collectElapsed(noteID, st, gen)
		})
		return
	}
	p.releaseLocked(noteID, st)
}

func (p *Pipeline) collectElapsed(noteID int64, st *noteState, gen uint64) {
	logger := contextutil.LoggerFromContext(p.bgCtx)
	res, err := p.collector.CollectOrphans(p.bgCtx, noteID)
	if err != nil {
		logger.Warn("scheduled attachment collection failed", "note_id", noteID, "error", err)
	} else {
		logger.Debug("scheduled attachment collection finished", "note_id", noteID, "deleted", res.DeletedCount)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if st.gcGen != gen {
		// Rearmed by a later write.
		return
	}
	st.gcTimer = nil
	p.releaseLocked(noteID, st)
}

// releaseLocked drops the state of an idle note. A later change starts from a
// fresh state whose first write is never skipped. The primed note is kept.
func (p *Pipeline) releaseLocked(noteID int64, st *noteState) {
	if noteID == p.primed || p.notes[noteID] != st || !st.idle() {
		return
	}
	delete(p.notes, noteID)
}

func (p *Pipeline) stateLocked(noteID int64) *noteState {
	st, ok := p.notes[noteID]
	if !ok {
		st = &noteState{}
		p.notes[noteID] = st
	}
	return st
}

// armLocked replaces *t with a timer running fn after d.
func (p *Pipeline) armLocked(t **time.Timer, d time.Duration, fn func()) {
	p.stopLocked(t)
	p.timers.Add(1)
	*t = time.AfterFunc(d, func() {
		defer p.timers.Done()
		fn()
	})
}

// stopLocked cancels *t. A timer whose callback already started is left to finish.
func (p *Pipeline) stopLocked(t **time.Timer) {
	if *t != nil && (*t).Stop() {
		p.timers.Done()
	}
	*t = nil
}
