package autosave

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desknotes/internal/gc"
	"desknotes/internal/metrics"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type write struct {
	noteID  int64
	content string
}

// recordingWriter records writes and can be told to fail or to block.
type recordingWriter struct {
	mu       sync.Mutex
	writes   []write
	fail     error
	inFlight atomic.Int32
	overlap  atomic.Bool
	delay    time.Duration
}

func (w *recordingWriter) UpdateContent(_ context.Context, id int64, content string) error {
	if w.inFlight.Add(1) > 1 {
		w.overlap.Store(true)
	}
	defer w.inFlight.Add(-1)
	if w.delay > 0 {
		time.Sleep(w.delay)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.writes = append(w.writes, write{noteID: id, content: content})
	return nil
}

func (w *recordingWriter) setFail(err error) {
	w.mu.Lock()
	w.fail = err
	w.mu.Unlock()
}

func (w *recordingWriter) snapshot() []write {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]write(nil), w.writes...)
}

type countingCollector struct {
	mu    sync.Mutex
	calls map[int64]int
}

func (c *countingCollector) CollectOrphans(_ context.Context, noteID int64) (gc.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[int64]int)
	}
	c.calls[noteID]++
	return gc.Result{}, nil
}

func (c *countingCollector) count(noteID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[noteID]
}

func newPipeline(t *testing.T, w ContentWriter, c OrphanCollector, cfg Config) *Pipeline {
	t.Helper()
	p := New(w, c, cfg, nil, discard)
	t.Cleanup(func() {
		_ = p.Close(context.Background())
	})
	return p
}

func TestChanged_CoalescesRapidUpdates(t *testing.T) {
	w := &recordingWriter{}
	p := newPipeline(t, w, nil, Config{Debounce: 30 * time.Millisecond})

	require.NoError(t, p.Changed(1, "<p>a</p>"))
	require.NoError(t, p.Changed(1, "<p>ab</p>"))
	require.NoError(t, p.Changed(1, "<p>abc</p>"))

	require.Eventually(t, func() bool { return len(w.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return len(w.snapshot()) > 1 }, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, []write{{noteID: 1, content: "<p>abc</p>"}}, w.snapshot())
}

func TestChanged_NotesDebounceIndependently(t *testing.T) {
	w := &recordingWriter{}
	p := newPipeline(t, w, nil, Config{Debounce: 20 * time.Millisecond})

	require.NoError(t, p.Changed(1, "one"))
	require.NoError(t, p.Changed(2, "two"))

	require.Eventually(t, func() bool { return len(w.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []write{{1, "one"}, {2, "two"}}, w.snapshot())
}

func TestFlush_WritesPendingImmediately(t *testing.T) {
	w := &recordingWriter{}
	p := newPipeline(t, w, nil, Config{Debounce: time.Hour})

	require.NoError(t, p.Changed(3, "draft"))
	require.NoError(t, p.Flush(context.Background(), 3))
	assert.Equal(t, []write{{3, "draft"}}, w.snapshot())

	// Nothing pending anymore.
	require.NoError(t, p.Flush(context.Background(), 3))
	assert.Len(t, w.snapshot(), 1)
}

func TestFlush_CancelsDebounceTimer(t *testing.T) {
	w := &recordingWriter{}
	p := newPipeline(t, w, nil, Config{Debounce: 30 * time.Millisecond})

	require.NoError(t, p.Changed(1, "x"))
	require.NoError(t, p.Flush(context.Background(), 1))

	assert.Never(t, func() bool { return len(w.snapshot()) > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestFlush_UnknownNote(t *testing.T) {
	w := &recordingWriter{}
	p := newPipeline(t, w, nil, Config{Debounce: time.Hour})

	require.NoError(t, p.Flush(context.Background(), 99))
	assert.Empty(t, w.snapshot())
}

func TestSave_SkipsIdenticalContent(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	w := &recordingWriter{}
	p := New(w, nil, Config{Debounce: time.Hour}, rec, discard)
	ctx := context.Background()

	p.Prime(1, "<p>same</p>")
	require.NoError(t, p.Save(ctx, 1, "<p>same</p>"))
	assert.Empty(t, w.snapshot())

	require.NoError(t, p.Save(ctx, 1, "<p>new</p>"))
	require.NoError(t, p.Save(ctx, 1, "<p>new</p>"))
	assert.Equal(t, []write{{1, "<p>new</p>"}}, w.snapshot())

	require.NoError(t, p.Close(ctx))
	expected := `
# HELP desknotes_autosave_writes_total Content persistence attempts, by result.
# TYPE desknotes_autosave_writes_total counter
desknotes_autosave_writes_total{result="skipped"} 2
desknotes_autosave_writes_total{result="written"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "desknotes_autosave_writes_total"))
}

func TestSave_FailureKeepsContentPending(t *testing.T) {
	w := &recordingWriter{}
	w.setFail(errors.New("disk I/O error"))
	p := newPipeline(t, w, nil, Config{Debounce: time.Hour})
	ctx := context.Background()

	err := p.Save(ctx, 1, "important")
	require.Error(t, err)

	w.setFail(nil)
	require.NoError(t, p.Flush(ctx, 1))
	assert.Equal(t, []write{{1, "important"}}, w.snapshot())
}

func TestSave_SerializesWritesPerNote(t *testing.T) {
	w := &recordingWriter{delay: 10 * time.Millisecond}
	p := newPipeline(t, w, nil, Config{Debounce: time.Hour})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = p.Save(context.Background(), 1, string(rune('a'+i)))
		}(i)
	}
	wg.Wait()

	assert.False(t, w.overlap.Load(), "writes for the same note must not overlap")
	assert.NotEmpty(t, w.snapshot())
}

func TestWrite_SchedulesOneCollectionPass(t *testing.T) {
	w := &recordingWriter{}
	c := &countingCollector{}
	p := newPipeline(t, w, c, Config{Debounce: time.Hour, GCDelay: 40 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, 1, "a"))
	require.NoError(t, p.Save(ctx, 1, "b"))
	require.NoError(t, p.Save(ctx, 1, "c"))

	require.Eventually(t, func() bool { return c.count(1) == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return c.count(1) > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestWrite_SkippedWriteDoesNotCollect(t *testing.T) {
	w := &recordingWriter{}
	c := &countingCollector{}
	p := newPipeline(t, w, c, Config{Debounce: time.Hour, GCDelay: 10 * time.Millisecond})

	p.Prime(1, "same")
	require.NoError(t, p.Save(context.Background(), 1, "same"))

	assert.Never(t, func() bool { return c.count(1) > 0 }, 60*time.Millisecond, 10*time.Millisecond)
}

func TestForget_DropsPendingState(t *testing.T) {
	w := &recordingWriter{}
	c := &countingCollector{}
	p := newPipeline(t, w, c, Config{Debounce: 20 * time.Millisecond, GCDelay: 20 * time.Millisecond})

	require.NoError(t, p.Changed(1, "unsaved"))
	p.Forget(1)

	assert.Never(t, func() bool { return len(w.snapshot()) > 0 }, 80*time.Millisecond, 10*time.Millisecond)
	require.NoError(t, p.Flush(context.Background(), 1))
	assert.Empty(t, w.snapshot())
	assert.Equal(t, 0, c.count(1))
}

func TestClose_FlushesPendingWrites(t *testing.T) {
	w := &recordingWriter{}
	c := &countingCollector{}
	p := New(w, c, Config{Debounce: time.Hour, GCDelay: time.Hour}, nil, discard)

	require.NoError(t, p.Changed(1, "one"))
	require.NoError(t, p.Changed(2, "two"))
	require.NoError(t, p.Close(context.Background()))

	assert.ElementsMatch(t, []write{{1, "one"}, {2, "two"}}, w.snapshot())
	assert.ErrorIs(t, p.Changed(1, "late"), ErrClosed)
	assert.ErrorIs(t, p.Save(context.Background(), 1, "late"), ErrClosed)
	assert.Equal(t, 0, c.count(1), "collection is not scheduled during shutdown")
}

func trackedNotes(p *Pipeline) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.notes)
}

func TestPipeline_ReleasesIdleNotes(t *testing.T) {
	w := &recordingWriter{}
	c := &countingCollector{}
	p := newPipeline(t, w, c, Config{Debounce: 5 * time.Millisecond, GCDelay: 10 * time.Millisecond})

	for id := int64(1); id <= 50; id++ {
		require.NoError(t, p.Changed(id, "draft"))
	}

	require.Eventually(t, func() bool { return len(w.snapshot()) == 50 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return trackedNotes(p) == 0 }, time.Second, 5*time.Millisecond)
	for id := int64(1); id <= 50; id++ {
		assert.Equal(t, 1, c.count(id), "note %d", id)
	}
}

func TestPipeline_ReleasesAfterWriteWithoutCollector(t *testing.T) {
	w := &recordingWriter{}
	p := newPipeline(t, w, nil, Config{Debounce: time.Hour})
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, 1, "a"))
	assert.Equal(t, 0, trackedNotes(p))

	// A flush of an unknown note leaves nothing behind either.
	require.NoError(t, p.Flush(ctx, 2))
	assert.Equal(t, 0, trackedNotes(p))
}

func TestPipeline_KeepsStateWhileWorkIsOutstanding(t *testing.T) {
	w := &recordingWriter{}
	w.setFail(errors.New("disk I/O error"))
	c := &countingCollector{}
	p := newPipeline(t, w, c, Config{Debounce: time.Hour, GCDelay: time.Hour})
	ctx := context.Background()

	require.NoError(t, p.Changed(1, "pending"))
	assert.Equal(t, 1, trackedNotes(p), "armed debounce timer")

	require.Error(t, p.Flush(ctx, 1))
	assert.Equal(t, 1, trackedNotes(p), "failed write stays pending")

	w.setFail(nil)
	require.NoError(t, p.Flush(ctx, 1))
	assert.Equal(t, 1, trackedNotes(p), "collection pass still scheduled")
}

func TestPipeline_KeepsOnlyThePrimedNote(t *testing.T) {
	w := &recordingWriter{}
	p := newPipeline(t, w, nil, Config{Debounce: time.Hour})
	ctx := context.Background()

	p.Prime(1, "one")
	require.NoError(t, p.Save(ctx, 1, "one v2"))
	assert.Equal(t, 1, trackedNotes(p))

	// Still skipped: the open note keeps what was last persisted.
	require.NoError(t, p.Save(ctx, 1, "one v2"))
	assert.Len(t, w.snapshot(), 1)

	p.Prime(2, "two")
	assert.Equal(t, 1, trackedNotes(p), "switching notes releases the previous one")

	p.Forget(2)
	assert.Equal(t, 0, trackedNotes(p))
}
