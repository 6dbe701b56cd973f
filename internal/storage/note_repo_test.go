package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteIDs(notes []Note) []int64 {
	ids := make([]int64, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

func positions(t *testing.T, repo *NoteRepo) map[int64]int64 {
	t.Helper()
	notes, err := repo.List(context.Background())
	require.NoError(t, err)
	pos := make(map[int64]int64, len(notes))
	for _, n := range notes {
		pos[n.ID] = n.Position
	}
	return pos
}

func TestNoteRepo_Create(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	first, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, first.Title)
	assert.Nil(t, first.Content)
	assert.Equal(t, int64(1), first.Position)
	assert.False(t, first.CreatedAt.IsZero(), "Create() should return stored timestamps")
	assert.False(t, first.UpdatedAt.IsZero(), "Create() should return stored timestamps")

	second, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, int64(2), second.Position)

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID, first.ID}, noteIDs(notes), "newest first")
}

func TestNoteRepo_List_TotalOrder(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	rows := []struct {
		title     string
		position  int64
		createdAt string
	}{
		{"a", 5, "2024-01-01 10:00:00"},
		{"b", 5, "2024-01-02 10:00:00"}, // same position, newer
		{"c", 5, "2024-01-02 10:00:00"}, // same position and time, higher id
		{"d", 9, "2023-01-01 10:00:00"},
		{"e", 1, "2025-01-01 10:00:00"},
	}
	for _, r := range rows {
		_, err := db.Exec("INSERT INTO notes (title, position, created_at) VALUES (?, ?, ?)",
			r.title, r.position, r.createdAt)
		require.NoError(t, err)
	}

	var first []string
	for i := 0; i < 3; i++ {
		notes, err := repo.List(ctx)
		require.NoError(t, err)
		titles := make([]string, len(notes))
		for j, n := range notes {
			titles[j] = n.Title
		}
		if i == 0 {
			first = titles
			continue
		}
		require.Equal(t, first, titles, "List() must be deterministic")
	}

	assert.Equal(t, []string{"d", "c", "b", "a", "e"}, first)
}

func TestNoteRepo_Updates(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	note, err := repo.Create(ctx)
	require.NoError(t, err)

	tests := []struct {
		name   string
		update func() error
		check  func(t *testing.T, n Note)
	}{
		{
			name:   "update title",
			update: func() error { return repo.UpdateTitle(ctx, note.ID, "Groceries") },
			check: func(t *testing.T, n Note) {
				assert.Equal(t, "Groceries", n.Title)
			},
		},
		{
			name:   "update content",
			update: func() error { return repo.UpdateContent(ctx, note.ID, "<p>milk</p>") },
			check: func(t *testing.T, n Note) {
				require.NotNil(t, n.Content)
				assert.Equal(t, "<p>milk</p>", *n.Content)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock = clock.Add(time.Minute)
			require.NoError(t, tt.update())

			got, err := repo.Get(ctx, note.ID)
			require.NoError(t, err)
			tt.check(t, got)
			assert.True(t, got.UpdatedAt.Equal(clock), "UpdatedAt = %v, want %v", got.UpdatedAt, clock)
		})
	}
}

func TestNoteRepo_UpdateMissingIsNoop(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	assert.NoError(t, repo.UpdateTitle(ctx, 404, "ghost"))
	assert.NoError(t, repo.UpdateContent(ctx, 404, "<p>ghost</p>"))

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteRepo_GetContent(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	note, err := repo.Create(ctx)
	require.NoError(t, err)

	_, ok, err := repo.GetContent(ctx, note.ID)
	require.NoError(t, err)
	assert.False(t, ok, "new note has no content")

	require.NoError(t, repo.UpdateContent(ctx, note.ID, "<p>hi</p>"))
	before, err := repo.Get(ctx, note.ID)
	require.NoError(t, err)

	content, ok, err := repo.GetContent(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>hi</p>", content)

	after, err := repo.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.Equal(before.UpdatedAt), "GetContent() must not touch updated_at")

	_, ok, err = repo.GetContent(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, ok, "missing note has no content")
}

func TestNoteRepo_Delete(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	note, err := repo.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, note.ID))

	_, err = repo.Get(ctx, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Ids are never reused
	next, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.Greater(t, next.ID, note.ID)
}

func TestNoteRepo_Reorder(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	var created []int64
	for i := 0; i < 5; i++ {
		n, err := repo.Create(ctx)
		require.NoError(t, err)
		created = append(created, n.ID)
	}
	a, b, c, d, e := created[0], created[1], created[2], created[3], created[4]

	tests := []struct {
		name  string
		order []int64
		want  []int64
	}{
		{
			name:  "full permutation",
			order: []int64{b, d, a, e, c},
			want:  []int64{b, d, a, e, c},
		},
		{
			name:  "unknown ids are ignored",
			order: []int64{c, 999, e, a, d, b},
			want:  []int64{c, e, a, d, b},
		},
		{
			name:  "reverse",
			order: []int64{a, b, c, d, e},
			want:  []int64{a, b, c, d, e},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, repo.Reorder(ctx, tt.order))
			notes, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, noteIDs(notes))
		})
	}
}

func TestNoteRepo_ReorderPartialKeepsRest(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 4; i++ {
		n, err := repo.Create(ctx)
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	// Positions: ids[3]=4, ids[2]=3, ids[1]=2, ids[0]=1. Moving two notes to
	// positions 2 and 1 leaves the untouched ones above them.
	require.NoError(t, repo.Reorder(ctx, []int64{ids[0], ids[1]}))

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{ids[3], ids[2], ids[0], ids[1]}, noteIDs(notes))
}

func TestNoteRepo_ReorderFailureLeavesPositions(t *testing.T) {
	db, schema := newTestDB(t)
	repo := NewNoteRepo(db, schema)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 4; i++ {
		n, err := repo.Create(ctx)
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	before := positions(t, repo)

	// The third update of the batch aborts after two rows were already rewritten.
	_, err := db.Exec(fmt.Sprintf(`CREATE TRIGGER reject_position BEFORE UPDATE OF position ON notes
		WHEN NEW.id = %d BEGIN SELECT RAISE(ABORT, 'position rejected'); END`, ids[1]))
	require.NoError(t, err)

	err = repo.Reorder(ctx, []int64{ids[3], ids[0], ids[1], ids[2]})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position rejected")

	assert.Equal(t, before, positions(t, repo), "a failed reorder must not be partially applied")
}

func TestNoteRepo_ReorderRollsBackOnExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	repo := NewNoteRepo(db, Schema{HasPosition: true})

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("UPDATE notes SET position = ? WHERE id = ?")).WillBeClosed()
	prep.ExpectExec().WithArgs(int64(3), int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(int64(2), int64(11)).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err = repo.Reorder(context.Background(), []int64{10, 11, 12})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note 11")

	// No commit was issued and the third update never ran.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepo_WithoutPositions(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewNoteRepo(db, Schema{HasPosition: false})
	ctx := context.Background()

	first, err := repo.Create(ctx)
	require.NoError(t, err)
	second, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Position, "no positions without the column")

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID, first.ID}, noteIDs(notes), "creation order")

	assert.ErrorIs(t, repo.Reorder(ctx, []int64{first.ID, second.ID}), ErrPositionUnsupported)
}
