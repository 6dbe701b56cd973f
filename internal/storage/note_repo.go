package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks desknotes/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrPositionUnsupported is returned by Reorder when the store could not be
	// migrated to carry note positions.
	ErrPositionUnsupported = errors.New("note positions are not available")
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// List returns all notes in display order: position, then creation time, then id, all descending.
	List(ctx context.Context) ([]Note, error)
	// Get returns a single note or ErrNotFound.
	Get(ctx context.Context, id int64) (Note, error)
	// Create inserts a note with the placeholder title on top of the list.
	Create(ctx context.Context) (Note, error)
	// UpdateTitle sets the title and refreshes updated_at. Unknown ids are a no-op.
	UpdateTitle(ctx context.Context, id int64, title string) error
	// UpdateContent sets the content and refreshes updated_at. Unknown ids are a no-op.
	UpdateContent(ctx context.Context, id int64, content string) error
	// Delete removes the note row. Attachments are left to the caller.
	Delete(ctx context.Context, id int64) error
	// GetContent returns the stored content without touching timestamps.
	// ok is false when the note is missing or has no content yet.
	GetContent(ctx context.Context, id int64) (content string, ok bool, err error)
	// Reorder assigns descending positions to ids in one transaction.
	Reorder(ctx context.Context, ids []int64) error
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db     *sql.DB
	schema Schema
	now    func() time.Time
}

// NewNoteRepo creates a new NoteRepo for a database migrated to schema.
func NewNoteRepo(db *sql.DB, schema Schema) *NoteRepo {
	return &NoteRepo{
		db:     db,
		schema: schema,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *NoteRepo) selectColumns() string {
	if r.schema.HasPosition {
		return "id, title, content, created_at, updated_at, position"
	}
	return "id, title, content, created_at, updated_at, NULL"
}

func (r *NoteRepo) orderClause() string {
	if r.schema.HasPosition {
		return "ORDER BY position DESC, created_at DESC, id DESC"
	}
	return "ORDER BY created_at DESC, id DESC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var (
		note     Note
		content  sql.NullString
		position sql.NullInt64
	)
	if err := row.Scan(&note.ID, &note.Title, &content, &note.CreatedAt, &note.UpdatedAt, &position); err != nil {
		return Note{}, err
	}
	if content.Valid {
		note.Content = &content.String
	}
	note.Position = position.Int64
	return note, nil
}

// List returns every note in display order.
func (r *NoteRepo) List(ctx context.Context) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+r.selectColumns()+" FROM notes "+r.orderClause())
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := []Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}

// Get returns the note with the given id.
// Returns ErrNotFound if it does not exist.
func (r *NoteRepo) Get(ctx context.Context, id int64) (Note, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+r.selectColumns()+" FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// Create inserts a new note above all existing ones and returns the stored row.
func (r *NoteRepo) Create(ctx context.Context) (Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Note{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := r.now()
	var result sql.Result
	if r.schema.HasPosition {
		var maxPos int64
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), 0) FROM notes").Scan(&maxPos); err != nil {
			return Note{}, fmt.Errorf("failed to read max position: %w", err)
		}
		result, err = tx.ExecContext(ctx,
			"INSERT INTO notes (title, created_at, updated_at, position) VALUES (?, ?, ?, ?)",
			DefaultTitle, now, now, maxPos+1,
		)
	} else {
		result, err = tx.ExecContext(ctx,
			"INSERT INTO notes (title, created_at, updated_at) VALUES (?, ?, ?)",
			DefaultTitle, now, now,
		)
	}
	if err != nil {
		return Note{}, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Note{}, fmt.Errorf("failed to read inserted id: %w", err)
	}

	note, err := scanNote(tx.QueryRowContext(ctx, "SELECT "+r.selectColumns()+" FROM notes WHERE id = ?", id))
	if err != nil {
		return Note{}, fmt.Errorf("failed to read inserted note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Note{}, fmt.Errorf("failed to commit note: %w", err)
	}
	return note, nil
}

// UpdateTitle sets a note's title.
func (r *NoteRepo) UpdateTitle(ctx context.Context, id int64, title string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE notes SET title = ?, updated_at = ? WHERE id = ?",
		title, r.now(), id,
	); err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}
	return nil
}

// UpdateContent sets a note's content.
func (r *NoteRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE notes SET content = ?, updated_at = ? WHERE id = ?",
		content, r.now(), id,
	); err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	return nil
}

// Delete removes a note row.
func (r *NoteRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// GetContent returns the content of a note.
func (r *NoteRepo) GetContent(ctx context.Context, id int64) (string, bool, error) {
	var content sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT content FROM notes WHERE id = ?", id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query content: %w", err)
	}
	return content.String, content.Valid, nil
}

// Reorder rewrites positions so that ids appear top to bottom in the given order.
// Ids not present in the store are ignored; notes not listed keep their positions.
func (r *NoteRepo) Reorder(ctx context.Context, ids []int64) error {
	if !r.schema.HasPosition {
		return ErrPositionUnsupported
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := assignPositions(ctx, tx, ids); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}
