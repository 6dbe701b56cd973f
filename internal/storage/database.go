package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"desknotes/internal/contextutil"
)

// Schema describes optional capabilities detected while migrating.
type Schema struct {
	// HasPosition reports whether notes carry an explicit display position.
	// When false, notes are ordered by creation time and reordering is unavailable.
	HasPosition bool
}

// New opens a SQLite database connection at the given path.
// It enables foreign keys and limits the pool to a single connection so that
// one writer owns the file for the lifetime of the process.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// A single connection keeps PRAGMAs applied and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the required tables and brings older stores up to date.
// It is idempotent and can be run multiple times safely.
//
// A failed position migration is logged and not returned: the store keeps
// working with creation-time ordering, as reported by the returned Schema.
func Migrate(ctx context.Context, db *sql.DB) (Schema, error) {
	logger := contextutil.LoggerFromContext(ctx)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			position INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS images (
			note_id INTEGER NOT NULL,
			id TEXT NOT NULL,
			filename TEXT NOT NULL,
			mime TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (note_id, id)
		);`,
		`CREATE INDEX IF NOT EXISTS images_note_id ON images(note_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return Schema{}, err
		}
	}

	if err := migratePosition(ctx, db); err != nil {
		logger.WarnContext(ctx, "position migration failed or skipped", "error", err)
	}

	has, err := hasColumn(ctx, db, "notes", "position")
	if err != nil {
		return Schema{}, fmt.Errorf("failed to inspect notes schema: %w", err)
	}
	return Schema{HasPosition: has}, nil
}

// migratePosition adds the position column when missing and backfills NULL
// positions newest-first, all inside one transaction. The NULL gate makes a
// second run a no-op.
func migratePosition(ctx context.Context, db *sql.DB) error {
	logger := contextutil.LoggerFromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	has, err := hasColumn(ctx, tx, "notes", "position")
	if err != nil {
		return err
	}
	if !has {
		if _, err := tx.ExecContext(ctx, "ALTER TABLE notes ADD COLUMN position INTEGER"); err != nil {
			return fmt.Errorf("failed to add position column: %w", err)
		}
		logger.InfoContext(ctx, "added position column to notes")
	}

	var nullCount int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM notes WHERE position IS NULL").Scan(&nullCount); err != nil {
		return fmt.Errorf("failed to count unpositioned notes: %w", err)
	}

	if nullCount > 0 {
		n, err := backfillPositions(ctx, tx)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "backfilled note positions", "notes", n)
	}

	return tx.Commit()
}

// backfillPositions assigns positions N..1 so the newest note ends up first,
// matching the implicit creation-time ordering of older stores.
func backfillPositions(ctx context.Context, tx *sql.Tx) (int, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id FROM notes ORDER BY created_at DESC, id DESC")
	if err != nil {
		return 0, fmt.Errorf("failed to list notes for backfill: %w", err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("failed to scan note id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("failed to iterate notes for backfill: %w", err)
	}
	_ = rows.Close()

	if err := assignPositions(ctx, tx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// assignPositions gives ids[0] the highest position and ids[len-1] position 1.
func assignPositions(ctx context.Context, tx *sql.Tx, ids []int64) error {
	stmt, err := tx.PrepareContext(ctx, "UPDATE notes SET position = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare position update: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	pos := len(ids)
	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, pos, id); err != nil {
			return fmt.Errorf("failed to set position for note %d: %w", id, err)
		}
		pos--
	}
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func hasColumn(ctx context.Context, q queryer, table, column string) (bool, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
