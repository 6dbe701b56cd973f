package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_image_store.go -package=mocks desknotes/internal/storage ImageStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ImageStore defines the interface for the attachment index.
type ImageStore interface {
	// Record inserts an image row; an existing (note_id, hash) row is left untouched.
	Record(ctx context.Context, img Image) error
	// ListForNote returns the recorded images of a note, oldest first.
	ListForNote(ctx context.Context, noteID int64) ([]Image, error)
	// DeleteForNote removes every image row of a note.
	DeleteForNote(ctx context.Context, noteID int64) error
	// DeleteByFilename removes the image row of a note with the given filename.
	DeleteByFilename(ctx context.Context, noteID int64, filename string) error
}

// ImageRepo provides methods for image index operations.
// It implements the ImageStore interface.
type ImageRepo struct {
	db *sql.DB
}

// NewImageRepo creates a new ImageRepo.
func NewImageRepo(db *sql.DB) *ImageRepo {
	return &ImageRepo{db: db}
}

// Record inserts an image row unless one already exists for the same note and hash.
func (r *ImageRepo) Record(ctx context.Context, img Image) error {
	createdAt := img.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO images (note_id, id, filename, mime, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		img.NoteID, img.Hash, img.Filename, img.MIME, img.SizeBytes, createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record image: %w", err)
	}
	return nil
}

// ListForNote returns the recorded images of a note.
func (r *ImageRepo) ListForNote(ctx context.Context, noteID int64) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT note_id, id, filename, mime, size_bytes, created_at
		 FROM images WHERE note_id = ? ORDER BY created_at, id`,
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var images []Image
	for rows.Next() {
		var (
			img       Image
			createdAt int64
		)
		if err := rows.Scan(&img.NoteID, &img.Hash, &img.Filename, &img.MIME, &img.SizeBytes, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		img.CreatedAt = time.UnixMilli(createdAt).UTC()
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}
	return images, nil
}

// DeleteForNote removes all image rows of a note.
func (r *ImageRepo) DeleteForNote(ctx context.Context, noteID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE note_id = ?", noteID); err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	return nil
}

// DeleteByFilename removes a single image row.
func (r *ImageRepo) DeleteByFilename(ctx context.Context, noteID int64, filename string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM images WHERE note_id = ? AND filename = ?",
		noteID, filename,
	); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
