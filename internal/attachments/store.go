package attachments

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"desknotes/internal/contextutil"
	"desknotes/internal/metrics"
	"desknotes/internal/storage"
)

// ImageIndex is the attachment index as seen by the store.
// It is satisfied by storage.ImageRepo.
type ImageIndex interface {
	Record(ctx context.Context, img storage.Image) error
	DeleteForNote(ctx context.Context, noteID int64) error
	DeleteByFilename(ctx context.Context, noteID int64, filename string) error
	ListForNote(ctx context.Context, noteID int64) ([]storage.Image, error)
}

// SavedImage describes a stored image and how to reference it.
type SavedImage struct {
	URL          string
	MIME         string
	Filename     string
	Width        *int
	Height       *int
	Deduplicated bool // the file already existed for this note
}

// StoredFile is a file present in a note's attachment directory.
type StoredFile struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// IndexedImage is a recorded image together with its reference URL.
type IndexedImage struct {
	storage.Image
	URL string
}

// Store keeps attachment files under <root>/<noteId>/<filename>.
type Store struct {
	root    string
	refs    Refs
	index   ImageIndex
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewStore creates the root directory if needed and returns a Store rooted at
// its canonical path. index and rec may be nil.
func NewStore(root string, refs Refs, index ImageIndex, rec *metrics.Recorder) (*Store, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create attachments root: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attachments root: %w", err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve attachments root: %w", err)
	}
	return &Store{
		root:    canonical,
		refs:    refs,
		index:   index,
		metrics: rec,
		now:     time.Now,
	}, nil
}

// Root returns the canonical attachments root.
func (s *Store) Root() string {
	return s.root
}

// Refs returns the reference URL codec used by the store.
func (s *Store) Refs() Refs {
	return s.refs
}

// CheckImage reports why an image would be rejected by SaveImage, or nil if
// it would be accepted. It touches neither the disk nor the index.
func (s *Store) CheckImage(data []byte, mimeType string) error {
	if !Allowed(mimeType) {
		s.metrics.AttachmentRejected("unsupported_media_type")
		return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mimeType)
	}
	if len(data) > MaxImageBytes {
		s.metrics.AttachmentRejected("payload_too_large")
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, len(data), MaxImageBytes)
	}
	if len(data) == 0 {
		s.metrics.AttachmentRejected("empty_payload")
		return ErrEmptyPayload
	}
	return nil
}

// SaveImage validates, deduplicates and stores an image for a note.
// Validation failures return before any disk I/O. Failing to record the
// index row is logged; the file write decides success.
func (s *Store) SaveImage(ctx context.Context, noteID int64, data []byte, mimeType string) (SavedImage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.CheckImage(data, mimeType); err != nil {
		return SavedImage{}, err
	}
	mediaType, ext, _ := lookupMIME(mimeType)

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	filename := hash + "." + ext

	path, err := s.Resolve(noteID, filename)
	if err != nil {
		return SavedImage{}, err
	}

	created, err := writeOnceIfMissing(path, data)
	if err != nil {
		return SavedImage{}, fmt.Errorf("failed to store image: %w", err)
	}

	saved := SavedImage{
		URL:          s.refs.URL(noteID, filename),
		MIME:         mediaType,
		Filename:     filename,
		Deduplicated: !created,
	}
	if w, h, ok := imageDimensions(data); ok {
		saved.Width, saved.Height = &w, &h
	}

	if s.index != nil {
		err := s.index.Record(ctx, storage.Image{
			NoteID:    noteID,
			Hash:      hash,
			Filename:  filename,
			MIME:      mediaType,
			SizeBytes: int64(len(data)),
			CreatedAt: s.now(),
		})
		if err != nil {
			logger.WarnContext(ctx, "failed to record image in index", "note_id", noteID, "filename", filename, "error", err)
		}
	}

	s.metrics.AttachmentSaved(saved.Deduplicated)
	logger.DebugContext(ctx, "image saved", "note_id", noteID, "filename", filename, "bytes", len(data), "deduplicated", saved.Deduplicated)
	return saved, nil
}

// DeleteForNote removes a note's attachment directory and index rows.
// Index rows are pruned even when the directory could not be removed; the
// result is false if either step failed.
func (s *Store) DeleteForNote(ctx context.Context, noteID int64) bool {
	logger := contextutil.LoggerFromContext(ctx)

	dir, err := s.noteDir(noteID)
	if err != nil {
		logger.WarnContext(ctx, "refusing to delete attachments", "note_id", noteID, "error", err)
		return false
	}

	ok := true
	if err := os.RemoveAll(dir); err != nil {
		logger.ErrorContext(ctx, "failed to remove attachment directory", "note_id", noteID, "dir", dir, "error", err)
		ok = false
	}
	if s.index != nil {
		if err := s.index.DeleteForNote(ctx, noteID); err != nil {
			logger.ErrorContext(ctx, "failed to delete image rows", "note_id", noteID, "error", err)
			ok = false
		}
	}
	return ok
}

// ListImages returns the images recorded for a note, oldest first. The index
// lists what was saved, not what the content still references.
func (s *Store) ListImages(ctx context.Context, noteID int64) ([]IndexedImage, error) {
	if s.index == nil {
		return nil, nil
	}
	rows, err := s.index.ListForNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	images := make([]IndexedImage, 0, len(rows))
	for _, row := range rows {
		images = append(images, IndexedImage{Image: row, URL: s.refs.URL(noteID, row.Filename)})
	}
	return images, nil
}

// ListFiles returns the regular files stored for a note, skipping in-flight
// uploads. A missing directory yields no files.
func (s *Store) ListFiles(noteID int64) ([]StoredFile, error) {
	dir, err := s.noteDir(noteID)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	files := make([]StoredFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		files = append(files, StoredFile{Name: entry.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	return files, nil
}

// RemoveFile deletes one stored file and best-effort removes its index row.
func (s *Store) RemoveFile(ctx context.Context, noteID int64, filename string) error {
	path, err := s.Resolve(noteID, filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.DeleteByFilename(ctx, noteID, filename); err != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to delete image row", "note_id", noteID, "filename", filename, "error", err)
		}
	}
	return nil
}

// Open opens a stored file for reading after validating its path.
func (s *Store) Open(noteID int64, filename string) (*os.File, error) {
	path, err := s.Resolve(noteID, filename)
	if err != nil {
		return nil, err
	}

	// The final component may be a link; what it points at must stay inside the note directory.
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}
	if filepath.Dir(target) != filepath.Dir(path) {
		return nil, ErrInvalidPath
	}

	f, err := os.Open(target)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, ErrInvalidPath
	}
	return f, nil
}

// ResolveURL maps a reference URL to the path of the stored file.
func (s *Store) ResolveURL(ref string) (string, error) {
	noteID, filename, ok := s.refs.Parse(ref)
	if !ok {
		return "", ErrInvalidPath
	}
	return s.Resolve(noteID, filename)
}

// Resolve returns the path of filename inside the note's directory.
// Anything that would land outside that directory is rejected without
// touching the filesystem.
func (s *Store) Resolve(noteID int64, filename string) (string, error) {
	dir, err := s.noteDir(noteID)
	if err != nil {
		return "", err
	}
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || strings.ContainsRune(filename, 0) {
		return "", ErrInvalidPath
	}

	path := filepath.Clean(filepath.Join(dir, filename))
	if filepath.Dir(path) != dir {
		return "", ErrInvalidPath
	}
	return path, nil
}

func (s *Store) noteDir(noteID int64) (string, error) {
	if noteID <= 0 {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, strconv.FormatInt(noteID, 10)), nil
}
