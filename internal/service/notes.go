package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notes_service.go -package=mocks -mock_names=NotesService=MockNotesService desknotes/internal/service NotesService
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_attachment_store.go -package=mocks desknotes/internal/service AttachmentStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_orphan_collector.go -package=mocks desknotes/internal/service OrphanCollector
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_content_pipeline.go -package=mocks desknotes/internal/service ContentPipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"desknotes/internal/attachments"
	"desknotes/internal/contextutil"
	"desknotes/internal/gc"
	"desknotes/internal/storage"
)

// AttachmentStore stores and removes note attachments.
// It is satisfied by *attachments.Store.
type AttachmentStore interface {
	CheckImage(data []byte, mimeType string) error
	SaveImage(ctx context.Context, noteID int64, data []byte, mimeType string) (attachments.SavedImage, error)
	DeleteForNote(ctx context.Context, noteID int64) bool
	ListImages(ctx context.Context, noteID int64) ([]attachments.IndexedImage, error)
}

// OrphanCollector deletes attachments a note no longer references.
// It is satisfied by *gc.Collector.
type OrphanCollector interface {
	CollectOrphans(ctx context.Context, noteID int64) (gc.Result, error)
}

// ContentPipeline persists editor content. It is satisfied by *autosave.Pipeline.
type ContentPipeline interface {
	Changed(noteID int64, content string) error
	Save(ctx context.Context, noteID int64, content string) error
	Flush(ctx context.Context, noteID int64) error
	Prime(noteID int64, content string)
	Forget(noteID int64)
}

// UpdateTitleRequest renames a note.
type UpdateTitleRequest struct {
	ID    int64  `validate:"gt=0"`
	Title string `validate:"required,max=500"`
}

// UpdateContentRequest carries the editor markup of a note.
type UpdateContentRequest struct {
	ID      int64 `validate:"gt=0"`
	Content string
}

// ReorderRequest lists note ids top to bottom.
type ReorderRequest struct {
	IDs []int64 `validate:"required,min=1,unique,dive,gt=0"`
}

// SaveImageRequest carries a pasted or dropped image.
type SaveImageRequest struct {
	NoteID int64  `validate:"gt=0"`
	MIME   string `validate:"required"`
	Data   []byte
}

// ImportMarkdownRequest replaces a note's content with rendered markdown.
type ImportMarkdownRequest struct {
	ID       int64  `validate:"gt=0"`
	Markdown string `validate:"required"`
}

// ImportResult is the outcome of a markdown import.
type ImportResult struct {
	Content string
	Title   string // Set when the import renamed the note
}

// NotesService is the request/response boundary used by the UI host.
type NotesService interface {
	ListNotes(ctx context.Context) ([]storage.Note, error)
	// GetNote flushes pending edits of the note before reading it.
	GetNote(ctx context.Context, id int64) (storage.Note, error)
	CreateNote(ctx context.Context) (storage.Note, error)
	UpdateTitle(ctx context.Context, req UpdateTitleRequest) error
	// UpdateContent persists content immediately.
	UpdateContent(ctx context.Context, req UpdateContentRequest) error
	// ContentChanged records content for a debounced write.
	ContentChanged(ctx context.Context, req UpdateContentRequest) error
	FlushContent(ctx context.Context, id int64) error
	ImportMarkdown(ctx context.Context, req ImportMarkdownRequest) (ImportResult, error)
	// DeleteNote removes the note row, then its attachments.
	DeleteNote(ctx context.Context, id int64) error
	Reorder(ctx context.Context, req ReorderRequest) error
	SaveImage(ctx context.Context, req SaveImageRequest) (attachments.SavedImage, error)
	ListImages(ctx context.Context, noteID int64) ([]attachments.IndexedImage, error)
	DeleteAttachments(ctx context.Context, noteID int64) (bool, error)
	CollectOrphans(ctx context.Context, noteID int64) (gc.Result, error)
}

// notesService implements NotesService.
type notesService struct {
	notes     storage.NoteStore
	files     AttachmentStore
	collector OrphanCollector
	pipeline  ContentPipeline
	validate  *validator.Validate
	markdown  *markdownImporter
}

// NewNotesService creates a new NotesService. A nil validate gets a default validator.
func NewNotesService(notes storage.NoteStore, files AttachmentStore, collector OrphanCollector, pipeline ContentPipeline, validate *validator.Validate) NotesService {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return &notesService{
		notes:     notes,
		files:     files,
		collector: collector,
		pipeline:  pipeline,
		validate:  validate,
		markdown:  newMarkdownImporter(),
	}
}

func (s *notesService) ListNotes(ctx context.Context) ([]storage.Note, error) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list notes")
	}
	return notes, nil
}

func (s *notesService) GetNote(ctx context.Context, id int64) (storage.Note, error) {
	if err := checkID("id", id); err != nil {
		return storage.Note{}, err
	}
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.pipeline.Flush(ctx, id); err != nil {
		// The stored row is still the best answer; the pending edit stays queued.
		logger.WarnContext(ctx, "failed to flush pending content before read", "note_id", id, "error", err)
	}

	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return storage.Note{}, mapStoreError(err, "failed to get note")
	}
	if note.Content != nil {
		s.pipeline.Prime(id, *note.Content)
	}
	return note, nil
}

func (s *notesService) CreateNote(ctx context.Context) (storage.Note, error) {
	note, err := s.notes.Create(ctx)
	if err != nil {
		return storage.Note{}, WrapError(err, "failed to create note")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note created", "note_id", note.ID, "position", note.Position)
	return note, nil
}

func (s *notesService) UpdateTitle(ctx context.Context, req UpdateTitleRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return fromValidationError(err)
	}
	if err := s.notes.UpdateTitle(ctx, req.ID, req.Title); err != nil {
		return WrapError(err, "failed to update title")
	}
	return nil
}

func (s *notesService) UpdateContent(ctx context.Context, req UpdateContentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fromValidationError(err)
	}
	if err := s.pipeline.Save(ctx, req.ID, req.Content); err != nil {
		return WrapError(err, "failed to save content")
	}
	return nil
}

func (s *notesService) ContentChanged(ctx context.Context, req UpdateContentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fromValidationError(err)
	}
	if err := s.pipeline.Changed(req.ID, req.Content); err != nil {
		return WrapError(err, "failed to queue content")
	}
	return nil
}

func (s *notesService) FlushContent(ctx context.Context, id int64) error {
	if err := checkID("id", id); err != nil {
		return err
	}
	if err := s.pipeline.Flush(ctx, id); err != nil {
		return WrapError(err, "failed to flush content")
	}
	return nil
}

func (s *notesService) ImportMarkdown(ctx context.Context, req ImportMarkdownRequest) (ImportResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return ImportResult{}, fromValidationError(err)
	}
	logger := contextutil.LoggerFromContext(ctx)

	note, err := s.notes.Get(ctx, req.ID)
	if err != nil {
		return ImportResult{}, mapStoreError(err, "failed to get note")
	}

	doc, err := s.markdown.Convert([]byte(req.Markdown))
	if err != nil {
		return ImportResult{}, WrapError(err, "failed to render markdown")
	}

	if err := s.pipeline.Save(ctx, req.ID, doc.HTML); err != nil {
		return ImportResult{}, WrapError(err, "failed to save content")
	}

	result := ImportResult{Content: doc.HTML}
	if doc.Title != "" && note.Title == storage.DefaultTitle {
		if err := s.notes.UpdateTitle(ctx, req.ID, doc.Title); err != nil {
			logger.WarnContext(ctx, "failed to take title from imported markdown", "note_id", req.ID, "error", err)
		} else {
			result.Title = doc.Title
		}
	}

	logger.InfoContext(ctx, "markdown imported", "note_id", req.ID, "markdown_length", len(req.Markdown), "html_length", len(doc.HTML))
	return result, nil
}

func (s *notesService) DeleteNote(ctx context.Context, id int64) error {
	if err := checkID("id", id); err != nil {
		return err
	}
	logger := contextutil.LoggerFromContext(ctx)

	s.pipeline.Forget(id)
	if err := s.notes.Delete(ctx, id); err != nil {
		return WrapError(err, "failed to delete note")
	}

	// The row is gone at this point; leftover files are collected on a later sweep.
	if !s.files.DeleteForNote(ctx, id) {
		logger.WarnContext(ctx, "note deleted but its attachments were not fully removed", "note_id", id)
	}
	logger.InfoContext(ctx, "note deleted", "note_id", id)
	return nil
}

func (s *notesService) Reorder(ctx context.Context, req ReorderRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fromValidationError(err)
	}
	if err := s.notes.Reorder(ctx, req.IDs); err != nil {
		return mapStoreError(err, "failed to reorder notes")
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "notes reordered", "count", len(req.IDs))
	return nil
}

func (s *notesService) SaveImage(ctx context.Context, req SaveImageRequest) (attachments.SavedImage, error) {
	if err := s.validate.Struct(req); err != nil {
		return attachments.SavedImage{}, fromValidationError(err)
	}
	// Reject the payload before the note lookup so a bad upload never
	// reports as a missing note.
	if err := s.files.CheckImage(req.Data, req.MIME); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "image rejected", "note_id", req.NoteID, "mime", req.MIME, "bytes", len(req.Data), "error", err)
		return attachments.SavedImage{}, WrapError(err, "failed to save image")
	}
	if _, err := s.notes.Get(ctx, req.NoteID); err != nil {
		return attachments.SavedImage{}, mapStoreError(err, "failed to get note")
	}

	saved, err := s.files.SaveImage(ctx, req.NoteID, req.Data, req.MIME)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "image rejected", "note_id", req.NoteID, "mime", req.MIME, "bytes", len(req.Data), "error", err)
		return attachments.SavedImage{}, WrapError(err, "failed to save image")
	}
	return saved, nil
}

func (s *notesService) ListImages(ctx context.Context, noteID int64) ([]attachments.IndexedImage, error) {
	if err := checkID("noteId", noteID); err != nil {
		return nil, err
	}
	if _, err := s.notes.Get(ctx, noteID); err != nil {
		return nil, mapStoreError(err, "failed to get note")
	}
	images, err := s.files.ListImages(ctx, noteID)
	if err != nil {
		return nil, WrapError(err, "failed to list images")
	}
	return images, nil
}

func (s *notesService) DeleteAttachments(ctx context.Context, noteID int64) (bool, error) {
	if err := checkID("noteId", noteID); err != nil {
		return false, err
	}
	return s.files.DeleteForNote(ctx, noteID), nil
}

func (s *notesService) CollectOrphans(ctx context.Context, noteID int64) (gc.Result, error) {
	if err := checkID("noteId", noteID); err != nil {
		return gc.Result{}, err
	}
	res, err := s.collector.CollectOrphans(ctx, noteID)
	if err != nil {
		return gc.Result{}, WrapError(err, "failed to collect orphaned attachments")
	}
	return res, nil
}

func checkID(field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: field, Message: "must be a positive integer"}
	}
	return nil
}

// mapStoreError translates storage sentinels into service errors.
func mapStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return WrapError(ErrNotFound, msg)
	case errors.Is(err, storage.ErrPositionUnsupported):
		return WrapError(fmt.Errorf("%w: %w", ErrConflict, err), msg)
	default:
		return WrapError(err, msg)
	}
}
