package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"desknotes/internal/attachments"
	"desknotes/internal/contextutil"
	"desknotes/internal/service"
	"desknotes/internal/storage"
)

// maxJSONBody bounds JSON request bodies; note content is the largest.
const maxJSONBody = 64 << 20

// NotesHandler serves the note, content and attachment operations.
type NotesHandler struct {
	notes service.NotesService
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notes service.NotesService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// Routes registers the handler under the current router.
func (h *NotesHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/order", h.Reorder)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		r.Put("/title", h.UpdateTitle)
		r.Put("/content", h.UpdateContent)
		r.Post("/content/changes", h.ContentChanged)
		r.Post("/flush", h.Flush)
		r.Post("/import", h.ImportMarkdown)
		r.Get("/images", h.ListImages)
		r.Post("/images", h.SaveImage)
		r.Delete("/attachments", h.DeleteAttachments)
		r.Post("/gc", h.CollectOrphans)
	})
}

// NoteResponse is the wire form of a note.
type NoteResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   *string `json:"content"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	Position  int64   `json:"position,omitempty"`
}

// TitleRequest is the payload of a title update.
type TitleRequest struct {
	Title string `json:"title"`
}

// ContentRequest is the payload of a content update.
type ContentRequest struct {
	Content string `json:"content"`
}

// ImportRequest is the payload of a markdown import.
type ImportRequest struct {
	Markdown string `json:"markdown"`
}

// ImportResponse is the result of a markdown import.
type ImportResponse struct {
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
}

// ReorderRequest lists note ids top to bottom.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// ImageResponse describes a stored image.
type ImageResponse struct {
	URL      string `json:"url"`
	MIME     string `json:"mime"`
	Filename string `json:"filename"`
	Width    *int   `json:"width,omitempty"`
	Height   *int   `json:"height,omitempty"`
}

// IndexedImageResponse is a recorded image of a note.
type IndexedImageResponse struct {
	URL       string `json:"url"`
	MIME      string `json:"mime"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"sizeBytes"`
	CreatedAt string `json:"createdAt"`
}

// OKResponse reports a best-effort operation.
type OKResponse struct {
	OK bool `json:"ok"`
}

// CollectResponse reports an orphan collection pass.
type CollectResponse struct {
	DeletedCount int `json:"deletedCount"`
}

func toNoteResponse(n storage.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: n.UpdatedAt.UTC().Format(time.RFC3339Nano),
		Position:  n.Position,
	}
}

// List returns all notes in display order.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notes, err := h.notes.ListNotes(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list notes")
		return
	}

	resp := make([]NoteResponse, len(notes))
	for i, n := range notes {
		resp[i] = toNoteResponse(n)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Create inserts a note at the top of the list.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	note, err := h.notes.CreateNote(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to create note")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toNoteResponse(note))
}

// Get returns one note.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	note, err := h.notes.GetNote(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to get note")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toNoteResponse(note))
}

// Delete removes a note and its attachments.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	if err := h.notes.DeleteNote(ctx, id); err != nil {
		handleServiceError(ctx, w, err, "Failed to delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateTitle renames a note.
func (h *NotesHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	var req TitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.notes.UpdateTitle(ctx, service.UpdateTitleRequest{ID: id, Title: req.Title}); err != nil {
		handleServiceError(ctx, w, err, "Failed to update title")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateContent persists content immediately.
func (h *NotesHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	var req ContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.notes.UpdateContent(ctx, service.UpdateContentRequest{ID: id, Content: req.Content}); err != nil {
		handleServiceError(ctx, w, err, "Failed to save content")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ContentChanged queues content for a debounced write.
func (h *NotesHandler) ContentChanged(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	var req ContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.notes.ContentChanged(ctx, service.UpdateContentRequest{ID: id, Content: req.Content}); err != nil {
		handleServiceError(ctx, w, err, "Failed to queue content")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Flush writes pending content before the UI switches notes.
func (h *NotesHandler) Flush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	if err := h.notes.FlushContent(ctx, id); err != nil {
		handleServiceError(ctx, w, err, "Failed to flush content")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportMarkdown replaces a note's content with rendered markdown.
func (h *NotesHandler) ImportMarkdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	var req ImportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.notes.ImportMarkdown(ctx, service.ImportMarkdownRequest{ID: id, Markdown: req.Markdown})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to import markdown")
		return
	}
	writeJSON(ctx, w, http.StatusOK, ImportResponse{Content: res.Content, Title: res.Title})
}

// Reorder assigns positions from a top to bottom id list.
func (h *NotesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.notes.Reorder(ctx, service.ReorderRequest{IDs: req.IDs}); err != nil {
		handleServiceError(ctx, w, err, "Failed to reorder notes")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveImage stores the raw request body as an image of the note. The
// Content-Type header is the declared MIME type; without one the type is
// sniffed from the bytes.
func (h *NotesHandler) SaveImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	// One byte past the limit is enough for the store to reject oversized payloads.
	data, err := io.ReadAll(io.LimitReader(r.Body, attachments.MaxImageBytes+1))
	if err != nil {
		logger.WarnContext(ctx, "failed to read image body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	declared := r.Header.Get("Content-Type")
	if declared == "" && len(data) > 0 {
		declared = mimetype.Detect(data).String()
		logger.DebugContext(ctx, "sniffed image type", "mime", declared)
	}

	saved, err := h.notes.SaveImage(ctx, service.SaveImageRequest{NoteID: id, MIME: declared, Data: data})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to save image")
		return
	}

	status := http.StatusCreated
	if saved.Deduplicated {
		status = http.StatusOK
	}
	writeJSON(ctx, w, status, ImageResponse{
		URL:      saved.URL,
		MIME:     saved.MIME,
		Filename: saved.Filename,
		Width:    saved.Width,
		Height:   saved.Height,
	})
}

// ListImages returns the images recorded for a note.
func (h *NotesHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	images, err := h.notes.ListImages(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list images")
		return
	}

	resp := make([]IndexedImageResponse, 0, len(images))
	for _, img := range images {
		resp = append(resp, IndexedImageResponse{
			URL:       img.URL,
			MIME:      img.MIME,
			Filename:  img.Filename,
			SizeBytes: img.SizeBytes,
			CreatedAt: img.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// DeleteAttachments removes every attachment of a note.
func (h *NotesHandler) DeleteAttachments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	deleted, err := h.notes.DeleteAttachments(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to delete attachments")
		return
	}
	writeJSON(ctx, w, http.StatusOK, OKResponse{OK: deleted})
}

// CollectOrphans deletes attachments the note no longer references.
func (h *NotesHandler) CollectOrphans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	res, err := h.notes.CollectOrphans(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to collect attachments")
		return
	}
	writeJSON(ctx, w, http.StatusOK, CollectResponse{DeletedCount: res.DeletedCount})
}

// noteID parses the {id} path parameter, writing a 400 when it is malformed.
func noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid note id")
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ctx := r.Context()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
