package handlers

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"desknotes/internal/attachments"
	"desknotes/internal/contextutil"
)

// AttachmentOpener opens stored attachment files. It is satisfied by *attachments.Store.
type AttachmentOpener interface {
	Open(noteID int64, filename string) (*os.File, error)
}

// AttachmentHandler resolves attachment references to file bytes, so the
// editing surface can render embedded images.
type AttachmentHandler struct {
	files AttachmentOpener
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(files AttachmentOpener) *AttachmentHandler {
	return &AttachmentHandler{files: files}
}

// ServeHTTP serves GET /attachments/{noteID}/{filename}.
func (h *AttachmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid note id")
		return
	}
	filename, err := url.PathUnescape(chi.URLParam(r, "filename"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid path encoding")
		return
	}

	f, err := h.files.Open(noteID, filename)
	if err != nil {
		switch {
		case errors.Is(err, attachments.ErrInvalidPath):
			logger.WarnContext(ctx, "rejected attachment path", "note_id", noteID, "filename", filename)
			writeError(w, http.StatusBadRequest, "Invalid path")
		case errors.Is(err, fs.ErrNotExist):
			writeError(w, http.StatusNotFound, "Attachment not found")
		default:
			logger.ErrorContext(ctx, "failed to open attachment", "note_id", noteID, "filename", filename, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to read attachment")
		}
		return
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		logger.ErrorContext(ctx, "failed to stat attachment", "note_id", noteID, "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read attachment")
		return
	}

	// The content decides the type, not the extension in the name.
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		logger.ErrorContext(ctx, "failed to detect attachment type", "note_id", noteID, "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read attachment")
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		logger.ErrorContext(ctx, "failed to rewind attachment", "note_id", noteID, "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read attachment")
		return
	}

	w.Header().Set("Content-Type", mt.String())
	w.Header().Set("X-Content-Type-Options", "nosniff")
	// Names are content hashes, so a stored file never changes.
	w.Header().Set("Cache-Control", "private, max-age=31536000, immutable")
	http.ServeContent(w, r, filename, info.ModTime(), f)
}
