package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"desknotes/internal/contextutil"
	"desknotes/internal/service"
)

// MaxFileBytes bounds a single imported document.
const MaxFileBytes = 8 << 20

// ErrFileTooLarge is returned for documents over MaxFileBytes.
var ErrFileTooLarge = errors.New("markdown file too large")

// Imported describes a note created from a markdown file.
type Imported struct {
	File   MarkdownFile
	NoteID int64
	Title  string
}

// Report summarizes an import run.
type Report struct {
	Imported []Imported
	Skipped  []MarkdownFile // Empty documents
	Failed   int
}

// Importer creates one note per markdown file.
type Importer struct {
	notes service.NotesService
}

// New creates a new Importer.
func New(notes service.NotesService) *Importer {
	return &Importer{notes: notes}
}

// ImportDir imports every markdown file under root. A failing file is logged
// and counted; the run continues with the next one.
//
// Notes list newest first, so files are created in reverse order to show up
// in path order.
func (i *Importer) ImportDir(ctx context.Context, root string) (Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := Scan(ctx, root)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for idx := len(files) - 1; idx >= 0; idx-- {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		f := files[idx]

		imported, err := i.ImportFile(ctx, f)
		switch {
		case errors.Is(err, errEmpty):
			report.Skipped = append(report.Skipped, f)
		case err != nil:
			logger.WarnContext(ctx, "failed to import markdown file", "path", f.RelPath, "error", err)
			report.Failed++
		default:
			report.Imported = append(report.Imported, imported)
		}
	}

	if report.Failed > 0 {
		return report, fmt.Errorf("import completed with %d errors", report.Failed)
	}
	return report, nil
}

var errEmpty = errors.New("empty document")

// ImportFile creates a note holding the rendered file. The note takes the
// document's first level-one heading as its title, or the file name when there is none.
func (i *Importer) ImportFile(ctx context.Context, f MarkdownFile) (Imported, error) {
	source, err := readLimited(f.AbsPath)
	if err != nil {
		return Imported{}, err
	}
	if strings.TrimSpace(source) == "" {
		return Imported{}, errEmpty
	}

	note, err := i.notes.CreateNote(ctx)
	if err != nil {
		return Imported{}, fmt.Errorf("failed to create note: %w", err)
	}

	res, err := i.notes.ImportMarkdown(ctx, service.ImportMarkdownRequest{ID: note.ID, Markdown: source})
	if err != nil {
		// Do not leave an empty placeholder note behind.
		if delErr := i.notes.DeleteNote(ctx, note.ID); delErr != nil {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to remove note after failed import", "note_id", note.ID, "error", delErr)
		}
		return Imported{}, fmt.Errorf("failed to import %s: %w", f.RelPath, err)
	}

	title := res.Title
	if title == "" {
		title = f.Name()
		if err := i.notes.UpdateTitle(ctx, service.UpdateTitleRequest{ID: note.ID, Title: title}); err != nil {
			return Imported{}, fmt.Errorf("failed to set title: %w", err)
		}
	}

	return Imported{File: f, NoteID: note.ID, Title: title}, nil
}

func readLimited(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = fh.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(fh, MaxFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxFileBytes {
		return "", ErrFileTooLarge
	}
	return string(data), nil
}
