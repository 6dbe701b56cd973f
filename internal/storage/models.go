package storage

import "time"

// DefaultTitle is the placeholder title given to freshly created notes.
const DefaultTitle = "New note"

// Note represents a note row in the database.
type Note struct {
	ID        int64
	Title     string
	Content   *string // Rich-text markup; nil until first saved
	CreatedAt time.Time
	UpdatedAt time.Time
	Position  int64 // Higher sorts first; 0 when the store has no positions
}

// Image represents a recorded attachment in the images index.
// The note's content markup, not this row, decides whether the file is live.
type Image struct {
	NoteID    int64
	Hash      string // SHA256 hex string of the raw bytes
	Filename  string // Hash plus extension derived from MIME
	MIME      string
	SizeBytes int64
	CreatedAt time.Time
}
