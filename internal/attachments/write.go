package attachments

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// tempPrefix marks in-flight uploads inside a note directory.
const tempPrefix = ".upload-"

// writeOnceIfMissing creates path with data unless it already exists.
//
// The bytes go to a synced temp file in the same directory which is then
// hard-linked into place. Linking fails with fs.ErrExist when another writer
// won, which is reported as created == false rather than an error. Readers
// never see a partially written file.
func writeOnceIfMissing(path string, data []byte) (created bool, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return false, fmt.Errorf("failed to create note directory: %w", err)
	}

	if _, err := os.Lstat(path); err == nil {
		return false, nil
	}

	tmpFile, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return false, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return false, fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return false, fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), 0o600); err != nil {
		return false, fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Link(tmpFile.Name(), path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to link %s: %w", path, err)
	}
	return true, nil
}
