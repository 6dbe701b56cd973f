package importer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownFile is a markdown document found under an import root.
type MarkdownFile struct {
	RelPath string // Slash-separated path from the root, e.g. "projects/meeting.md"
	AbsPath string
}

// Name returns the file name without its extension.
func (f MarkdownFile) Name() string {
	base := filepath.Base(f.AbsPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Scan walks root and returns its markdown files sorted by relative path.
// Hidden directories (.obsidian, .git, ...) are skipped.
func Scan(ctx context.Context, root string) ([]MarkdownFile, error) {
	var files []MarkdownFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !isMarkdown(path) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		files = append(files, MarkdownFile{
			RelPath: filepath.ToSlash(relPath),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
