package images

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DirSaver writes fetched images into a local directory
type DirSaver struct {
	Dir     string
	Fetcher *Fetcher
}

// NewDirSaver creates a saver rooted at dir
func NewDirSaver(dir string, fetcher *Fetcher) *DirSaver {
	return &DirSaver{Dir: dir, Fetcher: fetcher}
}

// Save fetches ref and stores it as dir/filename
func (s *DirSaver) Save(ctx context.Context, ref, filename string) error {
	// Prevent directory traversal
	if filename == "" || strings.Contains(filename, "..") || filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename: %q", filename)
	}

	data, _, err := s.Fetcher.Fetch(ctx, ref)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	slog.Info("Image saved", "path", path, "bytes", len(data))
	return nil
}
