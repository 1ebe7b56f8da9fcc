package manifest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mcm-tools/figuregen/internal/models"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Entry is one saved figure as recorded in a manifest
type Entry struct {
	ID          string `parquet:"id" yaml:"id"`
	Filename    string `parquet:"filename" yaml:"filename"`
	Category    string `parquet:"category" yaml:"category"`
	Prompt      string `parquet:"prompt" yaml:"prompt"`
	TimestampMs int64  `parquet:"timestamp_ms" yaml:"timestamp_ms"`
}

// Document is the YAML manifest layout
type Document struct {
	Generated string  `yaml:"generated"`
	Count     int     `yaml:"count"`
	Images    []Entry `yaml:"images"`
}

// EntriesFromImages converts gallery records into manifest rows, keeping order
func EntriesFromImages(images []models.GeneratedImage) []Entry {
	entries := make([]Entry, 0, len(images))
	for _, img := range images {
		entries = append(entries, Entry{
			ID:          img.ID,
			Filename:    img.Filename(),
			Category:    string(img.Category),
			Prompt:      img.Prompt,
			TimestampMs: img.Timestamp.UnixMilli(),
		})
	}
	return entries
}

// Time returns the entry timestamp
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.TimestampMs)
}

// Write saves images as a manifest, picking the format from the file extension
func Write(path string, images []models.GeneratedImage) error {
	entries := EntriesFromImages(images)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return writeParquet(path, entries)
	case ".yaml", ".yml":
		return writeYAML(path, entries)
	default:
		return fmt.Errorf("unsupported manifest format: %s (supported: .parquet, .yaml)", ext)
	}
}

// Read loads manifest entries from a .parquet or .yaml file
func Read(path string) ([]Entry, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return readParquet(path)
	case ".yaml", ".yml":
		return readYAML(path)
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s (supported: .parquet, .yaml)", ext)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	return nil
}

func writeParquet(path string, entries []Entry) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := parquet.WriteFile(path, entries); err != nil {
		return fmt.Errorf("failed to write parquet manifest: %w", err)
	}
	slog.Info("Manifest written", "path", path, "format", "parquet", "images", len(entries))
	return nil
}

func readParquet(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Entry](pf)
	defer reader.Close()

	var entries []Entry
	rows := make([]Entry, 64)
	for {
		n, err := reader.Read(rows)
		entries = append(entries, rows[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return entries, nil
}

func writeYAML(path string, entries []Entry) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	doc := Document{
		Generated: time.Now().Format("2006-01-02_15-04-05"),
		Count:     len(entries),
		Images:    entries,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	slog.Info("Manifest written", "path", path, "format", "yaml", "images", len(entries))
	return nil
}

func readYAML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML manifest: %w", err)
	}
	return doc.Images, nil
}
