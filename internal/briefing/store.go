package briefing

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store persists the rendered briefing document at a well-known path.
// Regeneration fully overwrites the previous file.
type Store struct {
	path string
}

// NewStore creates a briefing file store.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the briefing file path.
func (s *Store) Path() string {
	return s.path
}

// Write replaces the briefing file. The write goes through a temp file
// followed by a rename so readers never observe a partially written
// document.
func (s *Store) Write(content string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create briefing directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".briefing-*.md")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write briefing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace briefing file: %w", err)
	}

	return nil
}

// Read returns the current briefing document.
func (s *Store) Read() (string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ModTime returns the briefing file's last modification time.
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Exists reports whether the briefing file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
