// Package snapshot reads and writes the whole board as a JSON document.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Version is the document format written by Write.
const Version = 1

type Document struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Epics      []Epic    `json:"epics"`
}

type Epic struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Stories     []Story   `json:"stories"`
}

type Story struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Counts returns the number of epics and stories in the document.
func (d Document) Counts() (epics, stories int) {
	for _, e := range d.Epics {
		stories += len(e.Stories)
	}
	return len(d.Epics), stories
}

// Write stores doc at path via a temp file and rename.
func Write(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir snapshot dir: %w", err)
		}
	}
	if doc.Version == 0 {
		doc.Version = Version
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if doc.Version != Version {
		return Document{}, fmt.Errorf("snapshot %s: unsupported version %d", path, doc.Version)
	}
	return doc, nil
}
