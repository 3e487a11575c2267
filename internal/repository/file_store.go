package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fantalega/asta/internal/domain"
)

// FileStore persists the league as a pretty-printed JSON document on disk.
// It is the default snapshot backend for a single-operator draft session.
type FileStore struct {
	path      string
	backupDir string
}

// NewFileStore creates a FileStore writing to path. Backup copies go to
// backupDir; an empty backupDir disables backups.
func NewFileStore(path, backupDir string) *FileStore {
	return &FileStore{path: path, backupDir: backupDir}
}

// Save writes the current league state, replacing any previous snapshot.
// The document is written to a temp file first and renamed into place so a
// crash mid-write cannot truncate the last good snapshot.
func (s *FileStore) Save(ctx context.Context, l *domain.League) error {
	data, err := json.MarshalIndent(encodeLeague(l), "", "  ")
	if err != nil {
		return fmt.Errorf("file_store.Save: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("file_store.Save: mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("file_store.Save: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("file_store.Save: rename: %w", err)
	}
	return nil
}

// Load reads the most recent snapshot. Returns domain.ErrSnapshotNotFound
// when no snapshot has been written yet.
func (s *FileStore) Load(ctx context.Context) (*domain.League, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("file_store.Load: read: %w", err)
	}
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("file_store.Load: unmarshal: %w", err)
	}
	return decodeLeague(doc), nil
}

// Backup writes a timestamped copy of the league alongside the main
// snapshot. Old backups are never pruned automatically.
func (s *FileStore) Backup(ctx context.Context, l *domain.League) error {
	if s.backupDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(encodeLeague(l), "", "  ")
	if err != nil {
		return fmt.Errorf("file_store.Backup: marshal: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("file_store.Backup: mkdir: %w", err)
	}
	name := fmt.Sprintf("lega-%s.json", time.Now().UTC().Format("20060102-150405"))
	if err := os.WriteFile(filepath.Join(s.backupDir, name), data, 0o644); err != nil {
		return fmt.Errorf("file_store.Backup: write: %w", err)
	}
	return nil
}
