package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DiskStore writes snapshots to a directory, one .html file per name
// plus a .json metadata sidecar.
type DiskStore struct {
	dir string

	mu   sync.RWMutex
	meta map[string]*Meta
}

// NewDiskStore creates the directory if needed and returns a store
// over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{
		dir:  dir,
		meta: make(map[string]*Meta),
	}, nil
}

// sanitize keeps snapshot names from escaping the store directory.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	return name
}

func (s *DiskStore) path(name string) string {
	return filepath.Join(s.dir, sanitize(name)+".html")
}

func (s *DiskStore) metaPath(name string) string {
	return filepath.Join(s.dir, sanitize(name)+".json")
}

// Save writes the snapshot and its metadata sidecar.
func (s *DiskStore) Save(_ context.Context, name, markup string) error {
	if err := os.WriteFile(s.path(name), []byte(markup), 0644); err != nil {
		return err
	}
	m := &Meta{
		Name:      name,
		Size:      int64(len(markup)),
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.meta[name] = m
	s.mu.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(s.metaPath(name), data, 0644)
}

// Load reads a snapshot back.
func (s *DiskStore) Load(_ context.Context, name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFound(name)
		}
		return "", err
	}
	return string(data), nil
}

// Delete removes a snapshot and its metadata.
func (s *DiskStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	delete(s.meta, name)
	s.mu.Unlock()

	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(s.metaPath(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Stat returns metadata for a saved snapshot, reloading the sidecar
// when the in-memory table misses.
func (s *DiskStore) Stat(name string) (*Meta, error) {
	s.mu.RLock()
	m, ok := s.meta[name]
	s.mu.RUnlock()
	if ok {
		return m, nil
	}
	data, err := os.ReadFile(s.metaPath(name))
	if err != nil {
		return nil, notFound(name)
	}
	m = &Meta{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.meta[name] = m
	s.mu.Unlock()
	return m, nil
}
