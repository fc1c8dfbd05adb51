// Package kvfile is the fallback backend: each collection is one JSON blob
// on disk. It carries traffic only when the sqlite backend is unavailable,
// so it favors simplicity over throughput.
package kvfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"stokpano/internal/infrastructure/storage"
)

// Store implements storage.Backend over flat JSON files.
type Store struct {
	dir  string
	lock *flock.Flock
}

// Open creates the data directory if needed. A lock file next to the blobs
// guards against a second process mutating them mid-write.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{
		dir:  dataDir,
		lock: flock.New(filepath.Join(dataDir, "kv.lock")),
	}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// idProbe extracts the entity id from an opaque body.
type idProbe struct {
	ID string `json:"id"`
}

// Load reads the collection blob. A missing file is an empty collection.
func (s *Store) Load(ctx context.Context, collection string) ([]storage.Document, error) {
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return []storage.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}

	var bodies []json.RawMessage
	if err := json.Unmarshal(data, &bodies); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	docs := make([]storage.Document, 0, len(bodies))
	for _, b := range bodies {
		var probe idProbe
		_ = json.Unmarshal(b, &probe)
		docs = append(docs, storage.Document{ID: probe.ID, Body: b})
	}
	return docs, nil
}

// Save writes the whole collection as one blob, atomically via rename.
func (s *Store) Save(ctx context.Context, collection string, docs []storage.Document) error {
	bodies := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		bodies = append(bodies, d.Body)
	}
	data, err := json.Marshal(bodies)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer s.lock.Unlock()

	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

// Wipe removes the collection blobs.
func (s *Store) Wipe(ctx context.Context, collections ...string) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer s.lock.Unlock()

	for _, c := range collections {
		if err := os.Remove(s.path(c)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", c, err)
		}
	}
	return nil
}

// Close releases the lock file handle.
func (s *Store) Close() error {
	return s.lock.Close()
}
