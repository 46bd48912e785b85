// Package storage persists the exercise catalog and workout log as JSON
// documents, plus a small SQLite ledger tracking which markdown notes have
// already been logged. All JSON writes go through an atomic temp-and-rename
// so a failed operation never leaves a half-written file behind.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/claude/liftplan/internal/models"
)

// catalogFile is the on-disk shape: the catalog nests under a "workouts" key.
type catalogFile struct {
	Workouts *models.Catalog `json:"workouts"`
}

// CatalogStore owns the catalog file lifecycle: loaded once at open, mutated
// only through Add/Remove, persisted after every mutation.
type CatalogStore struct {
	path    string
	catalog *models.Catalog

	// mu guards catalog on both read and write paths; the HTTP and MCP
	// surfaces share one store in-process.
	mu sync.Mutex
}

// OpenCatalog loads the catalog from path. A missing file seeds the default
// catalog and writes it out immediately.
func OpenCatalog(path string) (*CatalogStore, error) {
	s := &CatalogStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.catalog = models.DefaultCatalog()
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if file.Workouts == nil {
		file.Workouts = models.DefaultCatalog()
	}
	s.catalog = file.Workouts
	return s, nil
}

// Catalog returns a snapshot copy of the loaded catalog. Callers get their
// own lists; a concurrent Add or Remove cannot race a reader iterating them.
func (s *CatalogStore) Catalog() *models.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

// Add adds an exercise and persists the catalog. Returns false (with no
// write) when the exercise already exists; duplicates are a no-op, not an
// error.
func (s *CatalogStore) Add(cat models.Category, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.Add(cat, name) {
		return false, nil
	}
	return true, s.save()
}

// Remove removes an exercise and persists the catalog. Returns false when
// the exercise was not present.
func (s *CatalogStore) Remove(cat models.Category, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.catalog.Remove(cat, name) {
		return false, nil
	}
	return true, s.save()
}

func (s *CatalogStore) save() error {
	return writeJSONFile(s.path, catalogFile{Workouts: s.catalog})
}
