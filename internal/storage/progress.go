package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/claude/liftplan/internal/models"
)

// ProgressStore is the append-ordered workout log. Inserting a record whose
// (date, day type) key matches an existing record replaces that record in
// place; everything else appends. Records are never deleted.
type ProgressStore struct {
	path    string
	records []models.WorkoutRecord

	// mu guards records on both read and write paths; the HTTP and MCP
	// surfaces share one store in-process.
	mu sync.Mutex
}

// OpenProgress loads the workout log from path. A missing file yields an
// empty store; nothing is written until the first upsert.
func OpenProgress(path string) (*ProgressStore, error) {
	s := &ProgressStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading progress log %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("parsing progress log %s: %w", path, err)
	}
	return s, nil
}

// Upsert inserts or replaces a record by its identity key and persists the
// log. Returns true when an existing record was replaced.
func (s *ProgressStore) Upsert(rec models.WorkoutRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.SameKey(rec) {
			s.records[i] = rec
			return true, s.save()
		}
	}
	s.records = append(s.records, rec)
	return false, s.save()
}

// Records returns a snapshot of all records in store order. The copy is
// taken under the lock so readers never observe a concurrent upsert
// half-applied.
func (s *ProgressStore) Records() []models.WorkoutRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.WorkoutRecord(nil), s.records...)
}

// Since returns a snapshot of records with date >= cutoff, in store order.
// Store order is insertion order, which is only chronological if records
// were inserted chronologically.
func (s *ProgressStore) Since(cutoff models.Date) []models.WorkoutRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WorkoutRecord
	for _, rec := range s.records {
		if !rec.Date.Before(cutoff.Time) {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of stored records.
func (s *ProgressStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *ProgressStore) save() error {
	return writeJSONFile(s.path, s.records)
}

// writeJSONFile marshals v and writes it atomically: temp file in the same
// directory, then rename over the destination.
func writeJSONFile(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
