package storage

import (
	"path/filepath"
	"testing"

	"github.com/claude/liftplan/internal/models"
)

func record(t *testing.T, iso, dayType string, weight float64, reps int) models.WorkoutRecord {
	t.Helper()
	d, err := models.ParseDate(iso)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", iso, err)
	}
	return models.WorkoutRecord{
		Date:    d,
		DayType: dayType,
		Exercises: []models.ExerciseRecord{
			{Name: "Bench Press", Sets: []models.SetRecord{{Set: 1, Weight: weight, Reps: reps}}},
		},
	}
}

// TestOpenProgressMissingFile verifies a missing log yields an empty store
// without creating the file.
func TestOpenProgressMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")

	s, err := OpenProgress(path)
	if err != nil {
		t.Fatalf("OpenProgress: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("new store has %d records, want 0", s.Len())
	}
}

// TestUpsertReplacesByKey verifies a record with the same (date, day type)
// key replaces the earlier record in place without growing the log, while a
// different key appends.
func TestUpsertReplacesByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s, err := OpenProgress(path)
	if err != nil {
		t.Fatalf("OpenProgress: %v", err)
	}

	updated, err := s.Upsert(record(t, "2025-01-06", "Push", 135, 10))
	if err != nil || updated {
		t.Fatalf("first Upsert = (%v, %v), want (false, nil)", updated, err)
	}

	updated, err = s.Upsert(record(t, "2025-01-07", "Pull", 185, 8))
	if err != nil || updated {
		t.Fatalf("second Upsert = (%v, %v), want (false, nil)", updated, err)
	}

	// Same key, new data: replace in place.
	updated, err = s.Upsert(record(t, "2025-01-06", "Push", 140, 8))
	if err != nil || !updated {
		t.Fatalf("replacing Upsert = (%v, %v), want (true, nil)", updated, err)
	}

	if s.Len() != 2 {
		t.Fatalf("log has %d records after replace, want 2", s.Len())
	}
	if got := s.Records()[0].Exercises[0].Sets[0].Weight; got != 140 {
		t.Errorf("replaced record weight = %g, want 140", got)
	}

	// Same date but different type is a distinct key.
	updated, err = s.Upsert(record(t, "2025-01-06", "Pull", 95, 12))
	if err != nil || updated {
		t.Fatalf("same-date different-type Upsert = (%v, %v), want (false, nil)", updated, err)
	}
	if s.Len() != 3 {
		t.Errorf("log has %d records, want 3", s.Len())
	}
}

// TestProgressPersistsAcrossReopen verifies the log round-trips through its
// JSON file.
func TestProgressPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s, err := OpenProgress(path)
	if err != nil {
		t.Fatalf("OpenProgress: %v", err)
	}
	if _, err := s.Upsert(record(t, "2025-01-06", "Push", 135, 10)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	s2, err := OpenProgress(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s2.Len() != 1 {
		t.Fatalf("reopened log has %d records, want 1", s2.Len())
	}
	rec := s2.Records()[0]
	if rec.Date.String() != "2025-01-06" || rec.DayType != "Push" {
		t.Errorf("record = %s %s, want 2025-01-06 Push", rec.Date, rec.DayType)
	}
	if rec.Exercises[0].Sets[0].Weight != 135 {
		t.Errorf("weight = %g, want 135", rec.Exercises[0].Sets[0].Weight)
	}
}

// TestConcurrentUpsertAndRead runs a writer upserting records against a
// reader calling Records and Since, the way a POST /api/v1/log can race a
// GET /api/v1/progress when both surfaces share the store. Meaningful under
// the race detector.
func TestConcurrentUpsertAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s, err := OpenProgress(path)
	if err != nil {
		t.Fatalf("OpenProgress: %v", err)
	}

	cutoff, _ := models.ParseDate("2025-01-01")
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			date := models.NewDate(2025, 1, 1).AddDays(i)
			rec := record(t, date.String(), "Push", 135, 10)
			if _, err := s.Upsert(rec); err != nil {
				t.Errorf("Upsert: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		for _, rec := range s.Records() {
			_ = rec.Date
		}
		_ = s.Since(cutoff)
		_ = s.Len()
	}
	<-done

	if s.Len() != 200 {
		t.Errorf("log has %d records, want 200", s.Len())
	}
}

// TestSince verifies the cutoff filter is inclusive of the cutoff date.
func TestSince(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s, err := OpenProgress(path)
	if err != nil {
		t.Fatalf("OpenProgress: %v", err)
	}

	for _, iso := range []string{"2025-01-01", "2025-01-06", "2025-01-10"} {
		if _, err := s.Upsert(record(t, iso, "Push", 135, 10)); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	cutoff, _ := models.ParseDate("2025-01-06")
	got := s.Since(cutoff)
	if len(got) != 2 {
		t.Fatalf("Since returned %d records, want 2", len(got))
	}
	if got[0].Date.String() != "2025-01-06" {
		t.Errorf("first record = %s, want cutoff date included", got[0].Date)
	}
}
