package analytics

import (
	"errors"
	"testing"

	"github.com/claude/liftplan/internal/models"
)

func day(t *testing.T, iso string) models.Date {
	t.Helper()
	d, err := models.ParseDate(iso)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", iso, err)
	}
	return d
}

func workout(t *testing.T, iso, dayType, exercise string, sets ...models.SetRecord) models.WorkoutRecord {
	t.Helper()
	return models.WorkoutRecord{
		Date:    day(t, iso),
		DayType: dayType,
		Exercises: []models.ExerciseRecord{
			{Name: exercise, Sets: sets},
		},
	}
}

// TestSuggestNextRules walks the three progression branches off the most
// recent recorded set.
func TestSuggestNextRules(t *testing.T) {
	cases := []struct {
		name       string
		reps       int
		wantWeight float64
		wantReps   int
		wantReason string
	}{
		{"high reps bumps weight", 12, 140, 8, "high reps achieved, increase weight"},
		{"mid reps adds a rep", 10, 135, 11, "progressive overload, add one rep"},
		{"low reps builds up", 6, 135, 7, "build up reps before increasing weight"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := []models.WorkoutRecord{
				workout(t, "2025-01-06", "Push", "Bench Press",
					models.SetRecord{Set: 1, Weight: 135, Reps: tc.reps}),
			}

			s, err := SuggestNext(records, "Bench Press")
			if err != nil {
				t.Fatalf("SuggestNext: %v", err)
			}
			if s.CurrentWeight != 135 || s.CurrentReps != tc.reps {
				t.Errorf("current = %gx%d, want 135x%d", s.CurrentWeight, s.CurrentReps, tc.reps)
			}
			if s.Weight != tc.wantWeight || s.Reps != tc.wantReps {
				t.Errorf("suggestion = %gx%d, want %gx%d", s.Weight, s.Reps, tc.wantWeight, tc.wantReps)
			}
			if s.Reason != tc.wantReason {
				t.Errorf("reason = %q, want %q", s.Reason, tc.wantReason)
			}
		})
	}
}

// TestSuggestNextUsesLatestSet verifies the rule applies to the most recent
// set by record date, not by record order, and that the final set of the
// latest workout wins.
func TestSuggestNextUsesLatestSet(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-13", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10},
			models.SetRecord{Set: 2, Weight: 135, Reps: 12}),
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 130, Reps: 8}),
	}

	s, err := SuggestNext(records, "Bench Press")
	if err != nil {
		t.Fatalf("SuggestNext: %v", err)
	}
	if s.CurrentWeight != 135 || s.CurrentReps != 12 {
		t.Errorf("current = %gx%d, want last set of latest workout 135x12", s.CurrentWeight, s.CurrentReps)
	}
	if s.Weight != 140 || s.Reps != 8 {
		t.Errorf("suggestion = %gx%d, want 140x8", s.Weight, s.Reps)
	}
}

// TestSuggestNextCaseInsensitive verifies lookup ignores case but the reply
// keeps the recorded casing.
func TestSuggestNextCaseInsensitive(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
	}

	s, err := SuggestNext(records, "bench press")
	if err != nil {
		t.Fatalf("SuggestNext: %v", err)
	}
	if s.Exercise != "Bench Press" {
		t.Errorf("exercise = %q, want recorded casing", s.Exercise)
	}
}

// TestSuggestNextNotFound verifies an unknown exercise returns ErrNotFound.
func TestSuggestNextNotFound(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
	}

	_, err := SuggestNext(records, "Deadlift")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	_, err = SuggestNext(nil, "Bench Press")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("empty records err = %v, want ErrNotFound", err)
	}
}

// TestSummarize verifies first-vs-latest deltas and flags for a two-workout
// window.
func TestSummarize(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
		workout(t, "2025-01-13", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 140, Reps: 8}),
	}

	summary := Summarize(records, 30)
	if summary.WindowDays != 30 || summary.TotalWorkouts != 2 {
		t.Errorf("summary header = %d days / %d workouts, want 30 / 2", summary.WindowDays, summary.TotalWorkouts)
	}
	if len(summary.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(summary.Exercises))
	}

	ex := summary.Exercises[0]
	if ex.Name != "Bench Press" || ex.SetCount != 2 {
		t.Errorf("trend = %q with %d sets, want Bench Press with 2", ex.Name, ex.SetCount)
	}
	if ex.FirstWeight != 135 || ex.LatestWeight != 140 || ex.WeightChange != 5 {
		t.Errorf("weights = %g -> %g (change %g), want 135 -> 140 (5)", ex.FirstWeight, ex.LatestWeight, ex.WeightChange)
	}
	if ex.WeightFlag != FlagImproved {
		t.Errorf("weight flag = %s, want improved", ex.WeightFlag)
	}
	// Volume 1350 -> 1120 regressed despite the weight gain.
	if ex.FirstVolume != 1350 || ex.LatestVolume != 1120 || ex.VolumeFlag != FlagRegressed {
		t.Errorf("volume = %g -> %g flag %s, want 1350 -> 1120 regressed", ex.FirstVolume, ex.LatestVolume, ex.VolumeFlag)
	}
}

// TestSummarizeSkipsSingleSets verifies an exercise with one recorded set
// carries no trend.
func TestSummarizeSkipsSingleSets(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
		workout(t, "2025-01-07", "Pull", "Deadlift",
			models.SetRecord{Set: 1, Weight: 225, Reps: 5},
			models.SetRecord{Set: 2, Weight: 225, Reps: 5}),
	}

	summary := Summarize(records, 30)
	if len(summary.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1 (single-set exercise skipped)", len(summary.Exercises))
	}
	if summary.Exercises[0].Name != "Deadlift" {
		t.Errorf("trend = %q, want Deadlift", summary.Exercises[0].Name)
	}
}

// TestSummarizeMergesCasings verifies case variants of a name land in one
// group under the first-seen casing.
func TestSummarizeMergesCasings(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
		workout(t, "2025-01-13", "Push", "bench press",
			models.SetRecord{Set: 1, Weight: 140, Reps: 8}),
	}

	summary := Summarize(records, 30)
	if len(summary.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1 merged group", len(summary.Exercises))
	}
	if summary.Exercises[0].Name != "Bench Press" {
		t.Errorf("name = %q, want first-seen casing", summary.Exercises[0].Name)
	}
	if summary.Exercises[0].SetCount != 2 {
		t.Errorf("set count = %d, want 2", summary.Exercises[0].SetCount)
	}
}
