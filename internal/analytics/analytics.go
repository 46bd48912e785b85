// Package analytics computes rule-based progression summaries and
// next-session suggestions from the workout log.
package analytics

import (
	"errors"
	"sort"
	"strings"

	"github.com/claude/liftplan/internal/models"
)

// ErrNotFound is returned when an exercise has no recorded sets anywhere.
var ErrNotFound = errors.New("no recorded sets for exercise")

// Flag qualifies a signed delta.
type Flag string

const (
	FlagImproved  Flag = "improved"
	FlagRegressed Flag = "regressed"
	FlagUnchanged Flag = "unchanged"
)

func flagOf(delta float64) Flag {
	switch {
	case delta > 0:
		return FlagImproved
	case delta < 0:
		return FlagRegressed
	}
	return FlagUnchanged
}

// setSample is one set tagged with its owning record's date.
type setSample struct {
	date   models.Date
	weight float64
	reps   int
	volume float64
}

// ExerciseTrend compares an exercise's earliest and latest recorded sets
// within the window.
type ExerciseTrend struct {
	Name         string  `json:"name"`
	SetCount     int     `json:"set_count"`
	FirstWeight  float64 `json:"first_weight"`
	FirstReps    int     `json:"first_reps"`
	FirstVolume  float64 `json:"first_volume"`
	LatestWeight float64 `json:"latest_weight"`
	LatestReps   int     `json:"latest_reps"`
	LatestVolume float64 `json:"latest_volume"`
	WeightChange float64 `json:"weight_change"`
	VolumeChange float64 `json:"volume_change"`
	WeightFlag   Flag    `json:"weight_flag"`
	VolumeFlag   Flag    `json:"volume_flag"`
}

// ProgressionSummary is the windowed view of recent training.
type ProgressionSummary struct {
	WindowDays    int             `json:"window_days"`
	TotalWorkouts int             `json:"total_workouts"`
	Exercises     []ExerciseTrend `json:"exercises"`
}

// Summarize flattens all sets in the given records by exercise name
// (case-insensitive), sorts each group chronologically, and compares the
// earliest and latest set's weight and volume. Exercises with fewer than
// two recorded sets carry no signal and are skipped.
func Summarize(records []models.WorkoutRecord, windowDays int) ProgressionSummary {
	groups, displayNames := groupSets(records, "")

	summary := ProgressionSummary{
		WindowDays:    windowDays,
		TotalWorkouts: len(records),
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		samples := groups[key]
		if len(samples) < 2 {
			continue
		}
		sortByDate(samples)

		first, latest := samples[0], samples[len(samples)-1]
		summary.Exercises = append(summary.Exercises, ExerciseTrend{
			Name:         displayNames[key],
			SetCount:     len(samples),
			FirstWeight:  first.weight,
			FirstReps:    first.reps,
			FirstVolume:  first.volume,
			LatestWeight: latest.weight,
			LatestReps:   latest.reps,
			LatestVolume: latest.volume,
			WeightChange: latest.weight - first.weight,
			VolumeChange: latest.volume - first.volume,
			WeightFlag:   flagOf(latest.weight - first.weight),
			VolumeFlag:   flagOf(latest.volume - first.volume),
		})
	}

	return summary
}

// Suggestion is the recommended next session for one exercise.
type Suggestion struct {
	Exercise      string  `json:"exercise"`
	CurrentWeight float64 `json:"current_weight"`
	CurrentReps   int     `json:"current_reps"`
	Weight        float64 `json:"weight"`
	Reps          int     `json:"reps"`
	Reason        string  `json:"reason"`
}

// SuggestNext applies the progression rules to the single most recent
// recorded set for the named exercise (case-insensitive, across all given
// records, not windowed). Returns ErrNotFound when the exercise has no
// recorded sets.
func SuggestNext(records []models.WorkoutRecord, exerciseName string) (Suggestion, error) {
	groups, displayNames := groupSets(records, exerciseName)

	key := strings.ToLower(exerciseName)
	samples := groups[key]
	if len(samples) == 0 {
		return Suggestion{}, ErrNotFound
	}
	sortByDate(samples)
	latest := samples[len(samples)-1]

	s := Suggestion{
		Exercise:      displayNames[key],
		CurrentWeight: latest.weight,
		CurrentReps:   latest.reps,
	}
	switch {
	case latest.reps >= 12:
		s.Weight = latest.weight + 5
		s.Reps = 8
		s.Reason = "high reps achieved, increase weight"
	case latest.reps >= 8:
		s.Weight = latest.weight
		s.Reps = latest.reps + 1
		s.Reason = "progressive overload, add one rep"
	default:
		s.Weight = latest.weight
		s.Reps = latest.reps + 1
		s.Reason = "build up reps before increasing weight"
	}
	return s, nil
}

// groupSets flattens sets by lowercased exercise name. When filter is
// non-empty only the matching exercise is collected. Display names keep the
// first-seen casing.
func groupSets(records []models.WorkoutRecord, filter string) (map[string][]setSample, map[string]string) {
	groups := make(map[string][]setSample)
	displayNames := make(map[string]string)
	filterKey := strings.ToLower(filter)

	for _, rec := range records {
		for _, ex := range rec.Exercises {
			key := strings.ToLower(ex.Name)
			if filter != "" && key != filterKey {
				continue
			}
			if _, seen := displayNames[key]; !seen {
				displayNames[key] = ex.Name
			}
			for _, set := range ex.Sets {
				groups[key] = append(groups[key], setSample{
					date:   rec.Date,
					weight: set.Weight,
					reps:   set.Reps,
					volume: set.Volume(),
				})
			}
		}
	}
	return groups, displayNames
}

// sortByDate orders samples chronologically by owning record date. The sort
// is stable so same-day sets keep their record order.
func sortByDate(samples []setSample) {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].date.Before(samples[j].date.Time)
	})
}
