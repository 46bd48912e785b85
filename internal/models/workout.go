package models

// SetRecord is one completed set. Weight and reps are strictly positive;
// a row that fails that check is never recorded as a set.
type SetRecord struct {
	Set    int     `json:"set"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// Volume is weight times reps, the standard training-load proxy.
func (s SetRecord) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// ExerciseRecord is a named exercise with its completed sets, in order.
type ExerciseRecord struct {
	Name string      `json:"name"`
	Sets []SetRecord `json:"sets"`
}

// WorkoutRecord is one logged workout. The (Date, DayType) pair is its
// identity key; DayType is free text captured from the document header,
// not validated against the DayType enumeration.
type WorkoutRecord struct {
	Date      Date             `json:"date"`
	DayType   string           `json:"day_type"`
	Exercises []ExerciseRecord `json:"exercises"`
}

// SameKey reports whether two records share the identity key.
// Both date and label comparisons are exact.
func (w WorkoutRecord) SameKey(o WorkoutRecord) bool {
	return w.Date.Equal(o.Date.Time) && w.DayType == o.DayType
}

// ScheduleEntry is one day of a generated week.
type ScheduleEntry struct {
	Date      Date     `json:"date"`
	Type      DayType  `json:"type"`
	Exercises []string `json:"exercises"`
}

// Schedule is exactly seven consecutive days starting at the anchor date.
type Schedule []ScheduleEntry

// Entry returns the entry for a date, if present.
func (s Schedule) Entry(d Date) (ScheduleEntry, bool) {
	for _, e := range s {
		if e.Date.Equal(d.Time) {
			return e, true
		}
	}
	return ScheduleEntry{}, false
}
