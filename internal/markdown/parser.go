package markdown

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftplan/internal/models"
)

// Parse failures. Callers branch on these with errors.Is; none of them is
// fatal to the process and none of them touches the progress store.
var (
	ErrMissingDate        = errors.New("no workout date found")
	ErrMissingWorkoutType = errors.New("no workout type header found")
	ErrNoCompletedSets    = errors.New("no completed sets found")
)

// ParseError wraps a parse failure with the source document name.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	// isoDateRe matches a YYYY-MM-DD token in filenames or document bodies.
	isoDateRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

	// headerDateRe matches a prose date header: "Monday, December 01, 2025".
	headerDateRe = regexp.MustCompile(`([A-Za-z]+day),\s+([A-Za-z]+)\s+(\d{1,2}),\s+(\d{4})`)

	// workoutTypeRe matches the "## Workout: Push" anchor emitted by RenderDaily.
	// The captured word becomes the record label verbatim.
	workoutTypeRe = regexp.MustCompile(`## Workout:\s*(\w+)`)

	// exerciseHeaderRe matches an exercise block header: "#### 1. Bench Press".
	exerciseHeaderRe = regexp.MustCompile(`^####\s*(\d+)\.\s*(.+?)\s*$`)

	// setRowRe matches a set table row. The weight and reps cells are captured
	// loosely; numeric validation decides whether the row counts.
	setRowRe = regexp.MustCompile(`^\|\s*(\d+)\s*\|([^|]*)\|([^|]*)\|`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// Parse extracts a workout record from a hand-edited daily note. The
// filename hint, when given, takes priority for date extraction. Returns a
// *ParseError wrapping ErrMissingDate, ErrMissingWorkoutType, or
// ErrNoCompletedSets when the document cannot be recovered.
func Parse(raw, filename string) (models.WorkoutRecord, error) {
	date, ok := extractDate(raw, filename)
	if !ok {
		return models.WorkoutRecord{}, &ParseError{Source: filename, Err: ErrMissingDate}
	}

	m := workoutTypeRe.FindStringSubmatch(raw)
	if m == nil {
		return models.WorkoutRecord{}, &ParseError{Source: filename, Err: ErrMissingWorkoutType}
	}
	dayType := m[1]

	exercises := extractExercises(raw)
	if len(exercises) == 0 {
		return models.WorkoutRecord{}, &ParseError{Source: filename, Err: ErrNoCompletedSets}
	}

	return models.WorkoutRecord{
		Date:      date,
		DayType:   dayType,
		Exercises: exercises,
	}, nil
}

// ParseFile reads and parses a daily note from disk, using its base name as
// the filename hint.
func ParseFile(path string) (models.WorkoutRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.WorkoutRecord{}, fmt.Errorf("reading document %s: %w", path, err)
	}
	return Parse(string(data), filepath.Base(path))
}

// extractDate tries the three date strategies in priority order: ISO date in
// the filename, ISO date in the body, then the prose header. A date-shaped
// token that fails to resolve to a real calendar date counts as a failed
// strategy and falls through to the next one.
func extractDate(raw, filename string) (models.Date, bool) {
	if m := isoDateRe.FindStringSubmatch(filename); m != nil {
		if d, err := models.ParseDate(m[1]); err == nil {
			return d, true
		}
	}

	if m := isoDateRe.FindStringSubmatch(raw); m != nil {
		if d, err := models.ParseDate(m[1]); err == nil {
			return d, true
		}
	}

	if m := headerDateRe.FindStringSubmatch(raw); m != nil {
		month, ok := monthsByName[strings.ToLower(m[2])]
		if ok {
			day, _ := strconv.Atoi(m[3])
			year, _ := strconv.Atoi(m[4])
			if d, err := models.ParseDate(fmt.Sprintf("%04d-%02d-%02d", year, month, day)); err == nil {
				return d, true
			}
		}
	}

	return models.Date{}, false
}

// extractExercises runs the two-pass scan: split the document into blocks at
// "#### n. Name" headers, then validate table rows inside each block. A row
// is a set only if both weight and reps parse as strictly positive numbers;
// anything else (header row, blank placeholders, garbage) is skipped
// silently. Blocks that end up with zero sets are dropped entirely.
func extractExercises(raw string) []models.ExerciseRecord {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	var exercises []models.ExerciseRecord
	var current *models.ExerciseRecord

	flush := func() {
		if current != nil && len(current.Sets) > 0 {
			exercises = append(exercises, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")

		if m := exerciseHeaderRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &models.ExerciseRecord{Name: m[2]}
			continue
		}

		if current == nil {
			continue
		}

		if m := setRowRe.FindStringSubmatch(line); m != nil {
			if set, ok := parseSetRow(m); ok {
				current.Sets = append(current.Sets, set)
			}
		}
	}
	flush()

	return exercises
}

func parseSetRow(m []string) (models.SetRecord, bool) {
	setNum, err := strconv.Atoi(m[1])
	if err != nil {
		return models.SetRecord{}, false
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
	if err != nil || weight <= 0 {
		return models.SetRecord{}, false
	}
	reps, err := strconv.Atoi(strings.TrimSpace(m[3]))
	if err != nil || reps <= 0 {
		return models.SetRecord{}, false
	}
	return models.SetRecord{Set: setNum, Weight: weight, Reps: reps}, true
}
