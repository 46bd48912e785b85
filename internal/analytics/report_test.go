package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/claude/liftplan/internal/advisor"
	"github.com/claude/liftplan/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubAdvisor struct {
	text string
	err  error
}

func (s stubAdvisor) Recommend(context.Context, string) (string, error) {
	return s.text, s.err
}

// TestAnalyzeEmptyLog verifies the empty-log message short-circuits before
// any advisor call.
func TestAnalyzeEmptyLog(t *testing.T) {
	got := Analyze(context.Background(), nil, 30, stubAdvisor{err: errors.New("should not be called")}, discardLogger())
	if got != "No workout data found. Log some workouts first!" {
		t.Errorf("empty log report = %q", got)
	}
}

// TestAnalyzeWithAdvice verifies the advisory section is appended when the
// provider replies.
func TestAnalyzeWithAdvice(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
		workout(t, "2025-01-13", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 140, Reps: 10}),
	}

	got := Analyze(context.Background(), records, 30, stubAdvisor{text: "Add a third set."}, discardLogger())

	for _, want := range []string{
		"## Progress Analysis (30 days)",
		"Total workouts logged: 2",
		"### Exercise Progressions",
		"**Bench Press**",
		"- First recorded: 135lbs x 10 (1350lbs volume)",
		"- Latest: 140lbs x 10 (1400lbs volume)",
		"- Weight increased by 5lbs",
		"- Volume increased by 50lbs",
		"### AI Recommendations",
		"Add a third set.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\nreport:\n%s", want, got)
		}
	}
}

// TestAnalyzeAdvisorFailureDegrades verifies a failing provider produces the
// rule-based report without the advisory section.
func TestAnalyzeAdvisorFailureDegrades(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
	}

	got := Analyze(context.Background(), records, 30, stubAdvisor{err: errors.New("timeout")}, discardLogger())

	if !strings.Contains(got, "## Progress Analysis (30 days)") {
		t.Errorf("degraded report missing header:\n%s", got)
	}
	if strings.Contains(got, "### AI Recommendations") {
		t.Errorf("degraded report should not contain an advisory section:\n%s", got)
	}
}

// TestAnalyzeDisabledAdvisor verifies the Disabled provider yields a report
// with no advisory section and no error noise.
func TestAnalyzeDisabledAdvisor(t *testing.T) {
	records := []models.WorkoutRecord{
		workout(t, "2025-01-06", "Push", "Bench Press",
			models.SetRecord{Set: 1, Weight: 135, Reps: 10}),
	}

	got := Analyze(context.Background(), records, 30, advisor.Disabled{}, discardLogger())
	if strings.Contains(got, "### AI Recommendations") {
		t.Errorf("disabled advisor should not produce recommendations:\n%s", got)
	}
}

// TestRenderReportDecrease verifies regressed deltas render as positive
// decrease amounts.
func TestRenderReportDecrease(t *testing.T) {
	summary := ProgressionSummary{
		WindowDays:    14,
		TotalWorkouts: 2,
		Exercises: []ExerciseTrend{{
			Name:         "Squats",
			SetCount:     2,
			FirstWeight:  225, FirstReps: 5, FirstVolume: 1125,
			LatestWeight: 215, LatestReps: 5, LatestVolume: 1075,
			WeightChange: -10, VolumeChange: -50,
			WeightFlag: FlagRegressed, VolumeFlag: FlagRegressed,
		}},
	}

	got := RenderReport(summary, "")
	if !strings.Contains(got, "- Weight decreased by 10lbs") {
		t.Errorf("report missing weight decrease line:\n%s", got)
	}
	if !strings.Contains(got, "- Volume decreased by 50lbs") {
		t.Errorf("report missing volume decrease line:\n%s", got)
	}
}
