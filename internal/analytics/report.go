package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/claude/liftplan/internal/advisor"
	"github.com/claude/liftplan/internal/models"
)

// Analyze builds the full progress report for the given records. When an
// advisor is configured its recommendation is appended; advisor failures
// degrade to a report without recommendations, never to an error.
func Analyze(ctx context.Context, records []models.WorkoutRecord, windowDays int, adv advisor.Provider, log *slog.Logger) string {
	if len(records) == 0 {
		return "No workout data found. Log some workouts first!"
	}

	summary := Summarize(records, windowDays)

	var advice string
	if adv != nil {
		text, err := adv.Recommend(ctx, advisorContext(records, summary))
		if err != nil {
			log.Warn("advisor unavailable", "error", err)
		} else {
			advice = text
		}
	}

	return RenderReport(summary, advice)
}

// RenderReport renders a summary (and optional advisory text) as markdown.
func RenderReport(summary ProgressionSummary, advice string) string {
	var lines []string

	lines = append(lines,
		fmt.Sprintf("## Progress Analysis (%d days)", summary.WindowDays),
		"",
		fmt.Sprintf("Total workouts logged: %d", summary.TotalWorkouts),
		"",
		"### Exercise Progressions",
		"",
	)

	for _, ex := range summary.Exercises {
		lines = append(lines,
			fmt.Sprintf("**%s**", ex.Name),
			fmt.Sprintf("- First recorded: %slbs x %d (%slbs volume)",
				formatLbs(ex.FirstWeight), ex.FirstReps, formatLbs(ex.FirstVolume)),
			fmt.Sprintf("- Latest: %slbs x %d (%slbs volume)",
				formatLbs(ex.LatestWeight), ex.LatestReps, formatLbs(ex.LatestVolume)),
		)

		switch ex.WeightFlag {
		case FlagImproved:
			lines = append(lines, fmt.Sprintf("- Weight increased by %slbs", formatLbs(ex.WeightChange)))
		case FlagRegressed:
			lines = append(lines, fmt.Sprintf("- Weight decreased by %slbs", formatLbs(-ex.WeightChange)))
		}
		switch ex.VolumeFlag {
		case FlagImproved:
			lines = append(lines, fmt.Sprintf("- Volume increased by %slbs", formatLbs(ex.VolumeChange)))
		case FlagRegressed:
			lines = append(lines, fmt.Sprintf("- Volume decreased by %slbs", formatLbs(-ex.VolumeChange)))
		}

		lines = append(lines, "")
	}

	if advice != "" {
		lines = append(lines, "### AI Recommendations", "", advice, "")
	}

	return strings.Join(lines, "\n")
}

// advisorContext serializes a bounded window of recent records and recent
// per-exercise sets as plain structured text for the advisory provider.
func advisorContext(records []models.WorkoutRecord, summary ProgressionSummary) string {
	var b strings.Builder

	b.WriteString("Analyze this workout progress data and provide:\n")
	b.WriteString("1. Key strengths and areas of improvement\n")
	b.WriteString("2. Progression recommendations (weight/rep increases)\n")
	b.WriteString("3. Recovery and volume management suggestions\n\n")

	recent := records
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	b.WriteString("Recent workouts:\n")
	for _, rec := range recent {
		fmt.Fprintf(&b, "- %s %s:", rec.Date, rec.DayType)
		for _, ex := range rec.Exercises {
			fmt.Fprintf(&b, " %s (%d sets)", ex.Name, len(ex.Sets))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nPer-exercise trends (first vs latest set in window):\n")
	for _, ex := range summary.Exercises {
		delta := formatLbs(ex.VolumeChange)
		if ex.VolumeChange >= 0 {
			delta = "+" + delta
		}
		fmt.Fprintf(&b, "- %s: %sx%d -> %sx%d (volume %slbs)\n",
			ex.Name,
			formatLbs(ex.FirstWeight), ex.FirstReps,
			formatLbs(ex.LatestWeight), ex.LatestReps,
			delta)
	}

	b.WriteString("\nProvide concise, actionable recommendations.")
	return b.String()
}

func formatLbs(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
