// Package markdown renders workout schedules as Obsidian-friendly markdown
// documents and parses hand-edited copies back into workout records. The
// renderer and parser share one grammar: every structural line the renderer
// emits is an anchor the parser relies on, so the exact layout here is load
// bearing, not cosmetic.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/liftplan/internal/models"
)

// RenderWeekly renders a full week as a single document: title with the date
// span, generation timestamp, overview table, then one subsection per day
// with numbered exercises and blank Sets/Reps/Weight placeholders.
func RenderWeekly(week models.Schedule, generatedAt time.Time) string {
	var lines []string

	start := week[0].Date
	end := week[len(week)-1].Date
	lines = append(lines,
		fmt.Sprintf("# Workout Schedule: %s - %s", start.Format("January 02"), end.Format("January 02, 2006")),
		"",
		fmt.Sprintf("*Generated: %s*", generatedAt.Format("2006-01-02 15:04")),
		"",
		"## Weekly Overview",
		"",
		"| Day | Type | Exercises |",
		"|-----|------|-----------|",
	)

	for _, entry := range week {
		lines = append(lines, fmt.Sprintf("| %s | %s | %d exercises |",
			entry.Date.Format("Monday"), entry.Type, len(entry.Exercises)))
	}

	lines = append(lines, "", "## Daily Workouts", "")

	for _, entry := range week {
		lines = append(lines, fmt.Sprintf("### %s - %s", entry.Date.Format("Monday, January 02, 2006"), entry.Type), "")

		if entry.Type == models.DayRest {
			lines = append(lines, "- **Rest Day** - Recovery and rest")
		} else {
			lines = append(lines, "#### Exercises:", "")
			for i, exercise := range entry.Exercises {
				lines = append(lines,
					fmt.Sprintf("%d. **%s**", i+1, exercise),
					"   - Sets: ",
					"   - Reps: ",
					"   - Weight: ",
					"",
				)
			}
		}

		lines = append(lines, "---", "")
	}

	return strings.Join(lines, "\n")
}

// RenderDaily renders a single day as a standalone note. The "## Workout:"
// header and the "#### n. Name" exercise headers are the anchors Parse
// searches for; each exercise gets a 4-row empty set table to fill in.
func RenderDaily(entry models.ScheduleEntry) string {
	var lines []string

	lines = append(lines,
		"# "+entry.Date.Format("Monday, January 02, 2006"),
		"",
		fmt.Sprintf("## Workout: %s", entry.Type),
		"",
	)

	if entry.Type == models.DayRest {
		lines = append(lines, "- **Rest Day** - Recovery and rest")
	} else {
		lines = append(lines, "### Exercises", "")
		for i, exercise := range entry.Exercises {
			lines = append(lines,
				fmt.Sprintf("#### %d. %s", i+1, exercise),
				"",
				"| Set | Weight | Reps | Notes |",
				"|-----|--------|------|-------|",
				"| 1   |        |      |       |",
				"| 2   |        |      |       |",
				"| 3   |        |      |       |",
				"| 4   |        |      |       |",
				"",
			)
		}
	}

	lines = append(lines, "---", "", "## Notes", "")

	return strings.Join(lines, "\n")
}

// DailyFileName returns the conventional note name for a schedule entry,
// e.g. "2025-01-06 - Push.md". The ISO date prefix is what lets Parse
// recover the date from the filename alone.
func DailyFileName(entry models.ScheduleEntry) string {
	return fmt.Sprintf("%s - %s.md", entry.Date, entry.Type)
}

// WriteDocument writes rendered content to path, creating parent
// directories as needed.
func WriteDocument(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing document %s: %w", path, err)
	}
	return nil
}
