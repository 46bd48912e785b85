package mcp

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/claude/liftplan/internal/analytics"
	"github.com/claude/liftplan/internal/markdown"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/schedule"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGenerateSchedule = mcp.NewTool("generate_schedule",
	mcp.WithDescription("Generate a 7-day push/pull/legs schedule. Returns one entry per day with its type and ordered exercise list."),
	mcp.WithString("start", mcp.Description("Anchor date (YYYY-MM-DD). Defaults to the next Monday strictly after today.")),
	mcp.WithString("randomize", mcp.Description("Set to 'false' to keep catalog order instead of shuffling each training day."), mcp.Enum("true", "false")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the configured exercises, optionally for a single category."),
	mcp.WithString("category", mcp.Description("Category filter"), mcp.Enum("push", "pull", "legs")),
)

var toolAddExercise = mcp.NewTool("add_exercise",
	mcp.WithDescription("Add an exercise to a category. Adding an existing name is a no-op and reports 'already exists'."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Category"), mcp.Enum("push", "pull", "legs")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name")),
)

var toolRemoveExercise = mcp.NewTool("remove_exercise",
	mcp.WithDescription("Remove an exercise from a category."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Category"), mcp.Enum("push", "pull", "legs")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Parse a filled-in markdown workout note and merge it into the progress log. Re-logging the same date and type replaces the earlier record."),
	mcp.WithString("document", mcp.Required(), mcp.Description("The markdown note content")),
	mcp.WithString("filename", mcp.Description("Original filename; a YYYY-MM-DD prefix there wins date extraction")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Query logged workouts. Returns records in log order with exercises and sets."),
	mcp.WithString("since", mcp.Description("Only records on or after this date (YYYY-MM-DD). Defaults to all records.")),
)

var toolAnalyzeProgress = mcp.NewTool("analyze_progress",
	mcp.WithDescription("Per-exercise progression summary over a recent window: earliest vs latest set, weight and volume deltas with improved/regressed/unchanged flags."),
	mcp.WithString("days", mcp.Description("Window size in days. Defaults to 30.")),
)

var toolSuggestProgression = mcp.NewTool("suggest_progression",
	mcp.WithDescription("Rule-based next-session suggestion for one exercise, from its most recent recorded set."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (case-insensitive)")),
)

// --- Tool handlers ---

func (h *handlers) generateSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gen := schedule.New(h.catalog.Catalog())
	randomize := req.GetString("randomize", "true") != "false"

	var week models.Schedule
	if startStr := req.GetString("start", ""); startStr != "" {
		anchor, err := models.ParseDate(startStr)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
		week = gen.Week(anchor, randomize)
	} else {
		week = gen.WeekFromToday(randomize)
	}

	result, err := mcp.NewToolResultJSON(week)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog := h.catalog.Catalog()

	if catStr := req.GetString("category", ""); catStr != "" {
		cat, err := models.ParseCategory(catStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := mcp.NewToolResultJSON(map[string][]string{string(cat): catalog.Exercises(cat)})
		if err != nil {
			return mcp.NewToolResultError("serialization failed"), nil
		}
		return result, nil
	}

	result, err := mcp.NewToolResultJSON(catalog)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) addExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catStr, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	cat, err := models.ParseCategory(catStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	added, err := h.catalog.Add(cat, name)
	if err != nil {
		h.log.Error("mcp add_exercise", "error", err)
		return mcp.NewToolResultError("saving catalog failed: " + err.Error()), nil
	}
	if !added {
		return mcp.NewToolResultText("'" + name + "' already exists in " + string(cat) + " workouts"), nil
	}
	return mcp.NewToolResultText("Added '" + name + "' to " + string(cat) + " workouts"), nil
}

func (h *handlers) removeExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catStr, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	cat, err := models.ParseCategory(catStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	removed, err := h.catalog.Remove(cat, name)
	if err != nil {
		h.log.Error("mcp remove_exercise", "error", err)
		return mcp.NewToolResultError("saving catalog failed: " + err.Error()), nil
	}
	if !removed {
		return mcp.NewToolResultText("'" + name + "' not found in " + string(cat) + " workouts"), nil
	}
	return mcp.NewToolResultText("Removed '" + name + "' from " + string(cat) + " workouts"), nil
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	document, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError("document parameter is required"), nil
	}

	rec, err := markdown.Parse(document, req.GetString("filename", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := h.progress.Upsert(rec)
	if err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("saving progress failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"updated":   updated,
		"date":      rec.Date.String(),
		"day_type":  rec.DayType,
		"exercises": len(rec.Exercises),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := h.progress.Records()
	if sinceStr := req.GetString("since", ""); sinceStr != "" {
		since, err := models.ParseDate(sinceStr)
		if err != nil {
			return mcp.NewToolResultError("invalid since date: " + err.Error()), nil
		}
		records = h.progress.Since(since)
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) analyzeProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := 30
	if daysStr := req.GetString("days", ""); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil || n <= 0 {
			return mcp.NewToolResultError("days must be a positive integer"), nil
		}
		days = n
	}

	cutoff := models.DateOf(time.Now()).AddDays(-days)
	summary := analytics.Summarize(h.progress.Since(cutoff), days)

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	suggestion, err := analytics.SuggestNext(h.progress.Records(), exercise)
	if errors.Is(err, analytics.ErrNotFound) {
		return mcp.NewToolResultError("no data found for exercise: " + exercise), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(suggestion)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
