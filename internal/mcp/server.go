// Package mcp exposes the planner to LLM clients over the Model Context
// Protocol: schedule generation, catalog management, markdown log ingest,
// progress queries and progression suggestions.
package mcp

import (
	"log/slog"

	"github.com/claude/liftplan/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(catalog *storage.CatalogStore, progress *storage.ProgressStore, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftPlan workout planner. Generate push/pull/legs schedules, "+
			"manage the exercise catalog, log workouts from markdown notes, and query "+
			"training progress. Dates use YYYY-MM-DD."),
	)

	h := &handlers{catalog: catalog, progress: progress, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGenerateSchedule, Handler: h.generateSchedule},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolAddExercise, Handler: h.addExercise},
		server.ServerTool{Tool: toolRemoveExercise, Handler: h.removeExercise},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolAnalyzeProgress, Handler: h.analyzeProgress},
		server.ServerTool{Tool: toolSuggestProgression, Handler: h.suggestProgression},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalogResource},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	catalog  *storage.CatalogStore
	progress *storage.ProgressStore
	log      *slog.Logger
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"liftplan://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All configured exercises grouped by category (push, pull, legs)"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftplan://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Logged workouts from the last 30 days"),
	mcp.WithMIMEType("application/json"),
)
