package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftplan/internal/analytics"
	"github.com/claude/liftplan/internal/markdown"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/schedule"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Catalog())
}

type exerciseRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	cat, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req exerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	added, err := s.catalog.Add(cat, req.Name)
	if err != nil {
		s.log.Error("catalog save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	status := "added"
	if !added {
		status = "already exists"
	}
	writeJSON(w, http.StatusOK, map[string]any{"added": added, "status": status})
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	cat, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var req exerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	removed, err := s.catalog.Remove(cat, req.Name)
	if err != nil {
		s.log.Error("catalog save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": true})
}

// scheduleFromRequest builds the week for the optional start/randomize
// query parameters. Without a start date the next full week is used.
func (s *Server) scheduleFromRequest(r *http.Request) (models.Schedule, error) {
	gen := schedule.New(s.catalog.Catalog())

	randomize := r.URL.Query().Get("randomize") != "false"

	if startStr := r.URL.Query().Get("start"); startStr != "" {
		anchor, err := models.ParseDate(startStr)
		if err != nil {
			return nil, err
		}
		return gen.Week(anchor, randomize), nil
	}
	return gen.WeekFromToday(randomize), nil
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	week, err := s.scheduleFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, week)
}

func (s *Server) handleGetScheduleMarkdown(w http.ResponseWriter, r *http.Request) {
	week, err := s.scheduleFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, markdown.RenderWeekly(week, time.Now()))
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}

	rec, err := markdown.Parse(string(body), r.URL.Query().Get("filename"))
	if err != nil {
		var parseErr *markdown.ParseError
		if errors.As(err, &parseErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error":  parseErr.Err.Error(),
				"source": parseErr.Source,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	updated, err := s.progress.Upsert(rec)
	if err != nil {
		s.log.Error("progress save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updated":  updated,
		"date":     rec.Date.String(),
		"day_type": rec.DayType,
	})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	records := s.progress.Records()
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		since, err := models.ParseDate(sinceStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		records = s.progress.Since(since)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	days := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	cutoff := models.DateOf(time.Now()).AddDays(-days)
	records := s.progress.Since(cutoff)

	report := analytics.Analyze(r.Context(), records, days, s.advisor, s.log)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, report)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	suggestion, err := analytics.SuggestNext(s.progress.Records(), exercise)
	if errors.Is(err, analytics.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data found for exercise: " + exercise})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already committed; an encode failure here has
	// nowhere to go but the dropped connection.
	_ = json.NewEncoder(w).Encode(v)
}
