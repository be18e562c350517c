package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fortuna/dfscrape/internal/normalize"
	"github.com/fortuna/dfscrape/internal/store"
	"github.com/fortuna/dfscrape/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	store Store
}

// NewHandler creates a new handler
func NewHandler(s Store) *Handler {
	return &Handler{store: s}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if err := h.store.HealthCheck(r.Context()); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "dfscrape",
	})
}

// GetLineups returns the latest projected starters, optionally for ?team=CODE
func (h *Handler) GetLineups(w http.ResponseWriter, r *http.Request) {
	team, ok := teamParam(w, r)
	if !ok {
		return
	}
	lineups, err := h.store.LatestLineups(r.Context(), team)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch lineups", err)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(lineups))
}

// GetInjuries returns the latest injury report, optionally for ?team=CODE
func (h *Handler) GetInjuries(w http.ResponseWriter, r *http.Request) {
	team, ok := teamParam(w, r)
	if !ok {
		return
	}
	injuries, err := h.store.LatestInjuries(r.Context(), team)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch injuries", err)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(injuries))
}

// GetNews returns news from the last ?hours (default 24), newest first
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	hours := intParam(r, "hours", 24, 24*14)
	limit := intParam(r, "limit", 50, 500)

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	items, err := h.store.RecentNews(r.Context(), since, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch news", err)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(items))
}

// GetOdds returns the latest game lines
func (h *Handler) GetOdds(w http.ResponseWriter, r *http.Request) {
	lines, err := h.store.LatestOdds(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch odds", err)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(lines))
}

// GetRuns returns recent scrape runs, optionally for ?source=
func (h *Handler) GetRuns(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source != "" && !store.IsSource(source) {
		respondError(w, http.StatusBadRequest, "Unknown source", nil)
		return
	}
	runs, err := h.store.RecentRuns(r.Context(), source, intParam(r, "limit", 20, 200))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch runs", err)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(runs))
}

// GetRun returns one scrape run with its unresolved names and failures
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runID"]
	if _, err := uuid.Parse(runID); err != nil {
		respondError(w, http.StatusNotFound, "Run not found", err)
		return
	}
	run, err := h.store.GetRun(r.Context(), runID)
	if errors.Is(err, repository.ErrRunNotFound) {
		respondError(w, http.StatusNotFound, "Run not found", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch run", err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

// GetTeams returns the team table, or one ?convention= column keyed by code
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	conv := normalize.Convention(r.URL.Query().Get("convention"))
	if conv == "" {
		respondJSON(w, http.StatusOK, normalize.Teams())
		return
	}

	known := false
	for _, c := range normalize.Conventions {
		known = known || c == conv
	}
	if !known {
		respondError(w, http.StatusBadRequest, "Unknown convention", nil)
		return
	}

	labels := make(map[string]string)
	for _, t := range normalize.Teams() {
		labels[t.Code] = t.Label(conv)
	}
	respondJSON(w, http.StatusOK, labels)
}

// teamParam reads an optional ?team= NBA code
func teamParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	team := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("team")))
	if team != "" && !normalize.IsLabel(normalize.Code, team) {
		respondError(w, http.StatusBadRequest, "Unknown team code", nil)
		return "", false
	}
	return team, true
}

// intParam reads a positive integer query parameter, falling back to def
func intParam(r *http.Request, name string, def, max int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// orEmpty keeps empty results encoding as [] instead of null
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
